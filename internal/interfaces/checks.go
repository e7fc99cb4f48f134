package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/literalura/internal/catalog"
	"github.com/mrlokans/literalura/internal/console"
	catalogdb "github.com/mrlokans/literalura/internal/database/catalog"
	"github.com/mrlokans/literalura/internal/gutendex"
	"github.com/mrlokans/literalura/internal/http"
	"github.com/mrlokans/literalura/internal/scheduler"
	"github.com/mrlokans/literalura/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Store implementations
var _ catalog.Store = (*catalogdb.Repository)(nil)

// =============================================================================
// External Services
// =============================================================================

// BooksAPI implementations
var _ catalog.BooksAPI = (*gutendex.Client)(nil)

// Pinger implementations
var _ scheduler.Pinger = (*gutendex.Client)(nil)

// =============================================================================
// Consumers of the catalog service
// =============================================================================

var _ console.Catalog = (*catalog.Service)(nil)
var _ http.CatalogReader = (*catalog.Service)(nil)
var _ tasks.Ingester = (*catalog.Service)(nil)

// =============================================================================
// Background work
// =============================================================================

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ http.ProbeReporter = (*scheduler.UpstreamProbe)(nil)
