// Package interfaces documents the core abstractions used throughout the application.
//
// This package consolidates interface documentation to help contributors find
// extension points and how to implement new functionality.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - Store / TxStore: catalog persistence used by the service (internal/catalog/store.go)
//   - CatalogReader: read side exposed over HTTP (internal/http/config.go)
//
// ## External Services
//
//   - BooksAPI: remote book search and connectivity check (internal/catalog/service.go)
//   - Pinger: reachability check run by the upstream probe (internal/scheduler/upstream_probe.go)
//
// ## Consumers of the Catalog Service
//
//   - Catalog: what the console menu drives (internal/console/menu.go)
//   - Ingester: what background ingest tasks call (internal/tasks/ingest_title.go)
//
// ## Background Work
//
//   - TaskQueue: enqueue and inspect ingest tasks (internal/http/config.go)
//   - ProbeReporter: last upstream probe result for /health (internal/http/config.go)
//
// # Adding a New Report
//
//  1. Add the query to internal/database/catalog/repository.go and to the
//     Store interface.
//
//  2. Add a service method in internal/catalog/service.go.
//
//  3. Expose it from the console menu, the HTTP router or both, extending
//     the Catalog and CatalogReader interfaces.
//
// # Adding a New Background Task
//
//  1. Define a task type with a Config() method in internal/tasks/.
//
//     type RefreshDownloadsTask struct{}
//
//     func (t RefreshDownloadsTask) Config() backlite.QueueConfig
//
//  2. Register its queue in entrypoint.Run.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
