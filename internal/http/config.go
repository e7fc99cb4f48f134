package http

import (
	"context"

	"github.com/mrlokans/literalura/internal/catalog"
	"github.com/mrlokans/literalura/internal/database"
	"github.com/mrlokans/literalura/internal/entities"
	"github.com/mrlokans/literalura/internal/scheduler"
)

// CatalogReader is the read side of the catalog exposed over HTTP.
type CatalogReader interface {
	FindBooks(filter catalog.BookFilter) ([]entities.Book, error)
	GetBook(id int64) (*entities.Book, error)
	ListAuthors() ([]catalog.AuthorSummary, error)
	GetAuthor(id uint) (*catalog.AuthorSummary, error)
	AuthorsAliveIn(yearInput string) ([]entities.Author, error)
	Languages() ([]string, error)
	Language(code string) (*catalog.LanguageSummary, error)
	Statistics() (*catalog.Statistics, error)
}

// TaskQueue accepts background ingestion requests.
type TaskQueue interface {
	EnqueueIngest(title string) (string, error)
	StatusText(ctx context.Context, taskID string) (string, error)
}

// ProbeReporter exposes the last upstream reachability check.
type ProbeReporter interface {
	Status() scheduler.ProbeStatus
}

// RouterConfig contains all dependencies needed to create the HTTP router.
// Optional parts disable their routes or health checks when nil.
type RouterConfig struct {
	Catalog  CatalogReader
	Database *database.Database
	Tasks    TaskQueue
	Probe    ProbeReporter
	Version  string
}
