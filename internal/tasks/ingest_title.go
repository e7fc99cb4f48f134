package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/literalura/internal/apperr"
	"github.com/mrlokans/literalura/internal/catalog"
	"github.com/mrlokans/literalura/internal/gutendex"
)

const IngestTitleQueue = "ingest_title"

// IngestTitleTask searches Gutendex for a title and stores the first hit.
// Enqueueing the task is the confirmation, so no prompt is shown.
type IngestTitleTask struct {
	Title string `json:"title"`
}

// Config returns the queue configuration for title ingestion tasks.
func (t IngestTitleTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        IngestTitleQueue,
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// Ingester runs the catalog ingestion pipeline.
type Ingester interface {
	IngestByTitle(ctx context.Context, title string, confirm catalog.ConfirmFunc) (*catalog.IngestResult, error)
}

// IngestTitleProcessor creates a processor function for IngestTitleTask.
// Input, domain and 4xx API errors are logged and dropped. Transport and
// 5xx failures are returned so backlite retries the task.
func IngestTitleProcessor(ingester Ingester) backlite.QueueProcessor[IngestTitleTask] {
	return func(ctx context.Context, task IngestTitleTask) error {
		if ingester == nil {
			return fmt.Errorf("ingester not configured")
		}

		result, err := ingester.IngestByTitle(ctx, task.Title, func(*gutendex.BookEntry) bool { return true })
		if err != nil {
			if !retryable(err) {
				slog.Warn("Ingest task rejected", "title", task.Title, "error", err)
				return nil
			}
			return fmt.Errorf("ingest %q: %w", task.Title, err)
		}

		attrs := []any{"title", task.Title, "status", result.Status.String()}
		if result.Book != nil {
			attrs = append(attrs, "book_id", result.Book.ID, "author", result.Book.Author.Name)
		}
		slog.Info("Ingest task finished", attrs...)
		return nil
	}
}

func retryable(err error) bool {
	if apperr.IsValidation(err) || apperr.IsDomain(err) || apperr.IsDataConversion(err) {
		return false
	}
	var api *apperr.APIError
	if errors.As(err, &api) {
		return api.Retryable()
	}
	return true
}

// NewIngestTitleQueue creates a backlite queue for title ingestion tasks.
func NewIngestTitleQueue(ingester Ingester) backlite.Queue {
	return backlite.NewQueue(IngestTitleProcessor(ingester))
}
