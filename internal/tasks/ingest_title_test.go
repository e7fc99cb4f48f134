package tasks

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/literalura/internal/apperr"
	"github.com/mrlokans/literalura/internal/catalog"
	"github.com/mrlokans/literalura/internal/entities"
	"github.com/mrlokans/literalura/internal/gutendex"
)

type fakeIngester struct {
	err       error
	titles    chan string
	confirmed bool
}

func (f *fakeIngester) IngestByTitle(_ context.Context, title string, confirm catalog.ConfirmFunc) (*catalog.IngestResult, error) {
	f.confirmed = confirm(&gutendex.BookEntry{ID: 1, Title: title})
	if f.titles != nil {
		f.titles <- title
	}
	if f.err != nil {
		return nil, f.err
	}
	return &catalog.IngestResult{
		Status: catalog.IngestSaved,
		Book:   &entities.Book{ID: 1, Title: title, Author: entities.Author{Name: "Someone"}},
	}, nil
}

func TestIngestTitleTaskConfig(t *testing.T) {
	cfg := IngestTitleTask{Title: "Dom Casmurro"}.Config()

	assert.Equal(t, IngestTitleQueue, cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
}

func TestIngestTitleProcessor(t *testing.T) {
	t.Run("confirms automatically", func(t *testing.T) {
		ingester := &fakeIngester{}
		err := IngestTitleProcessor(ingester)(context.Background(), IngestTitleTask{Title: "Dom Casmurro"})
		require.NoError(t, err)
		assert.True(t, ingester.confirmed)
	})

	t.Run("drops input errors", func(t *testing.T) {
		ingester := &fakeIngester{err: apperr.NewValidation("title", "title must not be empty")}
		err := IngestTitleProcessor(ingester)(context.Background(), IngestTitleTask{})
		assert.NoError(t, err)
	})

	t.Run("returns API errors for retry", func(t *testing.T) {
		ingester := &fakeIngester{err: &apperr.APIError{StatusCode: 503, Message: "Service unavailable"}}
		err := IngestTitleProcessor(ingester)(context.Background(), IngestTitleTask{Title: "Dom Casmurro"})
		require.Error(t, err)
		assert.True(t, apperr.IsAPI(err))
	})

	t.Run("drops client errors", func(t *testing.T) {
		for _, status := range []int{400, 404} {
			ingester := &fakeIngester{err: &apperr.APIError{StatusCode: status, Message: "Endpoint not found"}}
			err := IngestTitleProcessor(ingester)(context.Background(), IngestTitleTask{Title: "x"})
			assert.NoError(t, err, "HTTP %d", status)
		}
	})

	t.Run("returns transport errors for retry", func(t *testing.T) {
		ingester := &fakeIngester{err: fmt.Errorf("search: %w", &apperr.APIError{Message: "connection refused"})}
		err := IngestTitleProcessor(ingester)(context.Background(), IngestTitleTask{Title: "x"})
		assert.Error(t, err)
	})

	t.Run("nil ingester", func(t *testing.T) {
		err := IngestTitleProcessor(nil)(context.Background(), IngestTitleTask{Title: "x"})
		assert.Error(t, err)
	})
}

func TestEnqueueIngest_RunsQueue(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "literalura.db"), testConfig())
	require.NoError(t, err)
	defer client.Close()

	ingester := &fakeIngester{titles: make(chan string, 1)}
	client.Register(NewIngestTitleQueue(ingester))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	id, err := client.EnqueueIngest(" Dom Casmurro ")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	select {
	case title := <-ingester.titles:
		assert.Equal(t, "Dom Casmurro", title)
	case <-time.After(5 * time.Second):
		t.Fatal("ingest task was not executed within timeout")
	}
}
