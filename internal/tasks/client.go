package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/literalura/internal/config"
)

// Client wraps backlite to run catalog work in the background.
type Client struct {
	client *backlite.Client
	db     *sql.DB
	config config.Tasks

	mu      sync.RWMutex
	started bool
}

// NewClient creates a task queue backed by its own SQLite file, placed next
// to catalogPath with a "-tasks" suffix. The queue always uses SQLite, even
// when the catalog lives in postgres.
func NewClient(catalogPath string, cfg config.Tasks) (*Client, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	db, err := sql.Open("sqlite3", QueuePath(catalogPath)+"?_journal=WAL&_timeout=5000&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open tasks database: %w", err)
	}
	db.SetMaxOpenConns(cfg.Workers + 5)
	db.SetMaxIdleConns(cfg.Workers + 2)
	db.SetConnMaxLifetime(time.Hour)

	// *slog.Logger already has the Info/Error shape backlite expects.
	client, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          slog.Default().With("component", "tasks"),
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create backlite client: %w", err)
	}

	if err := client.Install(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to install backlite schema: %w", err)
	}

	return &Client{
		client: client,
		db:     db,
		config: cfg,
	}, nil
}

// QueuePath derives the queue database file from the catalog file.
func QueuePath(catalogPath string) string {
	if i := strings.Index(catalogPath, "?"); i >= 0 {
		catalogPath = catalogPath[:i]
	}
	dir := filepath.Dir(catalogPath)
	base := filepath.Base(catalogPath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, name+"-tasks"+ext)
}

// Register registers task queues with the client.
// Must be called before Start().
func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.client.Register(q)
	}
}

// Start begins processing tasks. It does not block; use Stop for graceful
// shutdown.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	slog.Info("Task queue started", "workers", c.config.Workers)
	c.client.Start(ctx)
}

// Stop waits for active tasks to finish. Returns true if all workers
// finished before the context deadline.
func (c *Client) Stop(ctx context.Context) bool {
	c.mu.RLock()
	if !c.started {
		c.mu.RUnlock()
		return true
	}
	c.mu.RUnlock()

	slog.Info("Stopping task queue")
	success := c.client.Stop(ctx)
	if success {
		slog.Info("Task queue stopped gracefully")
	} else {
		slog.Warn("Task queue stopped with timeout, some tasks may not have completed")
	}
	return success
}

// Close releases all resources. Should be called after Stop().
func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Add starts an operation to enqueue one or more tasks.
func (c *Client) Add(tasks ...backlite.Task) *backlite.TaskAddOp {
	return c.client.Add(tasks...)
}

// EnqueueIngest queues ingestion of title and returns the task id.
func (c *Client) EnqueueIngest(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("title is required")
	}
	ids, err := c.Add(IngestTitleTask{Title: title}).Save()
	if err != nil {
		return "", fmt.Errorf("failed to enqueue ingest task: %w", err)
	}
	return ids[0], nil
}

// Status returns the status of a task by ID.
func (c *Client) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	return c.client.Status(ctx, taskID)
}

// StatusText returns the task status as a lowercase word.
func (c *Client) StatusText(ctx context.Context, taskID string) (string, error) {
	status, err := c.Status(ctx, taskID)
	if err != nil {
		return "", err
	}
	return StatusString(status), nil
}

func StatusString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
