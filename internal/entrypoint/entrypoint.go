package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/literalura/internal/catalog"
	"github.com/mrlokans/literalura/internal/config"
	"github.com/mrlokans/literalura/internal/database"
	http_controllers "github.com/mrlokans/literalura/internal/http"
	"github.com/mrlokans/literalura/internal/scheduler"
	"github.com/mrlokans/literalura/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Deps are the already-open components the server is built from.
type Deps struct {
	Config   *config.Config
	Database *database.Database
	Service  *catalog.Service
	Upstream scheduler.Pinger
	Version  string
}

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// kill -9 cannot be caught, so only SIGINT and SIGTERM are handled
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-quit:
	}
	slog.Info("Shutting down server", "timeout", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work first so no task writes after the server is gone.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("Server exiting")
	return nil
}

// Run starts the task queue, the upstream probe and the HTTP API.
func Run(deps Deps) error {
	cfg := deps.Config
	slog.Info("Starting Literalura", "version", deps.Version)

	routerCfg := http_controllers.RouterConfig{
		Catalog:  deps.Service,
		Database: deps.Database,
		Version:  deps.Version,
	}

	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		var err error
		taskClient, err = tasks.NewClient(cfg.Database.Path, cfg.Tasks)
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				slog.Error("Error closing task client", "error", err)
			}
		}()

		taskClient.Register(tasks.NewIngestTitleQueue(deps.Service))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		routerCfg.Tasks = taskClient
	} else {
		slog.Info("Task queue disabled, POST /api/ingest is not available")
	}

	var probe *scheduler.UpstreamProbe
	probeCtx, probeCancel := context.WithCancel(context.Background())
	defer probeCancel()
	if cfg.UpstreamProbe.Enabled && deps.Upstream != nil {
		probe = scheduler.NewUpstreamProbe(deps.Upstream, cfg.UpstreamProbe.Schedule)
		if err := probe.Start(probeCtx); err != nil {
			return err
		}
		routerCfg.Probe = probe
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if probe != nil {
			probe.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	return Serve(router, cfg, onShutdown)
}
