package cli

import (
	"fmt"
	"log/slog"

	"github.com/mrlokans/literalura/internal/catalog"
	"github.com/mrlokans/literalura/internal/config"
	"github.com/mrlokans/literalura/internal/database"
	catalogdb "github.com/mrlokans/literalura/internal/database/catalog"
	"github.com/mrlokans/literalura/internal/gutendex"
	"github.com/mrlokans/literalura/internal/logging"
)

// app holds the components every command needs.
type app struct {
	cfg     *config.Config
	db      *database.Database
	api     *gutendex.Client
	service *catalog.Service
}

// bootstrap loads configuration, sets up logging on stderr so it never
// mixes with menu output, and opens the catalog.
func (g *Globals) bootstrap() (*app, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logging.Setup(g.stderr(), cfg.Logging.Level, cfg.Logging.NoColor)

	db, err := database.Connect(database.Options{
		Driver: string(cfg.Database.Driver),
		Path:   cfg.Database.Path,
		DSN:    cfg.Database.DSN,
		Logger: logging.GormLogger(g.stderr(), cfg.Database.LogLevel),
	})
	if err != nil {
		return nil, err
	}

	api := gutendex.NewClient(gutendex.Options{
		BaseURL:           cfg.Gutendex.BaseURL,
		UserAgent:         cfg.Gutendex.UserAgent,
		Timeout:           cfg.Gutendex.Timeout,
		ConnectTimeout:    cfg.Gutendex.ConnectTimeout,
		MaxRetries:        cfg.Gutendex.MaxRetries,
		RetryDelay:        cfg.Gutendex.RetryDelay,
		RequestsPerSecond: cfg.Gutendex.RequestsPerSecond,
	})

	store := catalog.NewStore(catalogdb.NewRepository(db.DB))

	return &app{
		cfg:     cfg,
		db:      db,
		api:     api,
		service: catalog.NewService(store, api),
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		slog.Error("Error closing database", "error", err)
	}
}
