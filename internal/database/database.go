package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/literalura/internal/entities"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options selects the backing store. Path is used by sqlite, DSN by postgres.
type Options struct {
	Driver string
	Path   string
	DSN    string
	Logger logger.Interface
}

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens (creating if needed) a sqlite catalog at dbPath.
func NewDatabase(dbPath string) (*Database, error) {
	return Connect(Options{Driver: DriverSQLite, Path: dbPath})
}

// Connect opens the configured store and migrates the catalog schema.
func Connect(opts Options) (*Database, error) {
	dialector, target, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}

	gormLogger := opts.Logger
	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Book{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Info("Database initialized", "driver", opts.Driver, "target", target)

	return &Database{DB: db}, nil
}

func dialectorFor(opts Options) (gorm.Dialector, string, error) {
	switch opts.Driver {
	case DriverSQLite, "":
		if opts.Path == "" {
			return nil, "", fmt.Errorf("sqlite database path is required")
		}
		return sqlite.Open(sqliteDSN(opts.Path)), opts.Path, nil
	case DriverPostgres:
		if opts.DSN == "" {
			return nil, "", fmt.Errorf("postgres DSN is required")
		}
		return postgres.Open(opts.DSN), "postgres", nil
	default:
		return nil, "", fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

// sqliteDSN turns on foreign key enforcement so deleting an author cascades
// to its books.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// Ping verifies the connection is alive.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
