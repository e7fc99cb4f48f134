// Package cli wires configuration, storage and the books API into the
// command-line entry points.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/mrlokans/literalura/internal/config"
	"github.com/mrlokans/literalura/internal/entrypoint"
)

var runServer = entrypoint.Run

// Globals are flags shared by every command. In, Out and Err default to the
// process streams and are replaced in tests.
type Globals struct {
	EnvFile  string `help:"Path to a .env file loaded before reading the environment" default:".env" type:"path"`
	LogLevel string `help:"Override LOG_LEVEL (debug, info, warn, error)"`
	Database string `name:"db" help:"Override DATABASE_PATH for the sqlite catalog" type:"path"`

	AppVersion string    `kong:"-"`
	In         io.Reader `kong:"-"`
	Out        io.Writer `kong:"-"`
	Err        io.Writer `kong:"-"`
}

// CLI represents the complete command structure for the literalura binary.
type CLI struct {
	Globals

	Menu    MenuCmd    `cmd:"" default:"1" help:"Run the interactive catalog menu"`
	Search  SearchCmd  `cmd:"" help:"Search the books API by title, author or language"`
	Stats   StatsCmd   `cmd:"" help:"Print catalog statistics"`
	Check   CheckCmd   `cmd:"" help:"Check that the database and the books API are reachable"`
	Serve   ServeCmd   `cmd:"" help:"Start the HTTP API, task queue and upstream probe"`
	Version VersionCmd `cmd:"" help:"Print the version"`
}

func parserOptions(ctx context.Context) []kong.Option {
	return []kong.Option{
		kong.Name("literalura"),
		kong.Description("A book catalog backed by the Gutendex API."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	}
}

// Execute runs the Kong-based CLI.
func Execute(version string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	cli.AppVersion = version

	kctx := kong.Parse(&cli, parserOptions(ctx)...)

	err := kctx.Run(&cli.Globals)
	if err != nil {
		slog.Error("Command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func (g *Globals) stdin() io.Reader {
	if g.In != nil {
		return g.In
	}
	return os.Stdin
}

func (g *Globals) stdout() io.Writer {
	if g.Out != nil {
		return g.Out
	}
	return os.Stdout
}

func (g *Globals) stderr() io.Writer {
	if g.Err != nil {
		return g.Err
	}
	return os.Stderr
}

// loadConfig reads the environment and applies flag overrides.
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg := config.Load(g.EnvFile)
	if g.LogLevel != "" {
		cfg.Logging.Level = g.LogLevel
	}
	if g.Database != "" {
		cfg.Database.Driver = config.DriverSQLite
		cfg.Database.Path = g.Database
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
