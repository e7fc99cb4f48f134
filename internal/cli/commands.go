package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mrlokans/literalura/internal/console"
	"github.com/mrlokans/literalura/internal/entrypoint"
	"github.com/mrlokans/literalura/internal/gutendex"
)

// MenuCmd runs the interactive menu.
type MenuCmd struct {
	NoPause bool `help:"Do not wait for ENTER after each action"`
}

// SearchCmd queries the books API. A title search offers to store the first
// hit; author and language searches only list results.
type SearchCmd struct {
	Title    string `short:"t" help:"Search by title and offer to store the first hit" xor:"query"`
	Author   string `short:"a" help:"List books by an author" xor:"query"`
	Language string `short:"l" help:"List books in a language code (e.g. pt, en)" xor:"query"`
	Yes      bool   `short:"y" help:"Store the title hit without asking"`
}

type StatsCmd struct{}

type CheckCmd struct{}

type ServeCmd struct{}

type VersionCmd struct{}

func (m *MenuCmd) Run(ctx context.Context, g *Globals) error {
	a, err := g.bootstrap()
	if err != nil {
		return err
	}
	defer a.Close()

	menu := console.NewMenu(a.service, console.NewLineReader(g.stdin()), g.stdout())
	menu.PauseAfterAction = !m.NoPause
	return menu.Run(ctx)
}

func (s *SearchCmd) Run(ctx context.Context, g *Globals) error {
	if strings.TrimSpace(s.Title+s.Author+s.Language) == "" {
		return errors.New("one of --title, --author or --language is required")
	}

	a, err := g.bootstrap()
	if err != nil {
		return err
	}
	defer a.Close()

	out := g.stdout()
	switch {
	case s.Title != "":
		confirm := console.ConfirmSave(console.NewLineReader(g.stdin()), out)
		if s.Yes {
			confirm = func(*gutendex.BookEntry) bool { return true }
		}
		result, err := a.service.IngestByTitle(ctx, s.Title, confirm)
		if err != nil {
			console.PrintError(out, err)
			return err
		}
		console.ReportIngest(out, s.Title, result)

	case s.Author != "":
		entries, err := a.service.SearchRemoteByAuthor(ctx, s.Author)
		if err != nil {
			console.PrintError(out, err)
			return err
		}
		console.PrintEntries(out, fmt.Sprintf("Books by %q", strings.TrimSpace(s.Author)), entries)

	default:
		entries, err := a.service.SearchRemoteByLanguage(ctx, s.Language)
		if err != nil {
			console.PrintError(out, err)
			return err
		}
		console.PrintEntries(out, fmt.Sprintf("Books in %q", strings.ToLower(strings.TrimSpace(s.Language))), entries)
	}
	return nil
}

func (s *StatsCmd) Run(g *Globals) error {
	a, err := g.bootstrap()
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := a.service.Statistics()
	if err != nil {
		return err
	}
	console.PrintStatistics(g.stdout(), stats)
	return nil
}

// Run pings the database and the books API. Both are reported before the
// first failure is returned.
func (c *CheckCmd) Run(ctx context.Context, g *Globals) error {
	a, err := g.bootstrap()
	if err != nil {
		return err
	}
	defer a.Close()

	out := g.stdout()
	var failures []error

	if err := a.db.Ping(ctx); err != nil {
		fmt.Fprintf(out, "database: error: %v\n", err)
		failures = append(failures, fmt.Errorf("database: %w", err))
	} else {
		fmt.Fprintln(out, "database: ok")
	}

	if err := a.service.CheckUpstream(ctx); err != nil {
		fmt.Fprintf(out, "books API (%s): error: %v\n", a.cfg.Gutendex.BaseURL, err)
		failures = append(failures, fmt.Errorf("books API: %w", err))
	} else {
		fmt.Fprintf(out, "books API (%s): ok\n", a.cfg.Gutendex.BaseURL)
	}

	return errors.Join(failures...)
}

func (s *ServeCmd) Run(g *Globals) error {
	a, err := g.bootstrap()
	if err != nil {
		return err
	}
	defer a.Close()

	return runServer(entrypoint.Deps{
		Config:   a.cfg,
		Database: a.db,
		Service:  a.service,
		Upstream: a.api,
		Version:  g.AppVersion,
	})
}

func (v *VersionCmd) Run(g *Globals) error {
	fmt.Fprintf(g.stdout(), "literalura %s\n", g.AppVersion)
	return nil
}
