// Package console implements the interactive text menu over the catalog.
//
// Input and output are injected so the whole loop can be driven by a
// scripted reader in tests.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mrlokans/literalura/internal/apperr"
	"github.com/mrlokans/literalura/internal/catalog"
	"github.com/mrlokans/literalura/internal/entities"
)

const clearScreen = "\033[H\033[2J"

// Catalog is the subset of the catalog service the menu drives.
type Catalog interface {
	IngestByTitle(ctx context.Context, title string, confirm catalog.ConfirmFunc) (*catalog.IngestResult, error)
	ListBooks() ([]entities.Book, error)
	ListAuthors() ([]catalog.AuthorSummary, error)
	AuthorsAliveIn(yearInput string) ([]entities.Author, error)
	Languages() ([]string, error)
	BooksByLanguage(code string) ([]entities.Book, error)
	Statistics() (*catalog.Statistics, error)
}

// errExit ends the menu loop.
var errExit = errors.New("exit")

type Menu struct {
	catalog Catalog
	in      LineReader
	out     io.Writer

	// PauseAfterAction waits for ENTER after each action.
	PauseAfterAction bool
}

func NewMenu(c Catalog, in LineReader, out io.Writer) *Menu {
	return &Menu{
		catalog:          c,
		in:               in,
		out:              out,
		PauseAfterAction: true,
	}
}

// Run shows the menu until the user picks 0 or input ends. Action errors
// are reported and the loop continues; only a failure to read input is
// returned.
func (m *Menu) Run(ctx context.Context) error {
	fmt.Fprintln(m.out, bannerStyle.Render("Literalura · Book Catalog"))

	for {
		if ctx.Err() != nil {
			return nil
		}

		m.printOptions()
		choice, err := Prompt(m.in, m.out, "Choose an option: ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(m.out)
			m.goodbye()
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		err = m.dispatch(ctx, strings.TrimSpace(choice))
		if errors.Is(err, errExit) {
			m.goodbye()
			return nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(m.out)
			m.goodbye()
			return nil
		}
	}
}

func (m *Menu) printOptions() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, titleStyle.Render("Menu"))
	fmt.Fprintln(m.out, "  1 - Search book by title")
	fmt.Fprintln(m.out, "  2 - List cataloged books")
	fmt.Fprintln(m.out, "  3 - List cataloged authors")
	fmt.Fprintln(m.out, "  4 - List authors alive in a given year")
	fmt.Fprintln(m.out, "  5 - List books by language")
	fmt.Fprintln(m.out, "  6 - Statistics")
	fmt.Fprintln(m.out, "  0 - Exit")
	fmt.Fprintln(m.out)
}

func (m *Menu) goodbye() {
	fmt.Fprintln(m.out, "Goodbye!")
}

// dispatch runs one menu choice. Panics inside an action are reported like
// any other unexpected error so the loop survives.
func (m *Menu) dispatch(ctx context.Context, choice string) (err error) {
	var action func(context.Context) error
	switch strings.ToLower(choice) {
	case "0":
		return errExit
	case "1":
		action = m.searchByTitle
	case "2":
		action = m.listBooks
	case "3":
		action = m.listAuthors
	case "4":
		action = m.listAliveAuthors
	case "5":
		action = m.listByLanguage
	case "6":
		action = m.statistics
	case "clear", "cls":
		fmt.Fprint(m.out, clearScreen)
		return nil
	default:
		printError(m.out, "Invalid option. Choose a number from the menu.")
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Menu action panicked", "choice", choice, "panic", r)
			printError(m.out, fmt.Sprintf("Unexpected error: %v", r))
			err = nil
		}
	}()

	if err := action(ctx); err != nil {
		if errors.Is(err, io.EOF) {
			return err
		}
		slog.Debug("Menu action failed", "choice", choice, "error", err)
		printError(m.out, apperr.UserMessage(err))
	}
	return m.pause()
}

func (m *Menu) pause() error {
	if !m.PauseAfterAction {
		return nil
	}
	_, err := Prompt(m.in, m.out, "\nPress ENTER to continue...")
	return err
}

func (m *Menu) searchByTitle(ctx context.Context) error {
	title, err := Prompt(m.in, m.out, "Enter the book title: ")
	if err != nil {
		return err
	}

	fmt.Fprintln(m.out, "Searching...")
	result, err := m.catalog.IngestByTitle(ctx, title, ConfirmSave(m.in, m.out))
	if err != nil {
		return err
	}

	ReportIngest(m.out, title, result)
	return nil
}

func (m *Menu) listBooks(context.Context) error {
	books, err := m.catalog.ListBooks()
	if err != nil {
		return err
	}
	heading(m.out, "Cataloged books")
	renderBooks(m.out, books)
	return nil
}

func (m *Menu) listAuthors(context.Context) error {
	authors, err := m.catalog.ListAuthors()
	if err != nil {
		return err
	}
	heading(m.out, "Cataloged authors")
	renderAuthors(m.out, authors)
	return nil
}

func (m *Menu) listAliveAuthors(context.Context) error {
	input, err := Prompt(m.in, m.out, "Enter the year: ")
	if err != nil {
		return err
	}
	authors, err := m.catalog.AuthorsAliveIn(input)
	if err != nil {
		return err
	}
	year, _ := catalog.ParseYear(input)
	heading(m.out, fmt.Sprintf("Authors alive in %d", year))
	renderAliveAuthors(m.out, year, authors)
	return nil
}

func (m *Menu) listByLanguage(context.Context) error {
	languages, err := m.catalog.Languages()
	if err != nil {
		return err
	}
	renderLanguages(m.out, languages)

	code, err := Prompt(m.in, m.out, "Enter the language code (e.g. pt, en, es): ")
	if err != nil {
		return err
	}
	books, err := m.catalog.BooksByLanguage(code)
	if err != nil {
		return err
	}
	heading(m.out, fmt.Sprintf("Books in %q", strings.ToLower(strings.TrimSpace(code))))
	renderBooks(m.out, books)
	return nil
}

func (m *Menu) statistics(context.Context) error {
	stats, err := m.catalog.Statistics()
	if err != nil {
		return err
	}
	PrintStatistics(m.out, stats)
	return nil
}
