package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/mrlokans/literalura/internal/apperr"
	"github.com/mrlokans/literalura/internal/catalog"
	"github.com/mrlokans/literalura/internal/gutendex"
)

// ReportIngest prints the outcome of a title ingestion.
func ReportIngest(out io.Writer, title string, result *catalog.IngestResult) {
	switch result.Status {
	case catalog.IngestNotFound:
		printNotice(out, fmt.Sprintf("No book found for %q.", strings.TrimSpace(title)))
	case catalog.IngestAlreadyCataloged:
		printNotice(out, fmt.Sprintf("%q is already in the catalog.", result.Entry.Title))
	case catalog.IngestDeclined:
		printNotice(out, "Book not saved.")
	case catalog.IngestSaved:
		printSuccess(out, fmt.Sprintf("Saved %q by %s.", result.Book.Title, result.Book.Author.Name))
	}
}

// PrintEntries lists remote search hits under a heading.
func PrintEntries(out io.Writer, title string, entries []gutendex.BookEntry) {
	heading(out, title)
	renderEntries(out, entries)
}

func PrintStatistics(out io.Writer, stats *catalog.Statistics) {
	heading(out, "Catalog statistics")
	renderStatistics(out, stats)
}

// PrintError renders err the way menu actions report failures.
func PrintError(out io.Writer, err error) {
	printError(out, apperr.UserMessage(err))
}
