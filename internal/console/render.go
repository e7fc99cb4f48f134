package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/mrlokans/literalura/internal/catalog"
	"github.com/mrlokans/literalura/internal/entities"
	"github.com/mrlokans/literalura/internal/gutendex"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2)
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))
	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))
)

func heading(out io.Writer, title string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, titleStyle.Render(title))
}

func printError(out io.Writer, msg string) {
	fmt.Fprintln(out, errorStyle.Render(msg))
}

func printNotice(out io.Writer, msg string) {
	fmt.Fprintln(out, noticeStyle.Render(msg))
}

func printSuccess(out io.Writer, msg string) {
	fmt.Fprintln(out, successStyle.Render(msg))
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

// Downloads formats a download count with thousands separators.
func Downloads(count *int) string {
	if count == nil {
		return "n/a"
	}
	return humanize.Comma(int64(*count))
}

// Lifespan renders birth and death years as "1839-1908", "?-1908" or "1950-".
func Lifespan(birth, death *int) string {
	if birth == nil && death == nil {
		return "unknown"
	}
	b, d := "?", ""
	if birth != nil {
		b = strconv.Itoa(*birth)
	}
	if death != nil {
		d = strconv.Itoa(*death)
	}
	return b + "-" + d
}

func renderEntry(out io.Writer, entry *gutendex.BookEntry) {
	heading(out, "Book found")
	fmt.Fprintf(out, "  ID:        %d\n", entry.ID)
	fmt.Fprintf(out, "  Title:     %s\n", entry.Title)
	if author := entry.FirstAuthor(); author != nil {
		fmt.Fprintf(out, "  Author:    %s (%s)\n", author.Name, Lifespan(author.BirthYear, author.DeathYear))
	} else {
		fmt.Fprintln(out, "  Author:    unknown")
	}
	lang := entry.FirstLanguage()
	fmt.Fprintf(out, "  Language:  %s (%s)\n", (&entities.Book{Language: lang}).LanguageName(), lang)
	fmt.Fprintf(out, "  Downloads: %s\n", Downloads(entry.DownloadCount))
}

func renderEntries(out io.Writer, entries []gutendex.BookEntry) {
	if len(entries) == 0 {
		printNotice(out, "No books found.")
		return
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tLANGUAGE\tDOWNLOADS")
	for i := range entries {
		e := &entries[i]
		author := ""
		if a := e.FirstAuthor(); a != nil {
			author = a.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.ID, truncate(e.Title, 60), author, e.FirstLanguage(), Downloads(e.DownloadCount))
	}
	tw.Flush()
}

func renderBooks(out io.Writer, books []entities.Book) {
	if len(books) == 0 {
		printNotice(out, "No books cataloged yet.")
		return
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tLANGUAGE\tDOWNLOADS")
	for i := range books {
		b := &books[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", b.ID, truncate(b.Title, 60), b.Author.Name, b.LanguageName(), Downloads(b.DownloadCount))
	}
	tw.Flush()
	fmt.Fprintf(out, "\n%d book(s)\n", len(books))
}

func renderAuthors(out io.Writer, authors []catalog.AuthorSummary) {
	if len(authors) == 0 {
		printNotice(out, "No authors cataloged yet.")
		return
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "NAME\tLIFESPAN\tBOOKS")
	for _, a := range authors {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", a.Name, Lifespan(a.BirthYear, a.DeathYear), a.Books)
	}
	tw.Flush()
	fmt.Fprintf(out, "\n%d author(s)\n", len(authors))
}

func renderAliveAuthors(out io.Writer, year int, authors []entities.Author) {
	if len(authors) == 0 {
		printNotice(out, fmt.Sprintf("No cataloged authors were alive in %d.", year))
		return
	}
	tw := newTable(out)
	fmt.Fprintf(tw, "NAME\tLIFESPAN\tAGE IN %d\n", year)
	for i := range authors {
		a := &authors[i]
		age := "unknown"
		if n, ok := a.AgeIn(year); ok {
			age = strconv.Itoa(n)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", a.Name, Lifespan(a.BirthYear, a.DeathYear), age)
	}
	tw.Flush()
}

func renderLanguages(out io.Writer, languages []string) {
	if len(languages) == 0 {
		printNotice(out, "No languages cataloged yet.")
		return
	}
	names := make([]string, 0, len(languages))
	for _, code := range languages {
		names = append(names, fmt.Sprintf("%s (%s)", code, (&entities.Book{Language: code}).LanguageName()))
	}
	fmt.Fprintln(out, "Languages in the catalog: "+strings.Join(names, ", "))
}

func renderStatistics(out io.Writer, stats *catalog.Statistics) {
	fmt.Fprintf(out, "  Books:     %s\n", humanize.Comma(stats.TotalBooks))
	fmt.Fprintf(out, "  Authors:   %s\n", humanize.Comma(stats.TotalAuthors))
	fmt.Fprintf(out, "  Languages: %d", stats.LanguageCount)
	if len(stats.Languages) > 0 {
		fmt.Fprintf(out, " (%s)", strings.Join(stats.Languages, ", "))
	}
	fmt.Fprintln(out)

	if len(stats.ByLanguage) > 0 {
		heading(out, "Books per language")
		tw := newTable(out)
		for _, lc := range stats.ByLanguage {
			fmt.Fprintf(tw, "  %s\t%s\t%d\n", lc.Language, (&entities.Book{Language: lc.Language}).LanguageName(), lc.Books)
		}
		tw.Flush()
	}

	if len(stats.TopBooks) > 0 {
		heading(out, fmt.Sprintf("Top %d by downloads", len(stats.TopBooks)))
		for i, b := range stats.TopBooks {
			fmt.Fprintf(out, "  %d. %s, %s (%s downloads)\n", i+1, b.Title, b.Author.Name, Downloads(b.DownloadCount))
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
