// Package catalog implements the catalog operations: ingesting a book found
// on Gutendex and the read-only reports over what has been stored.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mrlokans/literalura/internal/apperr"
	"github.com/mrlokans/literalura/internal/entities"
	"github.com/mrlokans/literalura/internal/gutendex"

	catalogdb "github.com/mrlokans/literalura/internal/database/catalog"
)

const (
	maxTitleLength = 500
	topBooksLimit  = 3
)

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyCataloged = errors.New("book is already cataloged")
)

// BooksAPI is the remote catalogue searched during ingestion.
type BooksAPI interface {
	SearchByTitle(ctx context.Context, title string) (*gutendex.Response, error)
	SearchByAuthor(ctx context.Context, author string) (*gutendex.Response, error)
	SearchByLanguage(ctx context.Context, code string) (*gutendex.Response, error)
	Ping(ctx context.Context) error
}

// ConfirmFunc is asked before a found book is stored. Returning false
// leaves the store untouched.
type ConfirmFunc func(entry *gutendex.BookEntry) bool

// IngestStatus is the outcome of an ingestion that did not fail.
type IngestStatus int

const (
	IngestSaved IngestStatus = iota
	IngestDeclined
	IngestAlreadyCataloged
	IngestNotFound
)

func (s IngestStatus) String() string {
	switch s {
	case IngestSaved:
		return "saved"
	case IngestDeclined:
		return "declined"
	case IngestAlreadyCataloged:
		return "already_cataloged"
	case IngestNotFound:
		return "not_found"
	default:
		return fmt.Sprintf("IngestStatus(%d)", int(s))
	}
}

// IngestResult describes what an ingestion did. Entry is the first search
// hit (nil when nothing matched); Book is set only when it was stored.
type IngestResult struct {
	Status IngestStatus
	Entry  *gutendex.BookEntry
	Book   *entities.Book
}

// AuthorSummary is an author with the number of stored books.
type AuthorSummary struct {
	entities.Author
	Books int64 `json:"books"`
}

// Statistics summarises the stored catalog.
type Statistics struct {
	TotalBooks    int64                     `json:"total_books"`
	TotalAuthors  int64                     `json:"total_authors"`
	LanguageCount int                       `json:"language_count"`
	Languages     []string                  `json:"languages"`
	ByLanguage    []catalogdb.LanguageCount `json:"by_language"`
	TopBooks      []entities.Book           `json:"top_books"`
}

// BookFilter narrows a listing. Empty fields do not filter.
type BookFilter struct {
	Language string
	Title    string
	Author   string
}

type Service struct {
	store TxStore
	api   BooksAPI
}

func NewService(store TxStore, api BooksAPI) *Service {
	return &Service{store: store, api: api}
}

// Lookup searches the API by title and returns the first hit. It returns
// ErrNotFound when nothing matched and ErrAlreadyCataloged (along with the
// hit) when the book is already stored.
func (s *Service) Lookup(ctx context.Context, title string) (*gutendex.BookEntry, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}

	resp, err := s.api.SearchByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	entry := resp.FirstBook()
	if entry == nil {
		return nil, ErrNotFound
	}

	exists, err := s.store.ExistsBookByID(entry.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return entry, ErrAlreadyCataloged
	}
	return entry, nil
}

// IngestByTitle runs the whole pipeline: search, duplicate check, confirm
// and save. confirm is never asked about a book that is already stored.
func (s *Service) IngestByTitle(ctx context.Context, title string, confirm ConfirmFunc) (*IngestResult, error) {
	entry, err := s.Lookup(ctx, title)
	switch {
	case errors.Is(err, ErrNotFound):
		slog.Info("No book found", "title", title)
		return &IngestResult{Status: IngestNotFound}, nil
	case errors.Is(err, ErrAlreadyCataloged):
		slog.Info("Book already cataloged", "id", entry.ID, "title", entry.Title)
		return &IngestResult{Status: IngestAlreadyCataloged, Entry: entry}, nil
	case err != nil:
		return nil, err
	}

	if confirm == nil || !confirm(entry) {
		return &IngestResult{Status: IngestDeclined, Entry: entry}, nil
	}

	book, err := s.Save(entry)
	if errors.Is(err, ErrAlreadyCataloged) {
		return &IngestResult{Status: IngestAlreadyCataloged, Entry: entry}, nil
	}
	if err != nil {
		return nil, err
	}
	return &IngestResult{Status: IngestSaved, Entry: entry, Book: book}, nil
}

// Save stores entry and its first author in one transaction. An existing
// author with the same name (ignoring case) is reused as stored; its years
// are not overwritten.
func (s *Service) Save(entry *gutendex.BookEntry) (*entities.Book, error) {
	if entry == nil {
		return nil, apperr.NewDomain("nothing to save")
	}
	source := entry.FirstAuthor()
	if source == nil || strings.TrimSpace(source.Name) == "" {
		return nil, apperr.NewDomain("a book must have an author")
	}

	var saved *entities.Book
	err := s.store.Transact(func(tx Store) error {
		exists, err := tx.ExistsBookByID(entry.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyCataloged
		}

		author, err := tx.FindAuthorByName(source.Name)
		if err != nil {
			return err
		}
		if author == nil {
			author, err = entities.NewAuthor(source.Name, source.BirthYear, source.DeathYear)
			if err != nil {
				return err
			}
			if err := tx.SaveAuthor(author); err != nil {
				return fmt.Errorf("failed to save author: %w", err)
			}
			slog.Info("Created author", "id", author.ID, "name", author.Name)
		}

		book := &entities.Book{
			ID:            entry.ID,
			Title:         strings.TrimSpace(entry.Title),
			Language:      strings.ToLower(strings.TrimSpace(entry.FirstLanguage())),
			DownloadCount: entry.DownloadCount,
			AuthorID:      author.ID,
		}
		if err := book.Validate(); err != nil {
			return err
		}
		if err := tx.SaveBook(book); err != nil {
			return fmt.Errorf("failed to save book: %w", err)
		}
		book.Author = *author
		saved = book
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Book cataloged", "id", saved.ID, "title", saved.Title, "author", saved.Author.Name)
	return saved, nil
}

func (s *Service) ListBooks() ([]entities.Book, error) {
	return s.store.ListBooks()
}

// FindBooks lists stored books matching every non-empty filter field.
func (s *Service) FindBooks(filter BookFilter) ([]entities.Book, error) {
	filter.Language = strings.TrimSpace(filter.Language)
	filter.Title = strings.TrimSpace(filter.Title)
	filter.Author = strings.TrimSpace(filter.Author)

	var books []entities.Book
	var err error
	switch {
	case filter.Author != "":
		books, err = s.store.ListBooksByAuthorName(filter.Author)
	case filter.Title != "":
		books, err = s.store.SearchBooksByTitle(filter.Title)
	case filter.Language != "":
		books, err = s.store.ListBooksByLanguage(filter.Language)
	default:
		books, err = s.store.ListBooks()
	}
	if err != nil {
		return nil, err
	}

	out := books[:0]
	for _, b := range books {
		if filter.Language != "" && !strings.EqualFold(b.Language, filter.Language) {
			continue
		}
		if filter.Title != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(filter.Title)) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// GetBook returns a stored book or ErrNotFound.
func (s *Service) GetBook(id int64) (*entities.Book, error) {
	book, err := s.store.FindBookByID(id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrNotFound
	}
	return book, nil
}

// ListAuthors returns every author with the number of books stored for them.
func (s *Service) ListAuthors() ([]AuthorSummary, error) {
	authors, err := s.store.ListAuthors()
	if err != nil {
		return nil, err
	}
	counts, err := s.store.BookCountsByAuthor()
	if err != nil {
		return nil, err
	}

	summaries := make([]AuthorSummary, 0, len(authors))
	for _, a := range authors {
		summaries = append(summaries, AuthorSummary{Author: a, Books: counts[a.ID]})
	}
	return summaries, nil
}

// GetAuthor returns one author with the number of books stored for them.
func (s *Service) GetAuthor(id uint) (*AuthorSummary, error) {
	author, err := s.store.GetAuthorByID(id)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrNotFound
	}
	counts, err := s.store.BookCountsByAuthor()
	if err != nil {
		return nil, err
	}
	return &AuthorSummary{Author: *author, Books: counts[author.ID]}, nil
}

// ParseYear reads a whole-number year from user input.
func ParseYear(input string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, apperr.NewValidation("year", "year must be a whole number")
	}
	return year, nil
}

// AuthorsAliveIn parses yearInput and lists the authors alive that year.
// Invalid input is rejected before the store is consulted.
func (s *Service) AuthorsAliveIn(yearInput string) ([]entities.Author, error) {
	year, err := ParseYear(yearInput)
	if err != nil {
		return nil, err
	}
	return s.store.AuthorsAliveIn(year)
}

func (s *Service) Languages() ([]string, error) {
	return s.store.DistinctLanguages()
}

// LanguageSummary is a language code with its display name and book count.
type LanguageSummary struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Books int64  `json:"books"`
}

// Language counts stored books in a language code. Unknown codes yield a
// zero count, not an error.
func (s *Service) Language(code string) (*LanguageSummary, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil, apperr.NewValidation("language", "language code must not be empty")
	}
	books, err := s.store.CountBooksByLanguage(code)
	if err != nil {
		return nil, err
	}
	return &LanguageSummary{
		Code:  code,
		Name:  (&entities.Book{Language: code}).LanguageName(),
		Books: books,
	}, nil
}

// BooksByLanguage lists stored books in the given language code, ignoring
// case and surrounding whitespace.
func (s *Service) BooksByLanguage(code string) ([]entities.Book, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil, apperr.NewValidation("language", "language code must not be empty")
	}
	return s.store.ListBooksByLanguage(code)
}

func (s *Service) Statistics() (*Statistics, error) {
	books, err := s.store.CountBooks()
	if err != nil {
		return nil, err
	}
	authors, err := s.store.CountAuthors()
	if err != nil {
		return nil, err
	}
	languages, err := s.store.DistinctLanguages()
	if err != nil {
		return nil, err
	}
	breakdown, err := s.store.LanguageBreakdown()
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		TotalBooks:    books,
		TotalAuthors:  authors,
		LanguageCount: len(languages),
		Languages:     languages,
		ByLanguage:    breakdown,
	}
	if books > 0 {
		stats.TopBooks, err = s.store.TopByDownloads(topBooksLimit)
		if err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// SearchRemoteByAuthor lists API results for an author without storing them.
func (s *Service) SearchRemoteByAuthor(ctx context.Context, author string) ([]gutendex.BookEntry, error) {
	resp, err := s.api.SearchByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// SearchRemoteByLanguage lists API results in a language without storing them.
func (s *Service) SearchRemoteByLanguage(ctx context.Context, code string) ([]gutendex.BookEntry, error) {
	resp, err := s.api.SearchByLanguage(ctx, code)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// CheckUpstream reports whether the books API is reachable.
func (s *Service) CheckUpstream(ctx context.Context) error {
	return s.api.Ping(ctx)
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperr.NewValidation("title", "title must not be empty")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", apperr.NewValidation("title", fmt.Sprintf("title is too long (max %d characters)", maxTitleLength))
	}
	return title, nil
}
