// Package catalog provides database operations for authors and books.
//
// Lookups that find nothing return a nil record and a nil error; callers
// decide whether absence is an error.
//
// # Usage
//
//	repo := catalog.NewRepository(db)
//	err := repo.WithTx(func(tx *catalog.Repository) error {
//		if err := tx.SaveAuthor(author); err != nil {
//			return err
//		}
//		book.AuthorID = author.ID
//		return tx.SaveBook(book)
//	})
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/literalura/internal/entities"
)

// Repository handles author and book persistence and report queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LanguageCount is the number of stored books in one language.
type LanguageCount struct {
	Language string `json:"language"`
	Books    int64  `json:"books"`
}

// AuthorBookCount is the number of stored books written by one author.
type AuthorBookCount struct {
	AuthorID uint  `json:"author_id"`
	Books    int64 `json:"books"`
}

// WithTx runs fn against a repository bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (r *Repository) WithTx(fn func(tx *Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// FindAuthorByName returns the author whose name matches case-insensitively,
// or nil when there is none.
func (r *Repository) FindAuthorByName(name string) (*entities.Author, error) {
	var author entities.Author
	err := r.db.Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).
		Order("id ASC").
		First(&author).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find author %q: %w", name, err)
	}
	return &author, nil
}

// GetAuthorByID returns the author with id, or nil when there is none.
func (r *Repository) GetAuthorByID(id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.First(&author, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get author %d: %w", id, err)
	}
	return &author, nil
}

// SaveAuthor inserts a new author (assigning its ID) or updates an existing one.
func (r *Repository) SaveAuthor(author *entities.Author) error {
	if author.ID == 0 {
		return r.db.Create(author).Error
	}
	return r.db.Save(author).Error
}

// ExistsBookByID reports whether a book with the external id is stored.
func (r *Repository) ExistsBookByID(id int64) (bool, error) {
	var count int64
	if err := r.db.Model(&entities.Book{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check book %d: %w", id, err)
	}
	return count > 0, nil
}

// SaveBook inserts a book. The referenced author must already be stored;
// the Author field is never written through.
func (r *Repository) SaveBook(book *entities.Book) error {
	if book.AuthorID == 0 && book.Author.ID != 0 {
		book.AuthorID = book.Author.ID
	}
	return r.db.Omit(clause.Associations).Create(book).Error
}

// FindBookByID returns the book with its author, or nil when there is none.
func (r *Repository) FindBookByID(id int64) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").First(&book, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book %d: %w", id, err)
	}
	return &book, nil
}

// ListBooks returns every book ordered by title.
func (r *Repository) ListBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Author").Order("title ASC, id ASC").Find(&books).Error
	return books, err
}

// ListAuthors returns every author ordered by name.
func (r *Repository) ListAuthors() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("name ASC, id ASC").Find(&authors).Error
	return authors, err
}

// AuthorsAliveIn returns the authors alive in year. A missing birth year
// counts as born and a missing death year counts as alive.
func (r *Repository) AuthorsAliveIn(year int) ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.
		Where("birth_year IS NULL OR birth_year <= ?", year).
		Where("death_year IS NULL OR death_year >= ?", year).
		Order("name ASC, id ASC").
		Find(&authors).Error
	return authors, err
}

// ListBooksByLanguage returns the books whose language matches code
// case-insensitively.
func (r *Repository) ListBooksByLanguage(code string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Author").
		Where("LOWER(language) = LOWER(?)", strings.TrimSpace(code)).
		Order("title ASC, id ASC").
		Find(&books).Error
	return books, err
}

// CountBooksByLanguage counts books whose language matches code
// case-insensitively.
func (r *Repository) CountBooksByLanguage(code string) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).
		Where("LOWER(language) = LOWER(?)", strings.TrimSpace(code)).
		Count(&count).Error
	return count, err
}

// DistinctLanguages returns the sorted set of language codes among stored books.
func (r *Repository) DistinctLanguages() ([]string, error) {
	var languages []string
	err := r.db.Model(&entities.Book{}).
		Where("language IS NOT NULL AND language <> ''").
		Distinct().
		Order("language ASC").
		Pluck("language", &languages).Error
	return languages, err
}

// LanguageBreakdown counts stored books per language code.
func (r *Repository) LanguageBreakdown() ([]LanguageCount, error) {
	var counts []LanguageCount
	err := r.db.Model(&entities.Book{}).
		Select("language, COUNT(*) AS books").
		Where("language IS NOT NULL AND language <> ''").
		Group("language").
		Order("language ASC").
		Scan(&counts).Error
	return counts, err
}

// TopByDownloads returns up to n books with the highest download counts.
// Unknown counts sort last; ties are broken by id.
func (r *Repository) TopByDownloads(n int) ([]entities.Book, error) {
	if n <= 0 {
		return nil, nil
	}
	var books []entities.Book
	err := r.db.Preload("Author").
		Order("download_count IS NULL, download_count DESC, id ASC").
		Limit(n).
		Find(&books).Error
	return books, err
}

// SearchBooksByTitle returns books whose title contains fragment,
// ignoring case.
func (r *Repository) SearchBooksByTitle(fragment string) ([]entities.Book, error) {
	var books []entities.Book
	pattern := "%" + strings.TrimSpace(fragment) + "%"
	err := r.db.Preload("Author").
		Where("LOWER(title) LIKE LOWER(?)", pattern).
		Order("title ASC, id ASC").
		Find(&books).Error
	return books, err
}

// ListBooksByAuthorName returns the books of the author whose name matches
// case-insensitively.
func (r *Repository) ListBooksByAuthorName(name string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Author").
		Joins("JOIN authors ON authors.id = books.author_id").
		Where("LOWER(authors.name) = LOWER(?)", strings.TrimSpace(name)).
		Order("books.title ASC, books.id ASC").
		Find(&books).Error
	return books, err
}

// BookCountsByAuthor returns the number of stored books per author id.
func (r *Repository) BookCountsByAuthor() (map[uint]int64, error) {
	var rows []AuthorBookCount
	err := r.db.Model(&entities.Book{}).
		Select("author_id, COUNT(*) AS books").
		Group("author_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.AuthorID] = row.Books
	}
	return counts, nil
}

func (r *Repository) CountBooks() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}

func (r *Repository) CountAuthors() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Author{}).Count(&count).Error
	return count, err
}

// DeleteBook removes a book. When it was the author's last book the author
// is removed too. Returns false when no such book exists.
func (r *Repository) DeleteBook(id int64) (bool, error) {
	deleted := false
	err := r.WithTx(func(tx *Repository) error {
		book, err := tx.FindBookByID(id)
		if err != nil || book == nil {
			return err
		}

		if err := tx.db.Delete(&entities.Book{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete book %d: %w", id, err)
		}
		deleted = true

		var remaining int64
		if err := tx.db.Model(&entities.Book{}).Where("author_id = ?", book.AuthorID).Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			if err := tx.db.Delete(&entities.Author{}, book.AuthorID).Error; err != nil {
				return fmt.Errorf("failed to delete orphaned author %d: %w", book.AuthorID, err)
			}
		}
		return nil
	})
	return deleted, err
}
