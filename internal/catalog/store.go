package catalog

import (
	"github.com/mrlokans/literalura/internal/entities"

	catalogdb "github.com/mrlokans/literalura/internal/database/catalog"
)

// Store is the persistence the service reads and writes through.
type Store interface {
	FindAuthorByName(name string) (*entities.Author, error)
	GetAuthorByID(id uint) (*entities.Author, error)
	SaveAuthor(author *entities.Author) error
	ExistsBookByID(id int64) (bool, error)
	SaveBook(book *entities.Book) error
	FindBookByID(id int64) (*entities.Book, error)

	ListBooks() ([]entities.Book, error)
	ListAuthors() ([]entities.Author, error)
	AuthorsAliveIn(year int) ([]entities.Author, error)
	ListBooksByLanguage(code string) ([]entities.Book, error)
	ListBooksByAuthorName(name string) ([]entities.Book, error)
	SearchBooksByTitle(fragment string) ([]entities.Book, error)
	DistinctLanguages() ([]string, error)
	CountBooksByLanguage(code string) (int64, error)
	LanguageBreakdown() ([]catalogdb.LanguageCount, error)
	TopByDownloads(n int) ([]entities.Book, error)
	BookCountsByAuthor() (map[uint]int64, error)
	CountBooks() (int64, error)
	CountAuthors() (int64, error)
}

// TxStore is a Store that can run a unit of work in one transaction.
type TxStore interface {
	Store
	Transact(fn func(tx Store) error) error
}

type repositoryStore struct {
	*catalogdb.Repository
}

// NewStore adapts the database repository to the service.
func NewStore(repo *catalogdb.Repository) TxStore {
	return repositoryStore{Repository: repo}
}

func (s repositoryStore) Transact(fn func(tx Store) error) error {
	return s.WithTx(func(tx *catalogdb.Repository) error {
		return fn(repositoryStore{Repository: tx})
	})
}
