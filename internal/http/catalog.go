package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/literalura/internal/catalog"
)

// CatalogController serves read-only views of the stored catalog.
type CatalogController struct {
	reader CatalogReader
}

func NewCatalogController(reader CatalogReader) *CatalogController {
	return &CatalogController{reader: reader}
}

// ListBooks handles GET /api/books with optional language, title and
// author filters.
func (cc *CatalogController) ListBooks(c *gin.Context) {
	books, err := cc.reader.FindBooks(catalog.BookFilter{
		Language: c.Query("language"),
		Title:    c.Query("title"),
		Author:   c.Query("author"),
	})
	if err != nil {
		respondServiceError(c, err, "books")
		return
	}
	c.IndentedJSON(http.StatusOK, newListResponse(books))
}

// GetBook handles GET /api/books/:id
func (cc *CatalogController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := cc.reader.GetBook(id)
	if err != nil {
		respondServiceError(c, err, "book")
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

// ListAuthors handles GET /api/authors
func (cc *CatalogController) ListAuthors(c *gin.Context) {
	authors, err := cc.reader.ListAuthors()
	if err != nil {
		respondServiceError(c, err, "authors")
		return
	}
	c.IndentedJSON(http.StatusOK, newListResponse(authors))
}

// GetAuthor handles GET /api/authors/:id
func (cc *CatalogController) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := cc.reader.GetAuthor(uint(id))
	if err != nil {
		respondServiceError(c, err, "author")
		return
	}
	c.IndentedJSON(http.StatusOK, author)
}

// AliveAuthors handles GET /api/authors/alive?year=Y
func (cc *CatalogController) AliveAuthors(c *gin.Context) {
	year, ok := c.GetQuery("year")
	if !ok {
		respondBadRequest(c, "year query parameter is required")
		return
	}

	authors, err := cc.reader.AuthorsAliveIn(year)
	if err != nil {
		respondServiceError(c, err, "authors")
		return
	}
	c.IndentedJSON(http.StatusOK, newListResponse(authors))
}

// ListLanguages handles GET /api/languages
func (cc *CatalogController) ListLanguages(c *gin.Context) {
	languages, err := cc.reader.Languages()
	if err != nil {
		respondServiceError(c, err, "languages")
		return
	}
	c.IndentedJSON(http.StatusOK, newListResponse(languages))
}

// GetLanguage handles GET /api/languages/:code
func (cc *CatalogController) GetLanguage(c *gin.Context) {
	language, err := cc.reader.Language(c.Param("code"))
	if err != nil {
		respondServiceError(c, err, "language")
		return
	}
	c.IndentedJSON(http.StatusOK, language)
}

// Statistics handles GET /api/stats
func (cc *CatalogController) Statistics(c *gin.Context) {
	stats, err := cc.reader.Statistics()
	if err != nil {
		respondServiceError(c, err, "statistics")
		return
	}
	c.IndentedJSON(http.StatusOK, stats)
}
