package gutendex

import (
	"encoding/json"

	"github.com/mrlokans/literalura/internal/apperr"
)

// Response is a page of search results. Fields the catalog does not use
// are ignored when decoding.
type Response struct {
	Count    *int        `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  []BookEntry `json:"results"`
}

// BookEntry is one book as returned by the API.
type BookEntry struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Authors       []AuthorEntry `json:"authors"`
	Languages     []string      `json:"languages"`
	DownloadCount *int          `json:"download_count"`
}

// AuthorEntry is one author as returned by the API.
type AuthorEntry struct {
	Name      string `json:"name"`
	BirthYear *int   `json:"birth_year"`
	DeathYear *int   `json:"death_year"`
}

// Decode parses a search response body.
func Decode(data []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &apperr.DataConversionError{
			Message: "malformed books API response",
			Payload: string(data),
			Cause:   err,
		}
	}
	return &resp, nil
}

// Total returns the reported result count, or 0 when absent.
func (r *Response) Total() int {
	if r == nil || r.Count == nil {
		return 0
	}
	return *r.Count
}

func (r *Response) HasResults() bool {
	return r != nil && len(r.Results) > 0
}

// FirstBook returns the first result, or nil when there are none.
func (r *Response) FirstBook() *BookEntry {
	if !r.HasResults() {
		return nil
	}
	return &r.Results[0]
}

// FirstAuthor returns the first listed author, or nil.
func (b *BookEntry) FirstAuthor() *AuthorEntry {
	if b == nil || len(b.Authors) == 0 {
		return nil
	}
	return &b.Authors[0]
}

// FirstLanguage returns the first listed language code, or "" when none.
func (b *BookEntry) FirstLanguage() string {
	if b == nil || len(b.Languages) == 0 {
		return ""
	}
	return b.Languages[0]
}
