package gutendex

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/literalura/internal/apperr"
)

func TestDecode_Fixture(t *testing.T) {
	data, err := os.ReadFile("testdata/dom_casmurro.json")
	require.NoError(t, err)

	resp, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Total())
	require.True(t, resp.HasResults())

	book := resp.FirstBook()
	require.NotNil(t, book)
	assert.Equal(t, int64(55752), book.ID)
	assert.Equal(t, "Dom Casmurro", book.Title)
	require.NotNil(t, book.DownloadCount)
	assert.Equal(t, 1234, *book.DownloadCount)

	author := book.FirstAuthor()
	require.NotNil(t, author)
	assert.Equal(t, "Machado de Assis", author.Name)
	assert.Equal(t, 1839, *author.BirthYear)
	assert.Equal(t, 1908, *author.DeathYear)
	assert.Equal(t, "pt", book.FirstLanguage())
}

func TestDecode_MissingFields(t *testing.T) {
	resp, err := Decode([]byte(`{"next": null}`))
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Total())
	assert.False(t, resp.HasResults())
	assert.Nil(t, resp.FirstBook())
}

func TestDecode_EmptyLists(t *testing.T) {
	resp, err := Decode([]byte(`{"count": 1, "results": [{"id": 1, "title": "Untitled", "authors": [], "languages": null}]}`))
	require.NoError(t, err)

	book := resp.FirstBook()
	require.NotNil(t, book)
	assert.Nil(t, book.FirstAuthor())
	assert.Equal(t, "", book.FirstLanguage())
	assert.Nil(t, book.DownloadCount)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode([]byte(`{"count": "many", "results": [`))
	require.Error(t, err)
	assert.True(t, apperr.IsDataConversion(err))
	assert.Contains(t, err.Error(), `"count": "many"`)
}

func TestNilReceivers(t *testing.T) {
	var resp *Response
	assert.Equal(t, 0, resp.Total())
	assert.Nil(t, resp.FirstBook())

	var book *BookEntry
	assert.Nil(t, book.FirstAuthor())
	assert.Equal(t, "", book.FirstLanguage())
}
