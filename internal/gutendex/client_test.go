package gutendex

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/literalura/internal/apperr"
)

func newTestClient(url string) *Client {
	return NewClient(Options{
		BaseURL:    url + "/books/",
		UserAgent:  "literalura-test",
		RetryDelay: time.Millisecond,
	})
}

func TestClient_SearchByTitle(t *testing.T) {
	fixture, err := os.ReadFile("testdata/dom_casmurro.json")
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/books/", r.URL.Path)
		assert.Equal(t, "Dom Casmurro", r.URL.Query().Get("search"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "literalura-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(fixture)
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).SearchByTitle(context.Background(), "  Dom Casmurro ")
	require.NoError(t, err)
	require.NotNil(t, resp.FirstBook())
	assert.Equal(t, int64(55752), resp.FirstBook().ID)
}

func TestClient_SearchByLanguage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pt", r.URL.Query().Get("languages"))
		assert.Empty(t, r.URL.Query().Get("search"))
		_, _ = w.Write([]byte(`{"count": 0, "results": []}`))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).SearchByLanguage(context.Background(), " PT ")
	require.NoError(t, err)
	assert.False(t, resp.HasResults())
}

func TestClient_SearchByAuthor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Machado de Assis", r.URL.Query().Get("search"))
		_, _ = w.Write([]byte(`{"count": 0, "results": []}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).SearchByAuthor(context.Background(), "Machado de Assis")
	require.NoError(t, err)
}

func TestClient_ValidationHappensBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"empty title", func() error { _, err := client.SearchByTitle(ctx, "  "); return err }},
		{"long title", func() error { _, err := client.SearchByTitle(ctx, string(make([]rune, 501))); return err }},
		{"empty author", func() error { _, err := client.SearchByAuthor(ctx, ""); return err }},
		{"language with digits", func() error { _, err := client.SearchByLanguage(ctx, "p1"); return err }},
		{"language too long", func() error { _, err := client.SearchByLanguage(ctx, "port"); return err }},
		{"language one letter", func() error { _, err := client.SearchByLanguage(ctx, "p"); return err }},
		{"language empty", func() error { _, err := client.SearchByLanguage(ctx, " "); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
		})
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"count": 0, "results": []}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).SearchByTitle(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).SearchByTitle(context.Background(), "anything")
	require.Error(t, err)

	var apiErr *apperr.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	statuses := []int{
		http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusTooManyRequests,
	}

	for _, status := range statuses {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(status)
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).SearchByTitle(context.Background(), "anything")
			require.Error(t, err)

			var apiErr *apperr.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, status, apiErr.StatusCode)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestClient_EmptyBody(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("   \n"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).SearchByTitle(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, apperr.IsAPI(err))
	assert.Contains(t, err.Error(), "empty response")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).SearchByTitle(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, apperr.IsDataConversion(err))
}

func TestClient_TransportErrorIsStatusZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(url).SearchByTitle(context.Background(), "anything")
	require.Error(t, err)

	var apiErr *apperr.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.StatusCode)
}

func TestStatusMessage(t *testing.T) {
	assert.Equal(t, "Endpoint not found", statusMessage(404))
	assert.Equal(t, "Service unavailable, try again later", statusMessage(503))
	assert.Equal(t, "HTTP 418", statusMessage(418))
}

func TestClient_Ping(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer up.Close()
	assert.NoError(t, newTestClient(up.URL).Ping(context.Background()))

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	err := newTestClient(down.URL).Ping(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsAPI(err))
}
