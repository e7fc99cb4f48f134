package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	titles   []string
	statuses map[string]string
	err      error
}

func (q *fakeQueue) EnqueueIngest(title string) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	q.titles = append(q.titles, title)
	return "task-1", nil
}

func (q *fakeQueue) StatusText(_ context.Context, taskID string) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	if s, ok := q.statuses[taskID]; ok {
		return s, nil
	}
	return "not_found", nil
}

func setupTasksRouter(queue *fakeQueue) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(RouterConfig{Tasks: queue})
}

func postIngest(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/ingest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestTasksController_Ingest(t *testing.T) {
	t.Run("queues trimmed title", func(t *testing.T) {
		queue := &fakeQueue{}
		w := postIngest(setupTasksRouter(queue), `{"title": "  Dom Casmurro "}`)

		require.Equal(t, http.StatusAccepted, w.Code)

		var response IngestResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "task-1", response.TaskID)
		assert.Equal(t, "pending", response.Status)
		assert.Equal(t, []string{"Dom Casmurro"}, queue.titles)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		queue := &fakeQueue{}
		w := postIngest(setupTasksRouter(queue), `{"title": "   "}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, queue.titles)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		w := postIngest(setupTasksRouter(&fakeQueue{}), `{"title":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("queue failure", func(t *testing.T) {
		w := postIngest(setupTasksRouter(&fakeQueue{err: errors.New("disk full")}), `{"title": "x"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "disk full")
	})
}

func TestTasksController_GetTaskStatus(t *testing.T) {
	router := setupTasksRouter(&fakeQueue{statuses: map[string]string{"abc": "success"}})

	t.Run("known task", func(t *testing.T) {
		w := doGet(router, "/api/tasks/abc")
		require.Equal(t, http.StatusOK, w.Code)

		var response map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "success", response["status"])
		assert.Equal(t, "abc", response["id"])
	})

	t.Run("unknown task", func(t *testing.T) {
		w := doGet(router, "/api/tasks/nope")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
