package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/literalura/internal/database"
	"github.com/mrlokans/literalura/internal/scheduler"
)

type staticProbe struct {
	status scheduler.ProbeStatus
}

func (p staticProbe) Status() scheduler.ProbeStatus { return p.status }

func setupHealthTestDB(t *testing.T) *database.Database {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "health.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func getHealth(t *testing.T, controller *HealthController) (int, HealthResponse) {
	t.Helper()

	router := gin.New()
	router.GET("/health", controller.Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w.Code, response
}

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when database is connected", func(t *testing.T) {
		db := setupHealthTestDB(t)

		code, response := getHealth(t, NewHealthController(db, nil, "1.0.0"))

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Equal(t, "not configured", response.Checks["gutendex"])
		assert.Contains(t, response.Time, "T")
	})

	t.Run("reports missing database", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		code, response := getHealth(t, NewHealthController(nil, nil, "1.0.0"))

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "not configured", response.Checks["database"])
	})

	t.Run("returns unhealthy when database connection is closed", func(t *testing.T) {
		db := setupHealthTestDB(t)
		require.NoError(t, db.Close())

		code, response := getHealth(t, NewHealthController(db, nil, "1.0.0"))

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "error")
	})

	t.Run("includes probe result", func(t *testing.T) {
		db := setupHealthTestDB(t)
		probe := staticProbe{status: scheduler.ProbeStatus{
			Checked:   true,
			CheckedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		}}

		_, response := getHealth(t, NewHealthController(db, probe, "1.0.0"))

		assert.Equal(t, "ok (checked 2024-03-01T12:00:00Z)", response.Checks["gutendex"])
	})

	t.Run("unreachable upstream does not fail health", func(t *testing.T) {
		db := setupHealthTestDB(t)
		probe := staticProbe{status: scheduler.ProbeStatus{Checked: true, Err: errors.New("timeout")}}

		code, response := getHealth(t, NewHealthController(db, probe, "1.0.0"))

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "error: timeout", response.Checks["gutendex"])
	})
}
