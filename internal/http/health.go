package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/literalura/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	db      *database.Database
	probe   ProbeReporter
	version string
}

func NewHealthController(db *database.Database, probe ProbeReporter, version string) *HealthController {
	return &HealthController{
		db:      db,
		probe:   probe,
		version: version,
	}
}

// Status reports database connectivity and the last upstream probe. Only the
// database decides health; an unreachable books API degrades ingestion but
// reads keep working.
func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	if h.probe != nil {
		checks["gutendex"] = h.probe.Status().Summary()
	} else {
		checks["gutendex"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
