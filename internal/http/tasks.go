package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// TasksController queues ingestion and reports task progress.
type TasksController struct {
	queue TaskQueue
}

func NewTasksController(queue TaskQueue) *TasksController {
	return &TasksController{queue: queue}
}

// IngestRequest is the body of POST /api/ingest. Posting it is the
// confirmation, so the first hit is stored without a prompt.
type IngestRequest struct {
	Title string `json:"title" form:"title"`
}

// IngestResponse identifies the queued task.
type IngestResponse struct {
	TaskID string `json:"task_id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// Ingest handles POST /api/ingest
func (tc *TasksController) Ingest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "title must not be empty", Field: "title"})
		return
	}

	id, err := tc.queue.EnqueueIngest(title)
	if err != nil {
		respondInternalError(c, err, "enqueue ingest")
		return
	}

	c.JSON(http.StatusAccepted, IngestResponse{TaskID: id, Title: title, Status: "pending"})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.StatusText(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}
	if status == "not_found" {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": status,
	})
}
