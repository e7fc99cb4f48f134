package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/literalura/internal/apperr"
	"github.com/mrlokans/literalura/internal/catalog"
)

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// ListResponse wraps a collection with its size.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

func newListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Data: items, Count: len(items)}
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 without exposing it.
func respondInternalError(c *gin.Context, err error, context string) {
	slog.Error("Internal error", "context", context, "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondServiceError maps catalog errors onto status codes.
func respondServiceError(c *gin.Context, err error, resource string) {
	var validation *apperr.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validation.Message, Field: validation.Field})
	case errors.Is(err, catalog.ErrNotFound):
		respondNotFound(c, resource)
	default:
		respondInternalError(c, err, resource)
	}
}

// parseIDParam reads a positive id from the URL, responding with 400
// when it is malformed.
func parseIDParam(c *gin.Context, paramName string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return id, true
}
