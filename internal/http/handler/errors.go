package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pawtrack.app/triage/internal/store"
	"pawtrack.app/triage/internal/triage"
)

// respondError translates classified triage errors into HTTP statuses.
// Anything unclassified is a 500 with a generic body.
func respondError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var validationErr *triage.ValidationError
	var notFoundErr *triage.NotFoundError
	var serviceErr *triage.ExternalServiceError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, triage.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, triage.ErrUnknownSymptom), errors.Is(err, triage.ErrNotStarted):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, triage.ErrStaleResult):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &serviceErr):
		slog.ErrorContext(ctx, "assessment service failure", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "assessment service unavailable, please retry"})
	default:
		slog.ErrorContext(ctx, "unhandled error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
