package handlers

import (
	"errors"
	"net/http"

	apperrors "ops-agent-backend/internal/errors"
	"ops-agent-backend/internal/logger"
	"ops-agent-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Deployment failed"`
	Message string `json:"message,omitempty" example:"unsupported platform"`
}

// statusForError maps agent errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case apperrors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNoConnectionPool), apperrors.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrNotCancellable):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrDeploymentCancelled):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrConnectionFailed):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrAgentShuttingDown):
		return http.StatusServiceUnavailable
	case apperrors.IsAuthentication(err):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and answers with its mapped status. extra fields are merged into the body.
func respondError(c *gin.Context, log *logger.Logger, summary string, err error, extra gin.H) {
	status := statusForError(err)

	entry := log.WithContext(c.Request.Context()).WithError(err).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.Error(summary)
	} else {
		entry.Warn(summary)
	}

	body := gin.H{"error": summary, "message": err.Error()}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// bindError answers 400 for a request body or query that could not be parsed
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Message: err.Error()})
}
