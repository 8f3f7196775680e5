package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	apperrors "ops-agent-backend/internal/errors"
	"ops-agent-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", apperrors.NewValidationError("platform", "bad"), http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("%w: %q", apperrors.ErrInvalidEnvironment, "qa"), http.StatusBadRequest},
		{"not found", apperrors.ErrDeploymentNotFound, http.StatusNotFound},
		{"no pool", fmt.Errorf("staging: %w", apperrors.ErrNoConnectionPool), http.StatusNotFound},
		{"not cancellable", apperrors.ErrNotCancellable, http.StatusBadRequest},
		{"cancelled", apperrors.ErrDeploymentCancelled, http.StatusConflict},
		{"connection", fmt.Errorf("%w: refused", apperrors.ErrConnectionFailed), http.StatusBadGateway},
		{"shutting down", service.ErrAgentShuttingDown, http.StatusServiceUnavailable},
		{"signature", apperrors.ErrInvalidWebhookSignature, http.StatusUnauthorized},
		{"rollback target", apperrors.ErrRollbackTargetInvalid, http.StatusInternalServerError},
		{"migration", apperrors.ErrMigrationFailed, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, statusForError(tt.err))
		})
	}
}
