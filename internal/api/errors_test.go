package api

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/soundleaf/soundleaf-server/internal/errors"
)

func TestRegisterErrorHandler_MapsDomainErrors(t *testing.T) {
	RegisterErrorHandler()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domainerrors.NotFound("no such file"), http.StatusNotFound, "NOT_FOUND"},
		{"validation", domainerrors.Validation("bad path"), http.StatusBadRequest, "VALIDATION"},
		{"unsupported", domainerrors.Unsupported("not audio"), http.StatusUnsupportedMediaType, "UNSUPPORTED"},
		{"rate limited", domainerrors.RateLimited("slow down"), http.StatusTooManyRequests, "RATE_LIMITED"},
		{"internal", domainerrors.Internal("boom"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statusErr := huma.NewError(http.StatusInternalServerError, "unused", tt.err)

			apiErr, ok := statusErr.(*APIError)
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, apiErr.GetStatus())
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestRegisterErrorHandler_PassthroughStatus(t *testing.T) {
	RegisterErrorHandler()

	statusErr := huma.NewError(http.StatusUnprocessableEntity, "invalid input")

	apiErr, ok := statusErr.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.GetStatus())
	assert.Equal(t, "VALIDATION", apiErr.Code)
	assert.Equal(t, "invalid input", apiErr.Message)
}

func TestAPIError_ContentType(t *testing.T) {
	err := &APIError{Message: "nope"}
	assert.Equal(t, "application/json", err.ContentType("anything"))
	assert.Equal(t, "nope", err.Error())
}
