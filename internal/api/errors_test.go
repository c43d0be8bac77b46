package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/logo-studio/backend/internal/session"
	"github.com/logo-studio/backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"api error", NewNotFoundError("session", "abc"), http.StatusNotFound, "NOT_FOUND"},
		{"wrapped api error", fmt.Errorf("outer: %w", NewConflictError("busy")), http.StatusConflict, "CONFLICT"},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, "HTTP_ERROR"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "UNKNOWN_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			ErrorHandler(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestEditError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"session", session.ErrSessionNotFound, http.StatusNotFound, "session not found: s1"},
		{"layer", session.ErrLayerNotFound, http.StatusNotFound, "layer not found: l1"},
		{"layer type", session.ErrInvalidLayer, http.StatusBadRequest, "validation failed for field: type"},
		{"clipboard", session.ErrClipboardEmpty, http.StatusConflict, "clipboard is empty"},
		{"preset", session.ErrPresetMismatch, http.StatusConflict, session.ErrPresetMismatch.Error()},
		{"other", errors.New("x"), http.StatusInternalServerError, "edit failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var apiErr *APIError
			require.True(t, errors.As(editError(tt.err, "s1", "l1"), &apiErr))
			assert.Equal(t, tt.wantStatus, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}

	assert.Nil(t, editError(nil, "s1", "l1"))
}

func TestProjectError(t *testing.T) {
	var apiErr *APIError
	require.True(t, errors.As(projectError(fmt.Errorf("load: %w", storage.ErrProjectNotFound), "p1"), &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	require.True(t, errors.As(projectError(errors.New("io"), "p1"), &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "io", apiErr.Details)
}
