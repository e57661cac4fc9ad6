package handler_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/quilometragem/backend/internal/handler"
)

// discardLogger keeps handler error logs out of test output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestHello_returns200WithOKAndTime verifies that GET /api/hello returns
// HTTP 200 with ok=true and the current time in UTC.
func TestHello_returns200WithOKAndTime(t *testing.T) {
	// Arrange: wire the server through its real chi router.
	h := handler.NewHealthHandler(discardLogger()).Routes()

	req := httptest.NewRequest(http.MethodGet, "/api/hello", nil)
	rec := httptest.NewRecorder()

	// Act
	before := time.Now().Add(-time.Second)
	h.ServeHTTP(rec, req)
	after := time.Now().Add(time.Second)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		OK   bool   `json:"ok"`
		Time string `json:"time"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.OK)

	ts, err := time.Parse(time.RFC3339Nano, body.Time)
	require.NoError(t, err, "time must be RFC 3339: %q", body.Time)
	assert.Equal(t, time.UTC, ts.Location())
	assert.True(t, ts.After(before) && ts.Before(after), "time %v outside request window", ts)
}

func TestOpenAPI_served(t *testing.T) {
	h := handler.NewHealthHandler(discardLogger()).Routes()

	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "/api/registros/{id}/historico")
	assert.Contains(t, rec.Body.String(), "Every line, including the last, ends in a newline.")
}
