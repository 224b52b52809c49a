package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/api/shared"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/platform/logger"
)

func TestNewTraceMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var seenTraceID string
	handler := NewTraceMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = shared.GetTraceID(r.Context())
		logger.FromContextOrDefault(r.Context(), nil).Info("inside handler")
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/decks", nil))

	require.NotEmpty(t, seenTraceID)
	assert.Equal(t, seenTraceID, rr.Header().Get("X-Trace-ID"))
	assert.Contains(t, buf.String(), `"msg":"request started"`)
	assert.Contains(t, buf.String(), `"msg":"inside handler"`)
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte(`"trace_id":"`+seenTraceID+`"`)))
}

func TestNewTraceMiddleware_NilLogger(t *testing.T) {
	handler := NewTraceMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
}
