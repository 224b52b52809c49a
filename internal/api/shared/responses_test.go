package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/platform/logger"
)

// newRequest returns a request whose context carries a trace ID and a test
// logger, the way the trace middleware sets them up.
func newRequest(t *testing.T, method, path string) (*http.Request, *logger.TestLogBuffer) {
	t.Helper()
	ctx, buf := logger.TestContext(t)
	ctx = SetTraceID(ctx)
	return httptest.NewRequest(method, path, nil).WithContext(ctx), buf
}

func TestRespondWithJSON(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		data         any
		expectedBody string
	}{
		{"object", http.StatusOK, map[string]int{"due": 3}, "{\"due\":3}\n"},
		{"created", http.StatusCreated, []string{"#flashcards"}, "[\"#flashcards\"]\n"},
		{"nil", http.StatusOK, nil, "null\n"},
		{"no content has no body", http.StatusNoContent, map[string]int{"ignored": 1}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := newRequest(t, http.MethodGet, "/api/decks")
			w := httptest.NewRecorder()

			RespondWithJSON(w, r, tc.status, tc.data)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestRespondWithJSONEncodingError(t *testing.T) {
	r, buf := newRequest(t, http.MethodGet, "/api/stats")
	w := httptest.NewRecorder()

	RespondWithJSON(w, r, http.StatusOK, map[string]float64{"ease": math.NaN()})

	assert.Equal(t, http.StatusOK, w.Code)
	logger.AssertLogField(t, buf, "msg", "failed to encode JSON response")
}

func TestRespondWithError(t *testing.T) {
	r, buf := newRequest(t, http.MethodPost, "/api/review/answer")
	w := httptest.NewRecorder()

	RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Invalid request format", body.Error)
	assert.Equal(t, GetTraceID(r.Context()), body.TraceID)
	assert.Len(t, body.TraceID, TraceIDLength*2)
	logger.AssertLogField(t, buf, "msg", "sending error response")
}

func TestRespondWithErrorWithoutTraceID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/decks", nil)
	w := httptest.NewRecorder()

	RespondWithError(w, r, http.StatusNotFound, "Deck not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "trace_id")
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		opts          []ResponseOption
		expectedLevel string
	}{
		{"server error", http.StatusInternalServerError, nil, "ERROR"},
		{"unavailable", http.StatusServiceUnavailable, nil, "ERROR"},
		{"client error", http.StatusBadRequest, nil, "DEBUG"},
		{"elevated client error", http.StatusConflict, []ResponseOption{WithElevatedLogLevel()}, "WARN"},
		{"rate limited", http.StatusTooManyRequests, nil, "WARN"},
		{"elevation ignored below 400", http.StatusFound, []ResponseOption{WithElevatedLogLevel()}, "DEBUG"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, buf := newRequest(t, http.MethodPost, "/api/review/answer")
			w := httptest.NewRecorder()
			cause := fmt.Errorf("save: %w", errors.New("disk full"))

			RespondWithErrorAndLog(w, r, tc.status, "Failed to submit answer", cause, tc.opts...)

			assert.Equal(t, tc.status, w.Code)
			assert.NotContains(t, w.Body.String(), "disk full")

			entries, err := buf.Entries()
			require.NoError(t, err)
			require.Len(t, entries, 1)
			entry := entries[0]
			assert.Equal(t, tc.expectedLevel, entry["level"])
			assert.Equal(t, "API error response", entry["msg"])
			assert.Equal(t, "save: disk full", entry["error"])
			assert.Equal(t, "*fmt.wrapError", entry["error_type"])
			assert.Equal(t, float64(tc.status), entry["status_code"])
		})
	}
}

func TestRespondWithErrorAndLogRedactsNotePaths(t *testing.T) {
	r, buf := newRequest(t, http.MethodPost, "/api/notes/review")
	w := httptest.NewRecorder()

	err := fmt.Errorf("rewrite journal/2023/private diary.md: %w", errors.New("permission denied"))
	RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to review note", err)

	logs := buf.String()
	assert.NotContains(t, logs, "private diary.md")
	assert.Contains(t, logs, "[REDACTED_NOTE]")
	assert.NotContains(t, w.Body.String(), "diary")
}

func TestWithElevatedLogLevel(t *testing.T) {
	var o responseOptions
	WithElevatedLogLevel()(&o)
	assert.True(t, o.elevateLogLevel)
}
