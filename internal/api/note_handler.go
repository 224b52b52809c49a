package api

import (
	"log/slog"
	"net/http"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/api/shared"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/platform/logger"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/redact"
)

// NoteHandler serves whole-note review.
type NoteHandler struct {
	service ReviewService
	logger  *slog.Logger
}

// NewNoteHandler creates a NoteHandler.
func NewNoteHandler(service ReviewService, logger *slog.Logger) *NoteHandler {
	if service == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("service cannot be nil for NoteHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for NoteHandler")
	}
	return &NoteHandler{
		service: service,
		logger:  logger.With(slog.String("component", "note_handler")),
	}
}

// GetNoteDecks handles GET /api/notes/decks.
func (h *NoteHandler) GetNoteDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.service.NoteDecks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get note decks")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, decks)
}

// GetNextNote handles GET /api/notes/next?tag=. It responds 204 when nothing
// under the tag is left to review.
func (h *NoteHandler) GetNextNote(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	if tag == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Query parameter tag is required")
		return
	}

	note, err := h.service.NextNote(r.Context(), tag)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get next note")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, note)
}

// ReviewNote handles POST /api/notes/review.
func (h *NoteHandler) ReviewNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ReviewNoteRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}
	response, err := domain.ParseReviewResponse(req.Response)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	note, err := h.service.ReviewNote(r.Context(), req.Path, response)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to review note")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, note)
}
