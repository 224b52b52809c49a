package api

import (
	"log/slog"
	"net/http"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/api/shared"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/platform/logger"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/redact"
)

// ReviewHandler serves the deck tree and the flashcard review session.
type ReviewHandler struct {
	service ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(service ReviewService, logger *slog.Logger) *ReviewHandler {
	if service == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("service cannot be nil for ReviewHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}
	return &ReviewHandler{
		service: service,
		logger:  logger.With(slog.String("component", "review_handler")),
	}
}

// GetDecks handles GET /api/decks.
func (h *ReviewHandler) GetDecks(w http.ResponseWriter, r *http.Request) {
	tree, err := h.service.DeckTree(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get decks")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tree)
}

// StartSession handles POST /api/review/sessions.
func (h *ReviewHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req StartSessionRequest
	if r.ContentLength != 0 {
		if err := shared.DecodeJSON(r, &req); err != nil {
			log.Warn("invalid request format", slog.String("error", redact.Error(err)))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	session, err := h.service.StartSession(r.Context(), req.TopicPath)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to start review session")
		return
	}

	log.Debug("review session started",
		slog.String("session_id", session.ID.String()),
		slog.Int("remaining", session.Remaining))
	shared.RespondWithJSON(w, r, http.StatusCreated, session)
}

// GetCurrentCard handles GET /api/review/current. It responds 204 once the
// session has no cards left.
func (h *ReviewHandler) GetCurrentCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.service.CurrentCard(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get current card")
		return
	}
	if card == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// SubmitAnswer handles POST /api/review/answer.
func (h *ReviewHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req AnswerRequest
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

	answer, err := h.service.Answer(r.Context(), response)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit answer")
		return
	}

	log.Debug("answer submitted",
		slog.String("card_id", answer.CardID),
		slog.String("response", response.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, answer)
}

// SkipCard handles POST /api/review/skip. It responds with the next card, or
// 204 when there is none.
func (h *ReviewHandler) SkipCard(w http.ResponseWriter, r *http.Request) {
	next, err := h.service.Skip(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to skip card")
		return
	}
	if next == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, next)
}
