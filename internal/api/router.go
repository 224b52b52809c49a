package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/api/middleware"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/api/shared"
)

// NewRouter registers every route against service.
func NewRouter(service ReviewService, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewTraceMiddleware(logger))

	reviewHandler := NewReviewHandler(service, logger)
	noteHandler := NewNoteHandler(service, logger)
	statsHandler := NewStatsHandler(service, logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/decks", reviewHandler.GetDecks)

		r.Route("/review", func(r chi.Router) {
			r.Post("/sessions", reviewHandler.StartSession)
			r.Get("/current", reviewHandler.GetCurrentCard)
			r.Post("/answer", reviewHandler.SubmitAnswer)
			r.Post("/skip", reviewHandler.SkipCard)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Get("/decks", noteHandler.GetNoteDecks)
			r.Get("/next", noteHandler.GetNextNote)
			r.Post("/review", noteHandler.ReviewNote)
		})

		r.Get("/stats", statsHandler.GetStats)
		r.Get("/stats/forecast", statsHandler.GetForecast)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
	})

	return r
}
