package api

import (
	"log/slog"
	"net/http"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/api/shared"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/stats"
)

// StatsHandler serves review statistics.
type StatsHandler struct {
	service ReviewService
	logger  *slog.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(service ReviewService, logger *slog.Logger) *StatsHandler {
	if service == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("service cannot be nil for StatsHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StatsHandler")
	}
	return &StatsHandler{
		service: service,
		logger:  logger.With(slog.String("component", "stats_handler")),
	}
}

// GetForecast handles GET /api/stats/forecast?bucket=.
func (h *StatsHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	g, err := stats.ParseGranularity(r.URL.Query().Get("bucket"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid bucket")
		return
	}

	forecast, err := h.service.Forecast(r.Context(), g)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get forecast")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, forecast)
}

// GetStats handles GET /api/stats.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Stats(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get statistics")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}
