package middleware

import (
	"log/slog"
	"net/http"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/api/shared"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/platform/logger"
)

// NewTraceMiddleware gives every request a trace ID and stores a logger
// carrying that ID in the request context, where handlers pick it up with
// logger.FromContextOrDefault. Apply it early in the chain.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set("X-Trace-ID", traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
