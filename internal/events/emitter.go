package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// InMemoryEventEmitter calls its handlers synchronously, in registration
// order.
type InMemoryEventEmitter struct {
	mu       sync.RWMutex
	handlers []EventHandler
	logger   *slog.Logger
}

var _ EventEmitter = (*InMemoryEventEmitter)(nil)

// NewInMemoryEventEmitter creates an emitter with no handlers.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventEmitter{
		logger: logger.With(slog.String("component", "event_emitter")),
	}
}

// RegisterHandler adds handler. It receives events emitted from then on.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	e.mu.Lock()
	e.handlers = append(e.handlers, handler)
	n := len(e.handlers)
	e.mu.Unlock()

	e.logger.Debug("registered event handler", slog.Int("handler_count", n))
}

// EmitEvent delivers event to every handler, even after one fails, and
// returns the joined handler errors.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *ReviewEvent) error {
	e.mu.RLock()
	handlers := append([]EventHandler(nil), e.handlers...)
	e.mu.RUnlock()

	log := e.logger.With(
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type))
	log.Debug("emitting event",
		slog.String("item_id", event.ItemID),
		slog.Int("handler_count", len(handlers)))

	var errs []error
	for i, h := range handlers {
		if err := h.HandleEvent(ctx, event); err != nil {
			log.Error("event handler failed",
				slog.Int("handler_index", i),
				slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogHandler writes every review to a logger, as an audit trail when
// schedules live in a database rather than in the notes.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler.
func NewLogHandler(logger *slog.Logger) *LogHandler {
	return &LogHandler{logger: logger.With(slog.String("component", "review_log"))}
}

func (h *LogHandler) HandleEvent(ctx context.Context, event *ReviewEvent) error {
	h.logger.LogAttrs(ctx, slog.LevelInfo, "item reviewed",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.String("item_id", event.ItemID),
		slog.String("note_path", event.NotePath),
		slog.String("response", event.Response.String()),
		slog.String("due", event.Schedule.FormatDueDate()),
		slog.Float64("interval", event.Schedule.Interval),
		slog.Float64("ease", event.Schedule.Ease))
	return nil
}

// CountingHandler counts events by type. It is safe for concurrent use.
type CountingHandler struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewCountingHandler creates an empty CountingHandler.
func NewCountingHandler() *CountingHandler {
	return &CountingHandler{counts: make(map[string]int)}
}

func (h *CountingHandler) HandleEvent(_ context.Context, event *ReviewEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts[event.Type]++
	return nil
}

// Count returns how many events of eventType were handled.
func (h *CountingHandler) Count(eventType string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counts[eventType]
}
