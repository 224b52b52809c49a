package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/deck"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain/srs"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/events"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/platform/logger"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/stats"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/store"
)

// Loader reads the collection from its source.
type Loader interface {
	Load(ctx context.Context) (*domain.Collection, error)
}

// scheduleTracker is implemented by stores that keep schedules alongside the
// collection itself, such as the vault store. Such a store is told about each
// new collection instead of being asked for its schedules.
type scheduleTracker interface {
	Track(col *domain.Collection)
}

// Service is the entry point for reviewing a collection. It owns the current
// arena, the active session and the note queue, and serializes every
// operation on them.
type Service struct {
	loader  Loader
	store   store.ScheduleStore
	engine  srs.Service
	emitter events.EventEmitter
	opts    Options
	clock   func() time.Time
	random  deck.RandomSource
	logger  *slog.Logger

	mu      sync.Mutex
	arena   *Arena
	session *Session
	notes   *NoteReviewQueue
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *Service) { s.clock = clock }
}

// WithRandom sets the random source used by sessions and the note queue.
func WithRandom(random deck.RandomSource) ServiceOption {
	return func(s *Service) { s.random = random }
}

// WithEmitter sets the emitter that receives a ReviewEvent after every saved
// review.
func WithEmitter(emitter events.EventEmitter) ServiceOption {
	return func(s *Service) { s.emitter = emitter }
}

// NewService creates a Service. Call Reload before anything else.
func NewService(
	loader Loader,
	scheduleStore store.ScheduleStore,
	engine srs.Service,
	opts Options,
	logger *slog.Logger,
	options ...ServiceOption,
) *Service {
	if loader == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("loader cannot be nil")
	}
	if scheduleStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("store cannot be nil")
	}
	if engine == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("engine cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Service{
		loader: loader,
		store:  scheduleStore,
		engine: engine,
		opts:   opts,
		clock:  time.Now,
		logger: logger.With(slog.String("component", "review_service")),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.random == nil {
		s.random = deck.NewRandomSource(nil)
	}
	return s
}

// Reload reads the collection again and rebuilds everything derived from it.
// Any session in progress ends.
func (s *Service) Reload(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	start := s.clock()
	col, err := s.loader.Load(ctx)
	if err != nil {
		return newServiceError("reload", "failed to load collection", err)
	}

	if tracker, ok := s.store.(scheduleTracker); ok {
		tracker.Track(col)
	} else {
		schedules, err := s.store.LoadAll(ctx)
		if err != nil {
			return newServiceError("reload", "failed to load schedules", err)
		}
		applied := col.ApplySchedules(schedules)
		log.Debug("applied stored schedules",
			slog.Int("stored", len(schedules)),
			slog.Int("applied", applied))
	}

	now := s.clock()
	s.arena = BuildArena(col, s.opts, now)
	s.notes = NewNoteReviewQueue(s.arena, s.engine, s.store, s.opts, s.random, s.logger)
	if s.session != nil {
		log.Info("review session ended by reload", slog.String("session_id", s.session.ID.String()))
		s.session = nil
	}

	log.Info("collection loaded",
		slog.Int("notes", len(col.Notes)),
		slog.Int("questions", len(col.Questions)),
		slog.Int("cards", s.arena.CardStats.Total()),
		slog.Duration("duration", now.Sub(start)))
	return nil
}

func (s *Service) loadedArena() (*Arena, error) {
	if s.arena == nil {
		return nil, ErrNotLoaded
	}
	return s.arena, nil
}

// DeckTree summarizes the deck tree from the root.
func (s *Service) DeckTree(ctx context.Context) (*DeckSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	arena, err := s.loadedArena()
	if err != nil {
		return nil, err
	}
	return summarizeDeck(arena.FullTree, arena.ReviewTree), nil
}

// StartSession starts a session over the deck named by topicPath, replacing
// any session in progress. An empty path reviews the whole tree.
func (s *Service) StartSession(ctx context.Context, topicPath string) (*SessionView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	arena, err := s.loadedArena()
	if err != nil {
		return nil, err
	}

	session := NewSession(arena, s.engine, s.store, s.opts, s.random, s.logger)
	path := domain.ParseTopicPath(topicPath)
	if _, err := session.Start(path); err != nil {
		if errors.Is(err, deck.ErrDeckNotFound) {
			return nil, fmt.Errorf("%w: deck %s", ErrUnknownItem, topicPath)
		}
		return nil, newServiceError("start_session", "failed to start session", err)
	}
	s.session = session

	log.Info("review session started",
		slog.String("session_id", session.ID.String()),
		slog.String("topic_path", path.String()),
		slog.String("mode", string(s.opts.Mode)),
		slog.Int("cards", session.Remaining()+btoi(session.Current() != nil)))
	return newSessionView(session), nil
}

// CurrentCard returns the card under review, or nil once the session has run
// out of cards.
func (s *Service) CurrentCard(ctx context.Context) (*CardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, ErrNoSession
	}
	return newCardView(s.session.Current(), s.session.CurrentDeck()), nil
}

// Session describes the session in progress.
func (s *Service) Session(ctx context.Context) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, ErrNoSession
	}
	return newSessionView(s.session), nil
}

// Answer answers the current card and returns its new schedule along with
// the next card.
func (s *Service) Answer(ctx context.Context, response domain.ReviewResponse) (*AnswerView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, ErrNoSession
	}
	now := s.clock()
	res, err := s.session.Answer(ctx, response, now)
	if err != nil {
		return nil, err
	}

	if s.opts.Mode != ModeCram {
		s.emit(ctx, log, events.NewReviewEvent(res.Card, res.Card.NotePath(), response, *res.Schedule, now))
	}

	return &AnswerView{
		CardID:   res.Card.ID(),
		Schedule: newScheduleView(res.Schedule),
		Next:     newCardView(s.session.Current(), s.session.CurrentDeck()),
	}, nil
}

// Skip drops the current card from the session and returns the next card.
func (s *Service) Skip(ctx context.Context) (*CardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, ErrNoSession
	}
	if _, err := s.session.Skip(); err != nil {
		return nil, err
	}
	return newCardView(s.session.Current(), s.session.CurrentDeck()), nil
}

// NoteDecks lists the note decks with their counts.
func (s *Service) NoteDecks(ctx context.Context) ([]NoteDeckView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.notes == nil {
		return nil, ErrNotLoaded
	}
	now := s.clock()
	decks := s.notes.Decks()
	out := make([]NoteDeckView, 0, len(decks))
	for _, d := range decks {
		out = append(out, newNoteDeckView(d, now))
	}
	return out, nil
}

// NextNote returns the note to review next under tag.
func (s *Service) NextNote(ctx context.Context, tag string) (*NoteView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.notes == nil {
		return nil, ErrNotLoaded
	}
	note, err := s.notes.NextNote(tag, s.clock())
	if err != nil {
		return nil, err
	}
	return newNoteView(note), nil
}

// ReviewNote schedules the note at path.
func (s *Service) ReviewNote(ctx context.Context, path string, response domain.ReviewResponse) (*NoteView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	arena, err := s.loadedArena()
	if err != nil {
		return nil, err
	}
	note, ok := arena.Note(path)
	if !ok {
		return nil, fmt.Errorf("%w: note %s", ErrUnknownItem, path)
	}
	if !response.IsValid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidResponse, int(response))
	}

	now := s.clock()
	rec, err := s.notes.Review(ctx, note, response, now)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, log, events.NewReviewEvent(note, note.Path, response, *rec, now))
	return newNoteView(note), nil
}

// Forecast buckets the cards by when they fall due.
func (s *Service) Forecast(ctx context.Context, g stats.Granularity) (*ForecastView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	arena, err := s.loadedArena()
	if err != nil {
		return nil, err
	}
	arena.RefreshStats(s.clock())
	return &ForecastView{Bucket: g, Entries: arena.CardStats.Forecast(g)}, nil
}

// Stats summarizes cards and notes.
func (s *Service) Stats(ctx context.Context) (*StatsView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	arena, err := s.loadedArena()
	if err != nil {
		return nil, err
	}
	arena.RefreshStats(s.clock())
	return &StatsView{
		Cards: arena.CardStats.Summarize(),
		Notes: arena.NoteStats.Summarize(),
	}, nil
}

// emit publishes event. A failing handler does not undo the review, which is
// already saved.
func (s *Service) emit(ctx context.Context, log *slog.Logger, event *events.ReviewEvent) {
	if s.emitter == nil {
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit review event",
			slog.String("event_type", event.Type),
			slog.String("item_id", event.ItemID),
			slog.String("error", err.Error()))
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
