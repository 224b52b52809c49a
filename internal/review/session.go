package review

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/deck"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain/srs"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/platform/logger"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/store"
)

// AnswerResult is the outcome of answering the current card.
type AnswerResult struct {
	Card *domain.Card
	// Schedule is the card's new schedule. In cram mode it is the unchanged
	// schedule, or nil for a new card.
	Schedule *domain.ScheduleRecord
	HasNext  bool
}

// Session walks the cards of one deck subtree. It works on its own copy of
// the review tree, so abandoning a session leaves the arena untouched.
type Session struct {
	ID        uuid.UUID
	TopicPath domain.TopicPath

	arena  *Arena
	engine srs.Service
	store  store.ScheduleStore
	opts   Options
	tree   *deck.Deck
	iter   *deck.Iterator
	logger *slog.Logger

	reviewed int
}

// NewSession creates a session over a copy of the arena's review tree.
func NewSession(
	arena *Arena,
	engine srs.Service,
	scheduleStore store.ScheduleStore,
	opts Options,
	random deck.RandomSource,
	logger *slog.Logger,
) *Session {
	if arena == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("arena cannot be nil")
	}
	if engine == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("engine cannot be nil")
	}
	if scheduleStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("store cannot be nil")
	}
	if random == nil {
		random = deck.NewRandomSource(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New()
	tree := arena.ReviewTree.DeepClone()
	return &Session{
		ID:     id,
		arena:  arena,
		engine: engine,
		store:  scheduleStore,
		opts:   opts,
		tree:   tree,
		iter:   deck.NewIterator(opts.Order, random, tree),
		logger: logger.With(
			slog.String("component", "review_session"),
			slog.String("session_id", id.String()),
		),
	}
}

// Start positions the session at the deck named by path and draws the first
// card. It returns whether a card is available.
func (s *Session) Start(path domain.TopicPath) (bool, error) {
	if err := s.iter.SetIteratorTopicPath(path); err != nil {
		return false, err
	}
	s.TopicPath = path
	return s.iter.NextCard()
}

// Current returns the card under review, or nil once the session is done.
func (s *Session) Current() *domain.Card {
	return s.iter.CurrentCard()
}

// CurrentDeck returns the deck the current card was drawn from.
func (s *Session) CurrentDeck() *deck.Deck {
	return s.iter.CurrentDeck()
}

// Reviewed returns the number of answers given in this session.
func (s *Session) Reviewed() int {
	return s.reviewed
}

// Remaining counts the distinct cards not yet drawn below the session's
// deck. The current card is not included.
func (s *Session) Remaining() int {
	base := s.tree.GetDeck(s.TopicPath)
	if base == nil {
		return 0
	}
	seen := make(map[*domain.Card]bool)
	base.Walk(func(d *deck.Deck) {
		for _, t := range []deck.CardListType{deck.CardListNew, deck.CardListDue} {
			for _, c := range d.Cards(t) {
				seen[c] = true
			}
		}
	})
	return len(seen)
}

// Next draws the next card without answering the current one. The current
// card goes back to the end of its deck and comes up again after the others.
func (s *Session) Next() (bool, error) {
	prev, prevDeck := s.iter.CurrentCard(), s.iter.CurrentDeck()
	ok, err := s.iter.NextCard()
	if err != nil || prev == nil {
		return ok, err
	}
	prevDeck.AppendCard(nil, prev)
	if ok {
		return true, nil
	}
	return s.restart()
}

// drawNext advances to the next card. The iterator never goes back to a deck
// it has left, so cards put back into such a deck are drawn by starting the
// traversal again once everything else is done.
func (s *Session) drawNext() (bool, error) {
	ok, err := s.iter.NextCard()
	if err != nil || ok {
		return ok, err
	}
	return s.restart()
}

func (s *Session) restart() (bool, error) {
	if s.Remaining() == 0 {
		return false, nil
	}
	if err := s.iter.SetIteratorTopicPath(s.TopicPath); err != nil {
		return false, err
	}
	return s.iter.NextCard()
}

// Skip drops the current card from the session without scheduling it.
func (s *Session) Skip() (bool, error) {
	card := s.iter.CurrentCard()
	if card == nil {
		return false, ErrNoCurrentCard
	}
	s.iter.RemoveFromAllDecks(card)
	return s.drawNext()
}

// Answer schedules the current card, saves the schedule and advances.
//
// A Reset answer puts the card back at the end of its list; any other answer
// removes it from every deck of the session. In cram mode nothing is saved
// and Hard or Reset answers requeue the card.
func (s *Session) Answer(ctx context.Context, response domain.ReviewResponse, now time.Time) (*AnswerResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card := s.iter.CurrentCard()
	if card == nil {
		return nil, ErrNoCurrentCard
	}
	if !response.IsValid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidResponse, int(response))
	}

	if s.opts.Mode == ModeCram {
		return s.advance(card, response == domain.ResponseHard || response == domain.ResponseReset, currentSchedule(card))
	}

	initialEase := s.engine.InitialCardEase(card.NotePath(), s.arena.Eases)
	next, err := s.engine.CalculateNextReview(currentSchedule(card), response, initialEase, s.arena.CardDueDates, now)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveSchedule(ctx, card.ID(), *next); err != nil {
		log.Error("failed to save card schedule",
			slog.String("card_id", card.ID()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save schedule for %s: %w", card.ID(), err)
	}

	card.SetSchedule(next)
	s.arena.Eases.Add(card.NotePath(), next.Ease)
	s.arena.Refile(card, now)
	s.reviewed++

	log.Debug("card answered",
		slog.String("card_id", card.ID()),
		slog.String("response", response.String()),
		slog.String("due_date", next.FormatDueDate()),
		slog.Float64("interval", next.Interval),
		slog.Float64("ease", next.Ease))

	if s.opts.BurySiblings {
		for _, sib := range card.Siblings() {
			s.iter.RemoveFromAllDecks(sib)
		}
	}

	return s.advance(card, response == domain.ResponseReset, next)
}

func (s *Session) advance(card *domain.Card, requeue bool, rec *domain.ScheduleRecord) (*AnswerResult, error) {
	var (
		hasNext bool
		err     error
	)
	if requeue {
		if err = s.iter.RequeueCurrentCard(); err == nil {
			hasNext, err = s.drawNext()
		}
	} else {
		s.iter.RemoveFromAllDecks(card)
		hasNext, err = s.drawNext()
	}
	if err != nil {
		return nil, err
	}
	return &AnswerResult{Card: card, Schedule: rec, HasNext: hasNext}, nil
}

func currentSchedule(card *domain.Card) *domain.ScheduleRecord {
	rec, ok := card.Schedule()
	if !ok {
		return nil
	}
	return &rec
}
