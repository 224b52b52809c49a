package vault

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain/srs"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/platform/logger"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/store"
)

// Store implements store.ScheduleStore by writing schedules into the notes
// of a loaded collection. Card schedules are rewritten as the inline comment
// of their question; note schedules go to the front-matter.
type Store struct {
	root     string
	baseEase float64
	logger   *slog.Logger

	mu     sync.Mutex
	notes  map[string]*domain.Note
	cards  map[string]*domain.Card
	writes map[string]time.Time
	now    func() time.Time
}

var _ store.ScheduleStore = (*Store)(nil)

// NewStore creates a store for the vault at root. baseEase fills the
// schedules of never-reviewed siblings.
func NewStore(root string, baseEase float64, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		root:     root,
		baseEase: baseEase,
		logger:   logger.With(slog.String("component", "vault_store")),
		notes:    make(map[string]*domain.Note),
		cards:    make(map[string]*domain.Card),
		writes:   make(map[string]time.Time),
		now:      time.Now,
	}
}

// Track replaces the set of items the store can save.
func (s *Store) Track(col *domain.Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = make(map[string]*domain.Note, len(col.Notes))
	for _, n := range col.Notes {
		s.notes[n.ID()] = n
	}
	s.cards = make(map[string]*domain.Card)
	for _, c := range col.Cards() {
		s.cards[c.ID()] = c
	}
}

// LoadSchedule implements store.ScheduleStore.
func (s *Store) LoadSchedule(_ context.Context, itemID string) (*domain.ScheduleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var item domain.Item
	if n, ok := s.notes[itemID]; ok {
		item = n
	} else if c, ok := s.cards[itemID]; ok {
		item = c
	} else {
		return nil, nil
	}
	rec, ok := item.Schedule()
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// LoadAll implements store.ScheduleStore.
func (s *Store) LoadAll(_ context.Context) (map[string]domain.ScheduleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domain.ScheduleRecord)
	for id, n := range s.notes {
		if rec, ok := n.Schedule(); ok {
			out[id] = rec
		}
	}
	for id, c := range s.cards {
		if rec, ok := c.Schedule(); ok {
			out[id] = rec
		}
	}
	return out, nil
}

// SaveSchedule implements store.ScheduleStore. The tracked item is updated
// along with its file.
func (s *Store) SaveSchedule(ctx context.Context, itemID string, rec domain.ScheduleRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := store.ValidateSchedule(itemID, rec); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if n, ok := s.notes[itemID]; ok {
		if err := s.rewrite(n.Path, func(content string) (string, error) {
			return withNoteSchedule(content, rec)
		}); err != nil {
			log.Error("failed to write note schedule",
				slog.String("path", n.Path),
				slog.String("error", err.Error()))
			return store.NewStoreError("schedule", "save", "note rewrite failed", err)
		}
		n.SetSchedule(&rec)
		return nil
	}

	card, ok := s.cards[itemID]
	if !ok {
		return store.NewStoreError("schedule", "save", "unknown item "+itemID, fmt.Errorf("%w: %w", store.ErrItemNotFound, ErrUnknownItem))
	}

	q := card.Question
	schedules := q.Schedules()
	schedules[card.Index] = &rec
	newRaw := questionWithComment(q, srs.FormatCardSchedules(schedules, s.baseEase))

	if err := s.rewrite(q.NotePath, func(content string) (string, error) {
		if !strings.Contains(content, q.RawText) {
			return "", fmt.Errorf("%w: %s line %d", ErrQuestionNotFound, q.NotePath, q.LineNo+1)
		}
		return strings.Replace(content, q.RawText, newRaw, 1), nil
	}); err != nil {
		log.Error("failed to write card schedule",
			slog.String("path", q.NotePath),
			slog.String("card_id", itemID),
			slog.String("error", err.Error()))
		return store.NewStoreError("schedule", "save", "question rewrite failed", err)
	}

	q.RawText = newRaw
	card.SetSchedule(&rec)
	return nil
}

// WroteRecently reports whether the store itself wrote the file at absPath
// within the window. Watchers use it to ignore their own echoes.
func (s *Store) WroteRecently(absPath string, window time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.writes[filepath.Clean(absPath)]
	return ok && s.now().Sub(at) <= window
}

// rewrite applies edit to a note file. Callers hold s.mu.
func (s *Store) rewrite(notePath string, edit func(string) (string, error)) error {
	abs := filepath.Join(s.root, filepath.FromSlash(notePath))
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return err
	}
	updated, err := edit(strings.ReplaceAll(string(data), "\r\n", "\n"))
	if err != nil {
		return err
	}
	if err := os.WriteFile(abs, []byte(updated), info.Mode().Perm()); err != nil {
		return err
	}
	s.writes[filepath.Clean(abs)] = s.now()
	return nil
}

// questionWithComment renders a question's text followed by its schedule
// comment: on the same line for single-line questions, else on the next line.
func questionWithComment(q *domain.Question, comment string) string {
	base := strings.TrimRight(stripSRComment(q.RawText), " \t\n")
	if comment == "" {
		return base
	}
	switch q.Type {
	case domain.QuestionSingleLineBasic, domain.QuestionSingleLineReversed:
		return base + " " + comment
	default:
		return base + "\n" + comment
	}
}
