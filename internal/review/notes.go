package review

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"time"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/deck"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain/srs"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/platform/logger"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/store"
)

// NoteDeck holds the notes carrying one review tag.
type NoteDeck struct {
	Tag string
	New []*domain.Note
	// Scheduled is ordered by due date, earliest first.
	Scheduled []*domain.Note
}

// DueCount counts the scheduled notes due on the day containing now.
func (d *NoteDeck) DueCount(now time.Time) int {
	n := 0
	for _, note := range d.Scheduled {
		if note.IsDue(now) {
			n++
		}
	}
	return n
}

func (d *NoteDeck) due(now time.Time) []*domain.Note {
	var out []*domain.Note
	for _, note := range d.Scheduled {
		if !note.IsDue(now) {
			// Sorted by due date, so nothing later is due either.
			break
		}
		out = append(out, note)
	}
	return out
}

func (d *NoteDeck) file(note *domain.Note) {
	d.New = slices.DeleteFunc(d.New, func(n *domain.Note) bool { return n == note })
	d.Scheduled = slices.DeleteFunc(d.Scheduled, func(n *domain.Note) bool { return n == note })
	if !note.HasSchedule() {
		d.New = append(d.New, note)
		return
	}
	d.Scheduled = append(d.Scheduled, note)
	sortByDueDate(d.Scheduled)
}

func sortByDueDate(notes []*domain.Note) {
	slices.SortStableFunc(notes, func(a, b *domain.Note) int {
		ra, _ := a.Schedule()
		rb, _ := b.Schedule()
		return ra.DueDate.Compare(rb.DueDate)
	})
}

// NoteReviewQueue offers whole notes for review, grouped by review tag.
type NoteReviewQueue struct {
	arena  *Arena
	engine srs.Service
	store  store.ScheduleStore
	opts   Options
	random deck.RandomSource
	logger *slog.Logger

	decks map[string]*NoteDeck
}

// NewNoteReviewQueue groups the arena's notes by their review tags.
func NewNoteReviewQueue(
	arena *Arena,
	engine srs.Service,
	scheduleStore store.ScheduleStore,
	opts Options,
	random deck.RandomSource,
	logger *slog.Logger,
) *NoteReviewQueue {
	if arena == nil || engine == nil || scheduleStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependencies
		panic("arena, engine and store are required")
	}
	if random == nil {
		random = deck.NewRandomSource(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	q := &NoteReviewQueue{
		arena:  arena,
		engine: engine,
		store:  scheduleStore,
		opts:   opts,
		random: random,
		logger: logger.With(slog.String("component", "note_review_queue")),
		decks:  make(map[string]*NoteDeck),
	}
	for _, note := range arena.Collection.Notes {
		for _, tag := range opts.reviewTagsOf(note) {
			d, ok := q.decks[tag]
			if !ok {
				d = &NoteDeck{Tag: tag}
				q.decks[tag] = d
			}
			if note.HasSchedule() {
				d.Scheduled = append(d.Scheduled, note)
			} else {
				d.New = append(d.New, note)
			}
		}
	}
	for _, d := range q.decks {
		sortByDueDate(d.Scheduled)
	}
	return q
}

// Decks returns the note decks ordered by tag.
func (q *NoteReviewQueue) Decks() []*NoteDeck {
	out := make([]*NoteDeck, 0, len(q.decks))
	for _, d := range q.decks {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// NextNote picks the note to review next from the deck for tag: due notes
// first, earliest due date first, then new notes. With OpenRandomNote the
// pick is random within the due notes, or within the new notes when none are
// due.
func (q *NoteReviewQueue) NextNote(tag string, now time.Time) (*domain.Note, error) {
	d, ok := q.decks[tag]
	if !ok {
		return nil, fmt.Errorf("%w: review tag %s", ErrUnknownItem, tag)
	}
	if due := d.due(now); len(due) > 0 {
		return q.pick(due), nil
	}
	if len(d.New) > 0 {
		return q.pick(d.New), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoNotesDue, tag)
}

func (q *NoteReviewQueue) pick(notes []*domain.Note) *domain.Note {
	if !q.opts.OpenRandomNote || len(notes) == 1 {
		return notes[0]
	}
	return notes[q.random.NextInt(0, len(notes)-1)]
}

// Review schedules a note, saves the schedule and refiles the note in its decks.
func (q *NoteReviewQueue) Review(
	ctx context.Context,
	note *domain.Note,
	response domain.ReviewResponse,
	now time.Time,
) (*domain.ScheduleRecord, error) {
	log := logger.FromContextOrDefault(ctx, q.logger)

	var current *domain.ScheduleRecord
	if rec, ok := note.Schedule(); ok {
		current = &rec
	}
	initialEase := q.engine.InitialNoteEase(q.arena.Graph, note.Path, q.arena.Eases)
	next, err := q.engine.CalculateNextReview(current, response, initialEase, q.arena.NoteDueDates, now)
	if err != nil {
		return nil, err
	}
	if err := q.store.SaveSchedule(ctx, note.Path, *next); err != nil {
		log.Error("failed to save note schedule",
			slog.String("path", note.Path),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save schedule for %s: %w", note.Path, err)
	}

	note.SetSchedule(next)
	q.arena.Eases.Add(note.Path, next.Ease)
	for _, tag := range q.opts.reviewTagsOf(note) {
		if d, ok := q.decks[tag]; ok {
			d.file(note)
		}
	}

	log.Debug("note reviewed",
		slog.String("path", note.Path),
		slog.String("response", response.String()),
		slog.String("due_date", next.FormatDueDate()))
	return next, nil
}
