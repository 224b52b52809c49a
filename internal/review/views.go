package review

import (
	"time"

	"github.com/google/uuid"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/deck"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/stats"
)

// ScheduleView is the JSON form of a schedule.
type ScheduleView struct {
	DueDate  string  `json:"due_date"`
	Interval float64 `json:"interval"`
	Ease     float64 `json:"ease"`
}

func newScheduleView(rec *domain.ScheduleRecord) *ScheduleView {
	if rec == nil {
		return nil
	}
	return &ScheduleView{
		DueDate:  rec.FormatDueDate(),
		Interval: rec.Interval,
		Ease:     rec.Ease,
	}
}

// CardView is a card as shown to the reviewer.
type CardView struct {
	ID       string        `json:"id"`
	NotePath string        `json:"note_path"`
	Deck     string        `json:"deck"`
	Front    string        `json:"front"`
	Back     string        `json:"back"`
	IsNew    bool          `json:"is_new"`
	Schedule *ScheduleView `json:"schedule,omitempty"`
}

func newCardView(card *domain.Card, d *deck.Deck) *CardView {
	if card == nil {
		return nil
	}
	v := &CardView{
		ID:       card.ID(),
		NotePath: card.NotePath(),
		Front:    card.Front,
		Back:     card.Back,
		IsNew:    card.IsNew(),
		Schedule: newScheduleView(currentSchedule(card)),
	}
	if d != nil {
		v.Deck = d.TopicPath().String()
	}
	return v
}

// SessionView describes a session and its current card.
type SessionView struct {
	ID        uuid.UUID `json:"id"`
	TopicPath string    `json:"topic_path"`
	Reviewed  int       `json:"reviewed"`
	Remaining int       `json:"remaining"`
	Card      *CardView `json:"card,omitempty"`
}

func newSessionView(s *Session) *SessionView {
	return &SessionView{
		ID:        s.ID,
		TopicPath: s.TopicPath.String(),
		Reviewed:  s.Reviewed(),
		Remaining: s.Remaining(),
		Card:      newCardView(s.Current(), s.CurrentDeck()),
	}
}

// AnswerView is the result of answering a card.
type AnswerView struct {
	CardID   string        `json:"card_id"`
	Schedule *ScheduleView `json:"schedule,omitempty"`
	Next     *CardView     `json:"next,omitempty"`
}

// DeckSummary is one node of the deck tree with its card counts. Counts
// include subdecks, and a card filed in several decks of the subtree is
// counted once.
type DeckSummary struct {
	Name      string         `json:"name"`
	TopicPath string         `json:"topic_path"`
	New       int            `json:"new"`
	Due       int            `json:"due"`
	Total     int            `json:"total"`
	Subdecks  []*DeckSummary `json:"subdecks,omitempty"`
}

// summarizeDeck counts the review tree for new and due cards, and the full
// tree for totals.
func summarizeDeck(full *deck.Deck, review *deck.Deck) *DeckSummary {
	sum := &DeckSummary{
		Name:      full.Name,
		TopicPath: full.TopicPath().String(),
		Total:     distinctCards(full, deck.CardListNew, deck.CardListDue),
	}
	if review != nil {
		sum.New = distinctCards(review, deck.CardListNew)
		sum.Due = distinctCards(review, deck.CardListDue)
	}
	for _, sub := range full.Subdecks {
		var reviewSub *deck.Deck
		if review != nil {
			reviewSub = review.Subdeck(sub.Name)
		}
		sum.Subdecks = append(sum.Subdecks, summarizeDeck(sub, reviewSub))
	}
	return sum
}

func distinctCards(d *deck.Deck, lists ...deck.CardListType) int {
	seen := make(map[*domain.Card]bool)
	d.Walk(func(sub *deck.Deck) {
		for _, t := range lists {
			for _, c := range sub.Cards(t) {
				seen[c] = true
			}
		}
	})
	return len(seen)
}

// NoteDeckView is a note deck with its counts.
type NoteDeckView struct {
	Tag   string `json:"tag"`
	New   int    `json:"new"`
	Due   int    `json:"due"`
	Total int    `json:"total"`
}

func newNoteDeckView(d *NoteDeck, now time.Time) NoteDeckView {
	return NoteDeckView{
		Tag:   d.Tag,
		New:   len(d.New),
		Due:   d.DueCount(now),
		Total: len(d.New) + len(d.Scheduled),
	}
}

// NoteView is a note offered for review.
type NoteView struct {
	Path     string        `json:"path"`
	Tags     []string      `json:"tags"`
	Schedule *ScheduleView `json:"schedule,omitempty"`
}

func newNoteView(note *domain.Note) *NoteView {
	v := &NoteView{Path: note.Path, Tags: note.Tags}
	if rec, ok := note.Schedule(); ok {
		v.Schedule = newScheduleView(&rec)
	}
	return v
}

// StatsView holds the summaries for cards and notes.
type StatsView struct {
	Cards stats.Summary `json:"cards"`
	Notes stats.Summary `json:"notes"`
}

// ForecastView is a forecast of cards falling due.
type ForecastView struct {
	Bucket  stats.Granularity     `json:"bucket"`
	Entries []stats.ForecastEntry `json:"entries"`
}
