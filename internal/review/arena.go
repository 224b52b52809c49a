package review

import (
	"slices"
	"time"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/deck"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain/srs"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/histogram"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/linkgraph"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/stats"
)

// Arena holds everything derived from one load of the collection. A reload
// builds a new arena; an arena is never rebuilt in place.
type Arena struct {
	Collection *domain.Collection

	// FullTree files every card under each of its question's topic paths.
	// Due lists are ordered by due date.
	FullTree *deck.Deck
	// ReviewTree is the subset offered for review: new and due cards in
	// review mode, every card in cram mode. Empty decks are pruned.
	ReviewTree *deck.Deck

	Graph *linkgraph.Graph
	Eases *srs.EaseList

	CardDueDates *histogram.ValueCountHistogram
	NoteDueDates *histogram.ValueCountHistogram
	CardStats    *stats.Stats
	NoteStats    *stats.Stats

	BuiltAt time.Time

	opts  Options
	notes map[string]*domain.Note
}

// BuildArena derives the trees, link graph, ease averages and histograms
// from col as of now.
func BuildArena(col *domain.Collection, opts Options, now time.Time) *Arena {
	a := &Arena{
		Collection:   col,
		FullTree:     deck.NewRootDeck(),
		Graph:        linkgraph.New(),
		Eases:        srs.NewEaseList(),
		NoteDueDates: histogram.New(),
		NoteStats:    stats.New(),
		BuiltAt:      now,
		opts:         opts,
		notes:        make(map[string]*domain.Note, len(col.Notes)),
	}

	a.Graph.Reset()
	for source, targets := range col.Links {
		a.Graph.AddLinksFromSource(source, targets)
	}
	a.Graph.ComputeRanks()

	for _, q := range col.Questions {
		for _, card := range q.Cards {
			if rec, ok := card.Schedule(); ok {
				a.Eases.Add(card.NotePath(), rec.Ease)
			}
			for _, path := range q.TopicPaths {
				a.FullTree.AppendCard(path, card)
			}
		}
	}
	a.FullTree.SortSubdecks()
	a.FullTree.Walk(sortDueList)

	for _, note := range col.Notes {
		a.notes[note.Path] = note
		rec, ok := note.Schedule()
		if ok {
			a.Eases.Add(note.Path, rec.Ease)
		}
		if len(opts.reviewTagsOf(note)) == 0 {
			continue
		}
		if ok {
			a.NoteDueDates.Increment(rec.DaysUntilDue(now))
			a.NoteStats.Add(rec, now)
		} else {
			a.NoteStats.AddNew()
		}
	}

	a.CardDueDates, a.CardStats = PopulateDueDateHistogram(a.FullTree, now)
	a.ReviewTree = a.reviewTree(now)
	return a
}

// RefreshStats recomputes the card and note stats from the current
// schedules. The due-date histograms are left alone: the engine keeps them
// current as reviews are scheduled.
func (a *Arena) RefreshStats(now time.Time) {
	_, a.CardStats = PopulateDueDateHistogram(a.FullTree, now)

	a.NoteStats = stats.New()
	for _, note := range a.Collection.Notes {
		if len(a.opts.reviewTagsOf(note)) == 0 {
			continue
		}
		if rec, ok := note.Schedule(); ok {
			a.NoteStats.Add(rec, now)
		} else {
			a.NoteStats.AddNew()
		}
	}
}

// Note returns a loaded note by path.
func (a *Arena) Note(path string) (*domain.Note, bool) {
	n, ok := a.notes[path]
	return n, ok
}

// offered reports whether a card belongs in the review tree.
func (a *Arena) offered(card *domain.Card, now time.Time) bool {
	if a.opts.Mode == ModeCram {
		return true
	}
	return card.IsNew() || card.IsDue(now)
}

func (a *Arena) reviewTree(now time.Time) *deck.Deck {
	tree := a.FullTree.CopyWithCardFilter(func(c *domain.Card) bool {
		return a.offered(c, now)
	})
	tree.PruneEmpty()
	return tree
}

// Refile moves a card whose schedule changed to the right list of every deck
// it is filed in, and drops it from the review tree once it is no longer
// offered.
func (a *Arena) Refile(card *domain.Card, now time.Time) {
	for _, path := range card.Question.TopicPaths {
		d := a.FullTree.GetDeck(path)
		if d == nil {
			continue
		}
		d.DeleteCard(card)
		d.AppendCard(nil, card)
		sortDueList(d)

		if r := a.ReviewTree.GetDeck(path); r != nil {
			r.DeleteCard(card)
			if a.offered(card, now) {
				r.AppendCard(nil, card)
			}
		}
	}
}

func sortDueList(d *deck.Deck) {
	slices.SortStableFunc(d.DueFlashcards, func(x, y *domain.Card) int {
		rx, _ := x.Schedule()
		ry, _ := y.Schedule()
		return rx.DueDate.Compare(ry.DueDate)
	})
}
