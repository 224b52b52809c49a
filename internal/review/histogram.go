package review

import (
	"time"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/deck"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/histogram"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/stats"
)

// PopulateDueDateHistogram visits every card of the tree once and counts
// scheduled cards by days until due. The tree itself is not modified.
func PopulateDueDateHistogram(tree *deck.Deck, now time.Time) (*histogram.ValueCountHistogram, *stats.Stats) {
	dueDates := histogram.New()
	st := stats.New()

	order := deck.IteratorOrder{
		DeckOrder: deck.DeckOrderSequentialOnceComplete,
		CardOrder: deck.CardOrderNewFirstSequential,
	}
	it := deck.NewIterator(order, deck.NewSeededRandomSource(0), tree.DeepClone())
	if err := it.SetIteratorTopicPath(nil); err != nil {
		return dueDates, st
	}

	for {
		ok, err := it.NextCard()
		if err != nil || !ok {
			break
		}
		rec, scheduled := it.CurrentCard().Schedule()
		if !scheduled {
			st.AddNew()
			continue
		}
		dueDates.Increment(rec.DaysUntilDue(now))
		st.Add(rec, now)
	}

	return dueDates, st
}
