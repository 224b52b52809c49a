package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
)

// mathCollection has one deck with a new card, an overdue card and a card
// due next week.
func mathCollection(t *testing.T) *domain.Collection {
	col := domain.NewCollection()
	col.Notes = append(col.Notes, domain.NewNote("math.md", []string{"#flashcards/math"}, nil))
	addQuestion(col, "math.md", "#flashcards/math", "new::1", []string{"new"})
	addQuestion(col, "math.md", "#flashcards/math", "later::2", []string{"later"},
		schedule(t, date(2023, 9, 10), 10, 270))
	addQuestion(col, "math.md", "#flashcards/math", "overdue::3", []string{"overdue"},
		schedule(t, date(2023, 9, 1), 4, 230))
	return col
}

func TestBuildArena_ReviewMode(t *testing.T) {
	arena := BuildArena(mathCollection(t), DefaultOptions(), testNow)

	full := arena.FullTree.GetDeck(path("#flashcards/math"))
	require.NotNil(t, full)
	assert.Equal(t, []string{"new"}, fronts(full.NewFlashcards))
	assert.Equal(t, []string{"overdue", "later"}, fronts(full.DueFlashcards), "due list is ordered by due date")

	rev := arena.ReviewTree.GetDeck(path("#flashcards/math"))
	require.NotNil(t, rev)
	assert.Equal(t, []string{"new"}, fronts(rev.NewFlashcards))
	assert.Equal(t, []string{"overdue"}, fronts(rev.DueFlashcards))

	assert.Equal(t, 1, arena.CardDueDates.Get(-1))
	assert.Equal(t, 1, arena.CardDueDates.Get(8))
	assert.Equal(t, 1, arena.CardStats.NewCount)
	assert.Equal(t, 2, arena.CardStats.YoungCount)

	avg, ok := arena.Eases.Average("math.md")
	require.True(t, ok)
	assert.InDelta(t, 250, avg, 0.001)
	assert.Equal(t, testNow, arena.BuiltAt)
}

func TestBuildArena_CramModeOffersEveryCard(t *testing.T) {
	opts := DefaultOptions()
	opts.Mode = ModeCram
	arena := BuildArena(mathCollection(t), opts, testNow)

	rev := arena.ReviewTree.GetDeck(path("#flashcards/math"))
	require.NotNil(t, rev)
	assert.Equal(t, []string{"overdue", "later"}, fronts(rev.DueFlashcards))
}

func TestBuildArena_PrunesDecksWithNothingToReview(t *testing.T) {
	col := mathCollection(t)
	addQuestion(col, "bio.md", "#flashcards/bio", "cell::4", []string{"cell"},
		schedule(t, date(2023, 9, 20), 20, 250))

	arena := BuildArena(col, DefaultOptions(), testNow)

	assert.NotNil(t, arena.FullTree.GetDeck(path("#flashcards/bio")))
	assert.Nil(t, arena.ReviewTree.GetDeck(path("#flashcards/bio")))
	assert.NotNil(t, arena.ReviewTree.GetDeck(path("#flashcards/math")))
}

func TestBuildArena_CardInSeveralDecks(t *testing.T) {
	col := domain.NewCollection()
	q := addQuestion(col, "a.md", "#flashcards/x", "shared::1", []string{"shared"})
	q.TopicPaths = append(q.TopicPaths, path("#flashcards/y"))

	arena := BuildArena(col, DefaultOptions(), testNow)

	assert.Len(t, arena.FullTree.GetDeck(path("#flashcards/x")).NewFlashcards, 1)
	assert.Len(t, arena.FullTree.GetDeck(path("#flashcards/y")).NewFlashcards, 1)
	assert.Equal(t, 1, arena.CardStats.NewCount, "a card filed twice is counted once")
}

func TestBuildArena_NotesAndLinks(t *testing.T) {
	col := domain.NewCollection()
	col.Notes = append(col.Notes,
		domain.NewNote("a.md", []string{"#review"}, schedule(t, date(2023, 9, 2), 3, 270)),
		domain.NewNote("b.md", []string{"#review/history"}, nil),
		domain.NewNote("c.md", nil, schedule(t, date(2023, 9, 5), 3, 210)),
	)
	col.AddLink("a.md", "b.md", 2)
	col.AddLink("b.md", "c.md", 1)

	arena := BuildArena(col, DefaultOptions(), testNow)

	assert.Greater(t, arena.Graph.Rank("b.md"), 0.0)
	assert.Equal(t, 2, arena.Graph.LinkCount("a.md", "b.md"))

	assert.Equal(t, 1, arena.NoteStats.NewCount)
	assert.Equal(t, 1, arena.NoteStats.YoungCount, "notes without a review tag are left out")
	assert.Equal(t, 1, arena.NoteDueDates.Get(0))
	assert.Equal(t, 0, arena.NoteDueDates.Get(3))

	avg, ok := arena.Eases.Average("c.md")
	require.True(t, ok, "every scheduled note contributes its ease")
	assert.InDelta(t, 210, avg, 0.001)

	note, ok := arena.Note("b.md")
	require.True(t, ok)
	assert.Equal(t, "b.md", note.Path)
	_, ok = arena.Note("missing.md")
	assert.False(t, ok)
}

func TestArena_Refile(t *testing.T) {
	col := mathCollection(t)
	arena := BuildArena(col, DefaultOptions(), testNow)
	card := col.Questions[0].Cards[0]

	card.SetSchedule(schedule(t, date(2023, 9, 5), 3, 250))
	arena.Refile(card, testNow)

	full := arena.FullTree.GetDeck(path("#flashcards/math"))
	assert.Empty(t, full.NewFlashcards)
	assert.Equal(t, []string{"overdue", "new", "later"}, fronts(full.DueFlashcards))

	rev := arena.ReviewTree.GetDeck(path("#flashcards/math"))
	assert.Empty(t, rev.NewFlashcards, "a card no longer due leaves the review tree")
	assert.Equal(t, []string{"overdue"}, fronts(rev.DueFlashcards))
}

func TestArena_RefreshStats(t *testing.T) {
	col := mathCollection(t)
	arena := BuildArena(col, DefaultOptions(), testNow)
	require.Equal(t, 1, arena.CardStats.NewCount)

	col.Questions[0].Cards[0].SetSchedule(schedule(t, date(2023, 12, 1), 90, 250))
	arena.RefreshStats(testNow)

	assert.Equal(t, 0, arena.CardStats.NewCount)
	assert.Equal(t, 2, arena.CardStats.YoungCount)
	assert.Equal(t, 1, arena.CardStats.MatureCount)
}
