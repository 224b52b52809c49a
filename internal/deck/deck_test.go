package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
)

func TestGetOrCreateDeck(t *testing.T) {
	t.Parallel()

	root := NewRootDeck()
	science := root.GetOrCreateDeck(path("#flashcards", "science"))
	require.NotNil(t, science)

	assert.Equal(t, "science", science.Name)
	assert.Equal(t, path("#flashcards", "science"), science.TopicPath())
	assert.Same(t, science, root.GetOrCreateDeck(path("#flashcards", "science")))
	assert.Same(t, science, root.GetDeck(path("#flashcards", "science")))
	assert.Same(t, root, root.GetDeck(nil))
	assert.Nil(t, root.GetDeck(path("#flashcards", "maths")))
	assert.True(t, root.TopicPath().IsEmpty())
	require.Len(t, root.Subdecks, 1)
	assert.Len(t, root.Subdecks[0].Subdecks, 1)
}

func TestAppendCard(t *testing.T) {
	t.Parallel()

	root := NewRootDeck()
	q1 := newCard(t, "q1")
	q2 := dueCard(t, "q2")

	assert.True(t, root.AppendCard(path("#flashcards"), q1))
	assert.False(t, root.AppendCard(path("#flashcards"), q1), "duplicate in the same list")
	assert.True(t, root.AppendCard(path("#flashcards"), q2))
	assert.True(t, root.AppendCard(path("#flashcards", "science"), q1), "same card in another deck")

	flashcards := root.GetDeck(path("#flashcards"))
	assert.Equal(t, []*domain.Card{q1}, flashcards.NewFlashcards)
	assert.Equal(t, []*domain.Card{q2}, flashcards.DueFlashcards)
	assert.Equal(t, 1, flashcards.CardCount(CardListNew, false))
	assert.Equal(t, 2, flashcards.CardCount(CardListNew, true))
	assert.Equal(t, 3, root.TotalCardCount(true))
	assert.Equal(t, 0, root.TotalCardCount(false))
}

func TestDeleteCard(t *testing.T) {
	t.Parallel()

	root := NewRootDeck()
	q1 := newCard(t, "q1")
	root.AppendCard(path("#a"), q1)

	a := root.GetDeck(path("#a"))
	assert.True(t, a.DeleteCard(q1))
	assert.False(t, a.DeleteCard(q1))
	assert.True(t, root.IsEmpty())
}

func TestDeepCloneSharesCardsNotLists(t *testing.T) {
	t.Parallel()

	root := NewRootDeck()
	q1 := newCard(t, "q1")
	q2 := dueCard(t, "q2")
	root.AppendCard(path("#a"), q1)
	root.AppendCard(path("#a", "b"), q2)

	clone := root.DeepClone()
	cloneA := clone.GetDeck(path("#a"))
	require.NotNil(t, cloneA)
	assert.Same(t, q1, cloneA.NewFlashcards[0])
	assert.Same(t, clone, cloneA.Parent)
	assert.Equal(t, path("#a", "b"), clone.GetDeck(path("#a", "b")).TopicPath())

	cloneA.DeleteCard(q1)
	assert.Len(t, root.GetDeck(path("#a")).NewFlashcards, 1)
}

func TestCopyWithCardFilter(t *testing.T) {
	t.Parallel()

	root := NewRootDeck()
	root.AppendCard(path("#a"), newCard(t, "q1"))
	root.AppendCard(path("#a", "b"), dueCard(t, "q2"))

	dueOnly := root.CopyWithCardFilter(func(c *domain.Card) bool { return !c.IsNew() })
	assert.Equal(t, 0, dueOnly.CardCount(CardListNew, true))
	assert.Equal(t, 1, dueOnly.CardCount(CardListDue, true))
	assert.NotNil(t, dueOnly.GetDeck(path("#a")), "empty decks keep their place")

	dueOnly.PruneEmpty()
	assert.NotNil(t, dueOnly.GetDeck(path("#a", "b")))
	assert.Equal(t, 1, dueOnly.TotalCardCount(true))
}

func TestPruneEmptyRemovesCardlessBranches(t *testing.T) {
	t.Parallel()

	root := NewRootDeck()
	root.GetOrCreateDeck(path("#empty", "deeper"))
	root.AppendCard(path("#full"), newCard(t, "q1"))

	root.PruneEmpty()
	assert.Nil(t, root.GetDeck(path("#empty")))
	assert.NotNil(t, root.GetDeck(path("#full")))
}

func TestSortSubdecksAndWalk(t *testing.T) {
	t.Parallel()

	root := NewRootDeck()
	root.GetOrCreateDeck(path("#z"))
	root.GetOrCreateDeck(path("#a", "y"))
	root.GetOrCreateDeck(path("#a", "b"))
	root.SortSubdecks()

	var names []string
	root.Walk(func(d *Deck) { names = append(names, d.Name) })
	assert.Equal(t, []string{RootName, "#a", "b", "y", "#z"}, names)
	assert.Equal(t, "root\n  #a\n    b\n    y\n  #z\n", root.String())
}
