package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionCards(t *testing.T) {
	t.Parallel()

	q := NewQuestion("notes/physics.md", QuestionSingleLineReversed, "force:::mass times acceleration", 3)
	due := time.Date(2023, 9, 2, 0, 0, 0, 0, time.UTC)
	rec, err := NewScheduleRecord(due, 4, 270, 0)
	require.NoError(t, err)

	front := q.AddCard("force", "mass times acceleration", &rec)
	back := q.AddCard("mass times acceleration", "force", nil)

	assert.Equal(t, 0, front.Index)
	assert.Equal(t, 1, back.Index)
	assert.Equal(t, q.ID()+"#0", front.ID())
	assert.NotEqual(t, front.ID(), back.ID())
	assert.Equal(t, ItemKindCard, front.Kind())

	assert.False(t, front.IsNew())
	assert.True(t, back.IsNew())
	assert.True(t, front.IsDue(due))
	assert.False(t, front.IsDue(due.AddDate(0, 0, -1)))

	assert.Equal(t, []*Card{back}, front.Siblings())

	scheds := q.Schedules()
	require.Len(t, scheds, 2)
	assert.NotNil(t, scheds[0])
	assert.Nil(t, scheds[1])
}

func TestContentHashIgnoresSurroundingWhitespace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ContentHash("q::a"), ContentHash("  q::a\n"))
	assert.NotEqual(t, ContentHash("q::a"), ContentHash("q::b"))
}

func TestParseTopicPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, TopicPath{"#flashcards", "science"}, ParseTopicPath("#flashcards/science"))
	assert.True(t, ParseTopicPath("").IsEmpty())
	assert.Equal(t, "#flashcards/science", ParseTopicPath("#flashcards//science/").String())
	assert.True(t, TopicPath{"a", "b"}.Equal(ParseTopicPath("a/b")))
}

func TestNoteHasTag(t *testing.T) {
	t.Parallel()

	n := NewNote("a.md", []string{"#review/math", "#misc"}, nil)
	assert.True(t, n.HasTag("#review"))
	assert.True(t, n.HasTag("#review/math"))
	assert.False(t, n.HasTag("#rev"))
	assert.False(t, n.HasSchedule())
	assert.Equal(t, ItemKindNote, n.Kind())
}
