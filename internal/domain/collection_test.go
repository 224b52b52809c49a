package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionLinks(t *testing.T) {
	t.Parallel()
	c := NewCollection()
	c.AddLink("a.md", "b.md", 2)
	c.AddLink("a.md", "b.md", 1)
	c.AddLink("a.md", "c.md", 0)

	assert.Equal(t, map[string]map[string]int{"a.md": {"b.md": 3}}, c.Links)
}

func TestCollectionApplySchedules(t *testing.T) {
	t.Parallel()
	c := NewCollection()
	note := NewNote("a.md", []string{"#review"}, nil)
	c.Notes = append(c.Notes, note)
	q := NewQuestion("a.md", QuestionSingleLineReversed, "Q:::A", 3)
	q.AddCard("Q", "A", nil)
	q.AddCard("A", "Q", nil)
	c.Questions = append(c.Questions, q)

	rec, err := NewScheduleRecord(time.Date(2023, 9, 6, 0, 0, 0, 0, time.UTC), 4, 270, 0)
	require.NoError(t, err)

	n := c.ApplySchedules(map[string]ScheduleRecord{
		"a.md":            rec,
		q.Cards[1].ID():   rec,
		"missing.md#card": rec,
	})

	assert.Equal(t, 2, n)
	assert.True(t, note.HasSchedule())
	assert.True(t, q.Cards[0].IsNew())
	assert.False(t, q.Cards[1].IsNew())
	assert.Len(t, c.Cards(), 2)

	got, ok := c.Note("a.md")
	require.True(t, ok)
	assert.Same(t, note, got)
}

func TestCollectionSchedules(t *testing.T) {
	t.Parallel()
	rec, err := NewScheduleRecord(time.Date(2023, 9, 6, 0, 0, 0, 0, time.UTC), 4, 270, 0)
	require.NoError(t, err)

	c := NewCollection()
	c.Notes = append(c.Notes,
		NewNote("due.md", []string{"#review"}, &rec),
		NewNote("new.md", []string{"#review"}, nil))
	q := NewQuestion("a.md", QuestionSingleLineReversed, "Q:::A", 1)
	q.AddCard("Q", "A", nil)
	q.AddCard("A", "Q", &rec)
	c.Questions = append(c.Questions, q)

	assert.Equal(t, map[string]ScheduleRecord{
		"due.md":        rec,
		q.Cards[1].ID(): rec,
	}, c.Schedules())
	assert.Empty(t, NewCollection().Schedules())
}

func TestDateIn(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("UTC+9", 9*3600)
	got := DateIn(time.Date(2023, 9, 6, 0, 0, 0, 0, time.UTC), loc)
	assert.Equal(t, time.Date(2023, 9, 6, 0, 0, 0, 0, loc), got)
}
