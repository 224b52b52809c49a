package deck

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
)

var testNow = time.Date(2023, 9, 2, 9, 0, 0, 0, time.UTC)

func newCard(t *testing.T, text string) *domain.Card {
	t.Helper()
	q := domain.NewQuestion("notes/"+text+".md", domain.QuestionSingleLineBasic, text+"::answer", 1)
	return q.AddCard(text, "answer", nil)
}

func dueCard(t *testing.T, text string) *domain.Card {
	t.Helper()
	rec, err := domain.NewScheduleRecord(testNow, 3, 250, 0)
	require.NoError(t, err)
	q := domain.NewQuestion("notes/"+text+".md", domain.QuestionSingleLineBasic, text+"::answer", 1)
	return q.AddCard(text, "answer", &rec)
}

func path(names ...string) domain.TopicPath {
	return domain.TopicPath(names)
}

// drain collects the fronts of every card the iterator yields.
func drain(t *testing.T, it *Iterator) []string {
	t.Helper()
	var got []string
	for {
		ok, err := it.NextCard()
		require.NoError(t, err)
		if !ok {
			return got
		}
		got = append(got, it.CurrentCard().Front)
	}
}
