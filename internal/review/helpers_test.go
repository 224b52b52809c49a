package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain/srs"
)

var testNow = time.Date(2023, 9, 2, 9, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func schedule(t *testing.T, due time.Time, interval, ease float64) *domain.ScheduleRecord {
	t.Helper()
	rec, err := domain.NewScheduleRecord(due, interval, ease, 0)
	require.NoError(t, err)
	return &rec
}

// addQuestion files a basic question in notePath under topic, with one card
// per front. recs gives the schedule of each card in turn; missing entries
// leave the card new.
func addQuestion(col *domain.Collection, notePath, topic, text string, fronts []string, recs ...*domain.ScheduleRecord) *domain.Question {
	q := domain.NewQuestion(notePath, domain.QuestionSingleLineBasic, text, len(col.Questions)+1)
	q.TopicPaths = []domain.TopicPath{domain.ParseTopicPath(topic)}
	for i, front := range fronts {
		var rec *domain.ScheduleRecord
		if i < len(recs) {
			rec = recs[i]
		}
		q.AddCard(front, "answer to "+front, rec)
	}
	col.Questions = append(col.Questions, q)
	return q
}

func path(tag string) domain.TopicPath {
	return domain.ParseTopicPath(tag)
}

func fronts(cards []*domain.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Front)
	}
	return out
}

func newEngine(t *testing.T) srs.Service {
	t.Helper()
	engine, err := srs.NewDefaultService()
	require.NoError(t, err)
	return engine
}

var errSaveFailed = errors.New("disk full")

// failingStore refuses every save.
type failingStore struct{}

func (failingStore) LoadSchedule(context.Context, string) (*domain.ScheduleRecord, error) {
	return nil, nil
}

func (failingStore) SaveSchedule(context.Context, string, domain.ScheduleRecord) error {
	return errSaveFailed
}

func (failingStore) LoadAll(context.Context) (map[string]domain.ScheduleRecord, error) {
	return nil, nil
}
