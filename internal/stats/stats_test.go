package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
)

var testNow = time.Date(2023, 9, 2, 12, 0, 0, 0, time.UTC)

func scheduled(t *testing.T, dueInDays int, interval, ease float64) domain.ScheduleRecord {
	t.Helper()
	rec, err := domain.NewScheduleRecord(domain.AddDays(testNow, dueInDays), interval, ease, 0)
	require.NoError(t, err)
	return rec
}

func TestStatsAdd(t *testing.T) {
	t.Parallel()

	s := New()
	s.AddNew()
	s.Add(scheduled(t, -2, 4, 250), testNow)
	s.Add(scheduled(t, 3, 32, 270), testNow)
	s.Add(scheduled(t, 40, 40, 290), testNow)

	assert.Equal(t, 1, s.NewCount)
	assert.Equal(t, 2, s.YoungCount)
	assert.Equal(t, 1, s.MatureCount)
	assert.Equal(t, 4, s.Total())
	assert.Equal(t, 1, s.DueDays.Get(-2))
	assert.Equal(t, 1, s.Eases.Get(270))
	assert.Equal(t, 1, s.Intervals.Get(40))

	sum := s.Summarize()
	assert.Equal(t, 270.0, sum.AverageEase)
	assert.Equal(t, 25.3, sum.AverageInterval)
	assert.Equal(t, 1, sum.Overdue)
}

func TestForecast(t *testing.T) {
	t.Parallel()

	s := New()
	for _, due := range []int{-3, 0, 1, 6, 7, 29, 30, 400} {
		s.Add(scheduled(t, due, 5, 250), testNow)
	}

	assert.Equal(t, []ForecastEntry{
		{Bucket: 0, Count: 2}, {Bucket: 1, Count: 1}, {Bucket: 6, Count: 1},
		{Bucket: 7, Count: 1}, {Bucket: 29, Count: 1}, {Bucket: 30, Count: 1}, {Bucket: 400, Count: 1},
	}, s.Forecast(GranularityDay))

	assert.Equal(t, []ForecastEntry{
		{Bucket: 0, Count: 4}, {Bucket: 1, Count: 1}, {Bucket: 4, Count: 2}, {Bucket: 57, Count: 1},
	}, s.Forecast(GranularityWeek))

	assert.Equal(t, []ForecastEntry{
		{Bucket: 0, Count: 7}, {Bucket: 1, Count: 1},
	}, s.Forecast(GranularityYear))
}

func TestParseGranularity(t *testing.T) {
	t.Parallel()

	g, err := ParseGranularity("")
	require.NoError(t, err)
	assert.Equal(t, GranularityDay, g)

	g, err = ParseGranularity(" Quarter ")
	require.NoError(t, err)
	assert.Equal(t, 91, g.Days())

	_, err = ParseGranularity("decade")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
