package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/histogram"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/linkgraph"
)

var testNow = time.Date(2023, 9, 2, 10, 0, 0, 0, time.UTC)

func record(t *testing.T, daysFromToday int, interval, ease float64) *domain.ScheduleRecord {
	t.Helper()
	rec, err := domain.NewScheduleRecord(domain.AddDays(testNow, daysFromToday), interval, ease, 0)
	require.NoError(t, err)
	return &rec
}

func TestCalculateInterval(t *testing.T) {
	t.Parallel()
	settings := NewDefaultSettings()

	testCases := []struct {
		name         string
		response     domain.ReviewResponse
		interval     float64
		ease         float64
		delayDays    int
		wantInterval float64
		wantEase     float64
	}{
		{"easy raises ease and applies bonus", domain.ResponseEasy, 4, 270, 0, 15.08, 290},
		{"hard lowers ease and halves", domain.ResponseHard, 4, 270, 0, 2, 250},
		{"good keeps ease", domain.ResponseGood, 4, 270, 0, 10.8, 270},
		{"good counts half the delay", domain.ResponseGood, 4, 250, 10, 22.5, 250},
		{"easy counts the full delay", domain.ResponseEasy, 4, 250, 2, 6 * 2.7 * 1.3, 270},
		{"hard counts a quarter of the delay", domain.ResponseHard, 4, 250, 8, 3, 230},
		{"hard keeps at least one day", domain.ResponseHard, 1, 250, 0, 1, 230},
		{"hard never drops ease below floor", domain.ResponseHard, 10, 140, 0, 5, 130},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			interval, ease := calculateInterval(tc.response, tc.interval, tc.ease, tc.delayDays, settings)
			assert.InDelta(t, tc.wantInterval, interval, 1e-9)
			assert.InDelta(t, tc.wantEase, ease, 1e-9)
		})
	}
}

func TestIntervalMonotonicity(t *testing.T) {
	t.Parallel()
	settings := NewDefaultSettings()

	for _, interval := range []float64{1, 3, 10, 100, 1000} {
		for _, ease := range []float64{130, 180, 250, 400} {
			easy, _ := calculateInterval(domain.ResponseEasy, interval, ease, 0, settings)
			good, _ := calculateInterval(domain.ResponseGood, interval, ease, 0, settings)
			hard, _ := calculateInterval(domain.ResponseHard, interval, ease, 0, settings)
			assert.GreaterOrEqual(t, easy, good, "interval=%v ease=%v", interval, ease)
			assert.GreaterOrEqual(t, good, hard, "interval=%v ease=%v", interval, ease)
		}
	}
}

func TestFuzzRadius(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		days int
		want int
	}{
		{5, 1}, {6, 1}, {7, 2}, {13, 2}, {20, 3}, {29, 4}, {30, 4}, {80, 4}, {100, 5}, {365, 18},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, fuzzRadius(tc.days), "days=%d", tc.days)
	}
}

func TestBalanceInterval(t *testing.T) {
	t.Parallel()

	t.Run("unused offset is accepted", func(t *testing.T) {
		h := histogram.New()
		assert.Equal(t, 20.0, balanceInterval(19.6, h))
		assert.Equal(t, 1, h.Get(20))
	})

	t.Run("used offset moves to a free neighbour", func(t *testing.T) {
		h := histogram.New()
		h.Increment(20)
		assert.Equal(t, 19.0, balanceInterval(20, h))
		assert.Equal(t, 1, h.Get(19))
		assert.Equal(t, 1, h.Get(20))
	})

	t.Run("short intervals are never moved", func(t *testing.T) {
		h := histogram.New()
		h.Set(3, 5)
		assert.Equal(t, 3.0, balanceInterval(3, h))
		assert.Equal(t, 6, h.Get(3))
	})

	t.Run("saturated window takes the least used offset", func(t *testing.T) {
		h := histogram.New()
		for offset, count := range map[int]int{4: 3, 5: 9, 6: 1} {
			h.Set(offset, count)
		}
		assert.Equal(t, 6.0, balanceInterval(5, h))
		assert.Equal(t, 2, h.Get(6))
	})
}

func TestCalculateNextSchedule(t *testing.T) {
	t.Parallel()
	settings := NewDefaultSettings()
	today := domain.Today(testNow)

	t.Run("easy on a due item", func(t *testing.T) {
		next := calculateNextSchedule(record(t, 0, 4, 270), domain.ResponseEasy, 250, nil, testNow, settings)
		assert.Equal(t, 15.1, next.Interval)
		assert.Equal(t, 290.0, next.Ease)
		assert.Equal(t, domain.AddDays(today, 15), next.DueDate)
	})

	t.Run("hard on a due item", func(t *testing.T) {
		next := calculateNextSchedule(record(t, 0, 4, 270), domain.ResponseHard, 250, nil, testNow, settings)
		assert.Equal(t, 2.0, next.Interval)
		assert.Equal(t, 250.0, next.Ease)
		assert.Equal(t, domain.AddDays(today, 2), next.DueDate)
	})

	t.Run("late review rewards the delay", func(t *testing.T) {
		next := calculateNextSchedule(record(t, -10, 4, 250), domain.ResponseGood, 250, nil, testNow, settings)
		assert.Equal(t, 22.5, next.Interval)
		assert.Equal(t, domain.AddDays(today, 23), next.DueDate)
	})

	t.Run("new item starts from initial ease", func(t *testing.T) {
		next := calculateNextSchedule(nil, domain.ResponseGood, 270, nil, testNow, settings)
		assert.Equal(t, 2.7, next.Interval)
		assert.Equal(t, 270.0, next.Ease)
		assert.Equal(t, domain.AddDays(today, 3), next.DueDate)
	})

	t.Run("reset returns to defaults", func(t *testing.T) {
		next := calculateNextSchedule(record(t, 0, 40, 150), domain.ResponseReset, 250, histogram.New(), testNow, settings)
		assert.Equal(t, 1.0, next.Interval)
		assert.Equal(t, settings.BaseEase, next.Ease)
		assert.Equal(t, domain.AddDays(today, 1), next.DueDate)
	})

	t.Run("interval is capped at the maximum", func(t *testing.T) {
		next := calculateNextSchedule(record(t, 0, 30000, 300), domain.ResponseEasy, 250, nil, testNow, settings)
		assert.Equal(t, float64(settings.MaximumInterval), next.Interval)
		assert.Equal(t, domain.AddDays(today, settings.MaximumInterval), next.DueDate)
	})

	t.Run("load balancing uses the histogram", func(t *testing.T) {
		h := histogram.New()
		h.Increment(20)
		next := calculateNextSchedule(record(t, 0, 8, 250), domain.ResponseGood, 250, h, testNow, settings)
		assert.Equal(t, 19.0, next.Interval)
		assert.Equal(t, domain.AddDays(today, 19), next.DueDate)
		assert.Equal(t, 1, h.Get(19))
	})

	t.Run("load balancing can be disabled", func(t *testing.T) {
		noBalance := *settings
		noBalance.LoadBalance = false
		h := histogram.New()
		h.Increment(20)
		next := calculateNextSchedule(record(t, 0, 8, 250), domain.ResponseGood, 250, h, testNow, &noBalance)
		assert.Equal(t, 20.0, next.Interval)
		assert.Equal(t, 1, h.Sum())
	})
}

func TestClampProperty(t *testing.T) {
	t.Parallel()
	settings := NewDefaultSettings()
	responses := []domain.ReviewResponse{
		domain.ResponseEasy, domain.ResponseGood, domain.ResponseHard, domain.ResponseReset,
	}

	for _, interval := range []float64{0, 0.3, 1, 7, 365, 20000, 36500} {
		for _, ease := range []float64{130, 131, 150, 250, 500} {
			for _, response := range responses {
				next := calculateNextSchedule(record(t, -3, interval, ease), response, 250, histogram.New(), testNow, settings)
				assert.GreaterOrEqual(t, next.Interval, 0.0)
				assert.LessOrEqual(t, next.Interval, float64(settings.MaximumInterval))
				if response == domain.ResponseHard || response == domain.ResponseReset {
					assert.GreaterOrEqual(t, next.Ease, MinEase)
				}
			}
		}
	}
}

func TestCalculateInitialNoteEase(t *testing.T) {
	t.Parallel()
	settings := NewDefaultSettings()

	graph := linkgraph.New()
	graph.AddLink("a.md", "b.md", 1)
	graph.AddLink("c.md", "a.md", 2)
	graph.ComputeRanks()

	t.Run("no links gives base ease", func(t *testing.T) {
		assert.Equal(t, 250.0, calculateInitialNoteEase(graph, "lonely.md", NewEaseList(), settings))
	})

	t.Run("partners without ease are ignored", func(t *testing.T) {
		eases := NewEaseList()
		eases.Add("b.md", 300)
		assert.Equal(t, 255.0, calculateInitialNoteEase(graph, "a.md", eases, settings))
	})

	t.Run("own average is blended in", func(t *testing.T) {
		eases := NewEaseList()
		eases.Add("b.md", 300)
		eases.Add("a.md", 270)
		assert.Equal(t, 262.0, calculateInitialNoteEase(graph, "a.md", eases, settings))
	})

	t.Run("many links reach full weight", func(t *testing.T) {
		dense := linkgraph.New()
		dense.AddLink("x.md", "y.md", 70)
		dense.ComputeRanks()
		eases := NewEaseList()
		eases.Add("y.md", 200)
		assert.Equal(t, 200.0, calculateInitialNoteEase(dense, "x.md", eases, settings))
	})

	t.Run("zero link factor ignores links", func(t *testing.T) {
		noLinks := *settings
		noLinks.MaxLinkFactor = 0
		eases := NewEaseList()
		eases.Add("b.md", 300)
		assert.Equal(t, 250.0, calculateInitialNoteEase(graph, "a.md", eases, &noLinks))
	})
}

func TestCalculateLinkContribution(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, calculateLinkContribution(0, 1))
	assert.InDelta(t, 0.0975, calculateLinkContribution(1, 1), 1e-4)
	assert.Equal(t, 1.0, calculateLinkContribution(64, 1))
	assert.Equal(t, 0.5, calculateLinkContribution(1000, 0.5))
}

func TestCalculateInitialCardEase(t *testing.T) {
	t.Parallel()
	settings := NewDefaultSettings()

	eases := NewEaseList()
	eases.Add("a.md", 262)
	eases.Add("a.md", 263)

	assert.Equal(t, 263.0, calculateInitialCardEase("a.md", eases, settings))
	assert.Equal(t, 250.0, calculateInitialCardEase("b.md", eases, settings))
	assert.Equal(t, 250.0, calculateInitialCardEase("a.md", nil, settings))
}
