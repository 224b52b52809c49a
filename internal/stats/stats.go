// Package stats aggregates schedules into the histograms and counts shown
// on the statistics screen.
package stats

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/histogram"
)

// MatureIntervalDays is the interval above which a card counts as mature.
const MatureIntervalDays = 32

// Granularity is the width of a forecast bucket.
type Granularity string

const (
	GranularityDay     Granularity = "day"
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

var granularityDays = map[Granularity]int{
	GranularityDay:     1,
	GranularityWeek:    7,
	GranularityMonth:   30,
	GranularityQuarter: 91,
	GranularityYear:    365,
}

// ParseGranularity parses a bucket name. The empty string means day.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	if g == "" {
		return GranularityDay, nil
	}
	if _, ok := granularityDays[g]; !ok {
		return "", fmt.Errorf("%w: unknown forecast bucket %q", domain.ErrValidation, s)
	}
	return g, nil
}

// Days returns the bucket width in days.
func (g Granularity) Days() int {
	if d, ok := granularityDays[g]; ok {
		return d
	}
	return 1
}

// Stats collects the distribution of eases, intervals and due days over a
// set of items.
type Stats struct {
	Eases     *histogram.ValueCountHistogram
	Intervals *histogram.ValueCountHistogram
	// DueDays is keyed by days from today; overdue items have negative keys.
	DueDays *histogram.ValueCountHistogram

	NewCount    int
	YoungCount  int
	MatureCount int
}

// New creates empty stats.
func New() *Stats {
	return &Stats{
		Eases:     histogram.New(),
		Intervals: histogram.New(),
		DueDays:   histogram.New(),
	}
}

// AddNew counts an item that has never been reviewed.
func (s *Stats) AddNew() {
	s.NewCount++
}

// Add records a scheduled item.
func (s *Stats) Add(rec domain.ScheduleRecord, now time.Time) {
	s.Eases.Increment(int(math.Round(rec.Ease)))
	s.Intervals.Increment(int(math.Round(rec.Interval)))
	s.DueDays.Increment(rec.DaysUntilDue(now))

	if rec.Interval > MatureIntervalDays {
		s.MatureCount++
	} else {
		s.YoungCount++
	}
}

// Total returns the number of items recorded.
func (s *Stats) Total() int {
	return s.NewCount + s.YoungCount + s.MatureCount
}

// ForecastEntry is the number of items falling due in one bucket. Bucket 0
// starts today.
type ForecastEntry struct {
	Bucket int `json:"bucket"`
	Count  int `json:"count"`
}

// Forecast groups due days into buckets of the given granularity. Overdue
// items are counted as due today.
func (s *Stats) Forecast(g Granularity) []ForecastEntry {
	due := histogram.New()
	for _, day := range s.DueDays.Keys() {
		due.Set(max(0, day), due.Get(max(0, day))+s.DueDays.Get(day))
	}

	buckets := due.Bucket(g.Days())
	out := make([]ForecastEntry, 0, buckets.Len())
	for _, b := range buckets.Keys() {
		out = append(out, ForecastEntry{Bucket: b, Count: buckets.Get(b)})
	}
	return out
}

// Summary is the JSON view of Stats.
type Summary struct {
	New             int     `json:"new"`
	Young           int     `json:"young"`
	Mature          int     `json:"mature"`
	Total           int     `json:"total"`
	AverageEase     float64 `json:"average_ease"`
	AverageInterval float64 `json:"average_interval"`
	Overdue         int     `json:"overdue"`
}

// Summarize reduces Stats to its headline numbers. Averages cover scheduled
// items only and are rounded to one decimal.
func (s *Stats) Summarize() Summary {
	sum := Summary{
		New:    s.NewCount,
		Young:  s.YoungCount,
		Mature: s.MatureCount,
		Total:  s.Total(),
	}
	if n := s.Eases.Sum(); n > 0 {
		sum.AverageEase = roundTenth(float64(s.Eases.WeightedSum()) / float64(n))
		sum.AverageInterval = roundTenth(float64(s.Intervals.WeightedSum()) / float64(n))
	}
	for _, day := range s.DueDays.Keys() {
		if day < 0 {
			sum.Overdue += s.DueDays.Get(day)
		}
	}
	return sum
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
