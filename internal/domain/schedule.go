package domain

import (
	"fmt"
	"math"
	"time"
)

// ScheduleRecord is the scheduling state of one item: when it is due next,
// the interval that led there and the ease used to grow the next interval.
//
// Records are values. Reviewing an item yields a new record; nothing outside
// the scheduling algorithm changes a record's fields.
type ScheduleRecord struct {
	// DueDate is the calendar date (midnight) the item becomes reviewable.
	DueDate time.Time `json:"due_date"`

	// Interval is the number of days between reviews, rounded to 0.1.
	Interval float64 `json:"interval"`

	// Ease is the growth multiplier in percent (250 = 2.5x).
	Ease float64 `json:"ease"`

	// DelayBeforeReview is how long after DueDate the review actually
	// happened. Zero means unknown or on time.
	DelayBeforeReview time.Duration `json:"delay_before_review,omitempty"`
}

// NewScheduleRecord creates a record and validates it.
func NewScheduleRecord(dueDate time.Time, interval, ease float64, delay time.Duration) (ScheduleRecord, error) {
	rec := ScheduleRecord{
		DueDate:           Today(dueDate),
		Interval:          interval,
		Ease:              ease,
		DelayBeforeReview: delay,
	}
	if err := rec.Validate(); err != nil {
		return ScheduleRecord{}, err
	}
	return rec, nil
}

// Validate checks the record's invariants.
func (s ScheduleRecord) Validate() error {
	if s.DueDate.IsZero() {
		return fmt.Errorf("%w: due date is required", ErrInvalidSchedule)
	}
	if s.Interval < 0 || math.IsNaN(s.Interval) || math.IsInf(s.Interval, 0) {
		return fmt.Errorf("%w: interval %v must be >= 0", ErrInvalidSchedule, s.Interval)
	}
	if s.Ease <= 0 || math.IsNaN(s.Ease) || math.IsInf(s.Ease, 0) {
		return fmt.Errorf("%w: ease %v must be positive", ErrInvalidSchedule, s.Ease)
	}
	return nil
}

// DelayedBeforeReviewDays returns the whole number of days the review was late.
func (s ScheduleRecord) DelayedBeforeReviewDays() int {
	if s.DelayBeforeReview <= 0 {
		return 0
	}
	return int(s.DelayBeforeReview / Day)
}

// WithReviewTime returns a copy whose delay reflects a review happening at now.
func (s ScheduleRecord) WithReviewTime(now time.Time) ScheduleRecord {
	out := s
	out.DelayBeforeReview = 0
	if now.After(s.DueDate) {
		out.DelayBeforeReview = now.Sub(s.DueDate)
	}
	return out
}

// IsDue reports whether the item can be reviewed on the day containing now.
func (s ScheduleRecord) IsDue(now time.Time) bool {
	return !s.DueDate.After(Today(now))
}

// DaysUntilDue returns the calendar days from today to the due date.
// Overdue items give a negative value.
func (s ScheduleRecord) DaysUntilDue(now time.Time) int {
	return DaysBetween(now, s.DueDate)
}

// FormatDueDate renders the due date as YYYY-MM-DD.
func (s ScheduleRecord) FormatDueDate() string {
	return s.DueDate.Format(DateLayout)
}

// IsDummy reports whether the due date is the never-reviewed sentinel.
func (s ScheduleRecord) IsDummy() bool {
	return s.FormatDueDate() == DummyDueDate
}
