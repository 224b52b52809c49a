package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date layout used wherever a due date is persisted.
const DateLayout = "2006-01-02"

// DummyDueDate marks a sibling card that has never been individually reviewed.
const DummyDueDate = "2000-01-01"

// Day is the length of one scheduling day.
const Day = 24 * time.Hour

// Today returns midnight of the calendar day containing now, in now's location.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// DaysBetween returns the number of calendar days from one date to another.
// Times of day are ignored; the result is negative when to is before from.
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / Day)
}

// AddDays returns the midnight date that lies n calendar days after date.
func AddDays(date time.Time, n int) time.Time {
	return Today(date).AddDate(0, 0, n)
}

// ParseDate parses a YYYY-MM-DD date in the given location.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidFormat, s)
	}
	return t, nil
}

// DateIn returns midnight of t's calendar date in loc. Drivers that return
// DATE columns in UTC use it to move due dates back to the local calendar.
func DateIn(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
