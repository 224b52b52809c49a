package domain

import (
	"strconv"
	"time"
)

// Card is one reviewable side of a Question. A Question with several blanks or
// a reversed pair owns several sibling cards.
type Card struct {
	Question *Question `json:"-"`
	Index    int       `json:"index"`
	Front    string    `json:"front"`
	Back     string    `json:"back"`

	schedule *ScheduleRecord
}

var _ Item = (*Card)(nil)

// ID implements Item. It is stable across line-number shifts because it is
// derived from the question's content hash.
func (c *Card) ID() string {
	return c.Question.ID() + "#" + strconv.Itoa(c.Index)
}

// Kind implements Item.
func (c *Card) Kind() ItemKind { return ItemKindCard }

// HasSchedule implements Item.
func (c *Card) HasSchedule() bool { return c.schedule != nil }

// Schedule implements Item.
func (c *Card) Schedule() (ScheduleRecord, bool) {
	if c.schedule == nil {
		return ScheduleRecord{}, false
	}
	return *c.schedule, true
}

// SetSchedule replaces the card's schedule. A nil record marks the card as new.
func (c *Card) SetSchedule(rec *ScheduleRecord) {
	if rec == nil {
		c.schedule = nil
		return
	}
	r := *rec
	c.schedule = &r
}

// IsNew reports whether the card has never been reviewed.
func (c *Card) IsNew() bool { return c.schedule == nil }

// IsDue reports whether a scheduled card is due on the day containing now.
func (c *Card) IsDue(now time.Time) bool {
	return c.schedule != nil && c.schedule.IsDue(now)
}

// NotePath returns the path of the note the card was read from.
func (c *Card) NotePath() string {
	if c.Question == nil {
		return ""
	}
	return c.Question.NotePath
}

// Siblings returns the other cards generated from the same question.
func (c *Card) Siblings() []*Card {
	if c.Question == nil {
		return nil
	}
	out := make([]*Card, 0, max(0, len(c.Question.Cards)-1))
	for _, sib := range c.Question.Cards {
		if sib != c {
			out = append(out, sib)
		}
	}
	return out
}
