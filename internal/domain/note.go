package domain

import "time"

// Note is a whole document scheduled for review as a unit.
type Note struct {
	Path string   `json:"path"`
	Tags []string `json:"tags"`

	schedule *ScheduleRecord
}

var _ Item = (*Note)(nil)

// NewNote creates a note with an optional schedule.
func NewNote(path string, tags []string, rec *ScheduleRecord) *Note {
	n := &Note{Path: path, Tags: tags}
	n.SetSchedule(rec)
	return n
}

// ID implements Item. Notes are keyed by path.
func (n *Note) ID() string { return n.Path }

// Kind implements Item.
func (n *Note) Kind() ItemKind { return ItemKindNote }

// HasSchedule implements Item.
func (n *Note) HasSchedule() bool { return n.schedule != nil }

// Schedule implements Item.
func (n *Note) Schedule() (ScheduleRecord, bool) {
	if n.schedule == nil {
		return ScheduleRecord{}, false
	}
	return *n.schedule, true
}

// SetSchedule replaces the note's schedule.
func (n *Note) SetSchedule(rec *ScheduleRecord) {
	if rec == nil {
		n.schedule = nil
		return
	}
	r := *rec
	n.schedule = &r
}

// IsDue reports whether a scheduled note is due on the day containing now.
func (n *Note) IsDue(now time.Time) bool {
	return n.schedule != nil && n.schedule.IsDue(now)
}

// HasTag reports whether the note carries the tag or a sub-tag of it.
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag || (len(t) > len(tag) && t[:len(tag)] == tag && t[len(tag)] == '/') {
			return true
		}
	}
	return false
}
