package domain

import "sort"

// Collection is everything read from a vault in one load pass.
type Collection struct {
	Notes     []*Note
	Questions []*Question
	// Links maps a source note path to the note paths it links to, with the
	// number of links to each.
	Links map[string]map[string]int
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{Links: make(map[string]map[string]int)}
}

// AddLink records count links from source to target.
func (c *Collection) AddLink(source, target string, count int) {
	if count <= 0 {
		return
	}
	if c.Links == nil {
		c.Links = make(map[string]map[string]int)
	}
	targets, ok := c.Links[source]
	if !ok {
		targets = make(map[string]int)
		c.Links[source] = targets
	}
	targets[target] += count
}

// Cards returns every card of every question.
func (c *Collection) Cards() []*Card {
	var out []*Card
	for _, q := range c.Questions {
		out = append(out, q.Cards...)
	}
	return out
}

// Note returns the note with the given path.
func (c *Collection) Note(path string) (*Note, bool) {
	for _, n := range c.Notes {
		if n.Path == path {
			return n, true
		}
	}
	return nil, false
}

// SortedNotePaths returns the note paths in lexical order.
func (c *Collection) SortedNotePaths() []string {
	paths := make([]string, 0, len(c.Notes))
	for _, n := range c.Notes {
		paths = append(paths, n.Path)
	}
	sort.Strings(paths)
	return paths
}

// ApplySchedules overrides item schedules with the given records keyed by
// item ID. It returns the number of items updated.
func (c *Collection) ApplySchedules(schedules map[string]ScheduleRecord) int {
	if len(schedules) == 0 {
		return 0
	}
	updated := 0
	for _, n := range c.Notes {
		if rec, ok := schedules[n.ID()]; ok {
			n.SetSchedule(&rec)
			updated++
		}
	}
	for _, card := range c.Cards() {
		if rec, ok := schedules[card.ID()]; ok {
			card.SetSchedule(&rec)
			updated++
		}
	}
	return updated
}

// Schedules returns the schedule of every scheduled note and card keyed by
// item ID. New items are left out.
func (c *Collection) Schedules() map[string]ScheduleRecord {
	out := make(map[string]ScheduleRecord)
	for _, n := range c.Notes {
		if rec, ok := n.Schedule(); ok {
			out[n.ID()] = rec
		}
	}
	for _, card := range c.Cards() {
		if rec, ok := card.Schedule(); ok {
			out[card.ID()] = rec
		}
	}
	return out
}
