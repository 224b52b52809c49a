package domain

// ItemKind distinguishes the two kinds of schedulable items.
type ItemKind string

const (
	ItemKindCard ItemKind = "card"
	ItemKindNote ItemKind = "note"
)

// Item is anything the scheduling engine can schedule. Cards and notes share
// this contract; callers pick the right variant from context.
type Item interface {
	// ID is a stable identity used as the persistence key.
	ID() string

	// Kind reports whether the item is a card or a note.
	Kind() ItemKind

	// HasSchedule reports whether the item has been reviewed before.
	HasSchedule() bool

	// Schedule returns the item's current schedule, if any.
	Schedule() (ScheduleRecord, bool)
}
