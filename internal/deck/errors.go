package deck

import "errors"

var (
	// ErrIllegalState is returned when an iterator operation is called out of
	// order, such as deleting the current card when there is none.
	ErrIllegalState = errors.New("illegal iterator state")

	// ErrDeckNotFound is returned when a topic path names no deck.
	ErrDeckNotFound = errors.New("deck not found")
)
