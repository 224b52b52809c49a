package store

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every ScheduleStore implementation.
var (
	// ErrNotFound is the root of every "not found" error.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate reports a write that collides with an existing row.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity reports a schedule rejected before or by the
	// database, such as a negative interval.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrScheduleNotFound means the item exists but was never reviewed.
	ErrScheduleNotFound = fmt.Errorf("%w: schedule", ErrNotFound)

	// ErrItemNotFound means the store does not know the item at all, for
	// example a card ID that matches no question in the vault.
	ErrItemNotFound = fmt.Errorf("%w: item", ErrNotFound)
)

// IsNotFoundError reports whether err is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is or wraps ErrDuplicate.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError records which store operation failed on which entity.
type StoreError struct {
	Entity    string // "schedule", "note", ...
	Operation string // "load", "save", ...
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("store: %s %s: %s", e.Operation, e.Entity, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError wrapping err.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
