package review

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCurrentCard is returned when answering or skipping with no card drawn.
	ErrNoCurrentCard = errors.New("no current card")

	// ErrNoSession is returned when a session operation is called before a
	// session was started, or after a reload ended it.
	ErrNoSession = errors.New("no review session in progress")

	// ErrNoNotesDue is returned when a note deck has nothing left to review.
	ErrNoNotesDue = errors.New("no notes to review")

	// ErrUnknownItem is returned for a note path or tag that is not loaded.
	ErrUnknownItem = errors.New("unknown item")

	// ErrNotLoaded is returned when the service is used before Reload.
	ErrNotLoaded = errors.New("collection not loaded")
)

// ServiceError wraps a failure of a Service operation with the operation's
// name, so callers can use errors.As instead of matching strings.
type ServiceError struct {
	// Operation is the operation that failed, e.g. "reload" or "answer"
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

func newServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Operation: operation, Message: message, Err: err}
}
