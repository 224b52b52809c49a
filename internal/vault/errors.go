package vault

import "errors"

var (
	// ErrQuestionNotFound is returned when a question's text can no longer be
	// found in its note, usually because the file was edited since loading.
	ErrQuestionNotFound = errors.New("question not found in note")

	// ErrUnknownItem is returned when saving a schedule for an ID that is
	// neither a tracked note nor a tracked card.
	ErrUnknownItem = errors.New("unknown item")
)
