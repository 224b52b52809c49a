// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidResponse is returned when a review response is not one of
	// Easy, Good, Hard or Reset.
	ErrInvalidResponse = errors.New("invalid review response")

	// ErrInvalidSchedule is returned when a schedule record violates its invariants.
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")
)
