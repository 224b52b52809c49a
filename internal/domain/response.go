package domain

import (
	"encoding"
	"fmt"
	"strings"
)

// ReviewResponse is the user's assessment of how well an item was recalled.
type ReviewResponse int

const (
	ResponseEasy  ReviewResponse = iota // Recalled effortlessly.
	ResponseGood                        // Recalled with some effort.
	ResponseHard                        // Recalled with difficulty or forgotten.
	ResponseReset                       // Start over as if the item were new.
)

var responseNames = [...]string{
	ResponseEasy:  "easy",
	ResponseGood:  "good",
	ResponseHard:  "hard",
	ResponseReset: "reset",
}

var (
	_ fmt.Stringer             = ResponseEasy
	_ encoding.TextMarshaler   = ResponseEasy
	_ encoding.TextUnmarshaler = (*ReviewResponse)(nil)
)

// IsValid reports whether r is one of the four known responses.
func (r ReviewResponse) IsValid() bool {
	return r >= ResponseEasy && r <= ResponseReset
}

// String returns the lower-case name of the response.
func (r ReviewResponse) String() string {
	if r.IsValid() {
		return responseNames[r]
	}
	return fmt.Sprintf("ReviewResponse(%d)", int(r))
}

// ParseReviewResponse converts a name such as "easy" or "Good" into a ReviewResponse.
func ParseReviewResponse(s string) (ReviewResponse, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range responseNames {
		if n == name {
			return ReviewResponse(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidResponse, s)
}

// MarshalText implements encoding.TextMarshaler.
func (r ReviewResponse) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidResponse, int(r))
	}
	return []byte(responseNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *ReviewResponse) UnmarshalText(text []byte) error {
	v, err := ParseReviewResponse(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
