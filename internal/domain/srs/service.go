package srs

import (
	"errors"
	"fmt"
	"time"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/histogram"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/linkgraph"
)

// Common errors
var (
	ErrNilSchedule = errors.New("schedule cannot be nil")
	ErrInvalidDays = errors.New("postpone days must be at least 1")
)

// Service defines the interface for scheduling operations
type Service interface {
	// CalculateNextReview computes the schedule that follows a review.
	// A nil current schedule marks a new item, which starts from
	// initialEase. dueDates, when non-nil, is used to load-balance the due
	// date and records the chosen day offset.
	CalculateNextReview(
		current *domain.ScheduleRecord,
		response domain.ReviewResponse,
		initialEase float64,
		dueDates *histogram.ValueCountHistogram,
		now time.Time,
	) (*domain.ScheduleRecord, error)

	// InitialCardEase returns the starting ease of a new card in notePath.
	InitialCardEase(notePath string, eases *EaseList) float64

	// InitialNoteEase returns the starting ease of a new note from its links.
	InitialNoteEase(graph *linkgraph.Graph, notePath string, eases *EaseList) float64

	// PostponeSchedule pushes the due date forward by a number of days
	PostponeSchedule(record *domain.ScheduleRecord, days int, now time.Time) (*domain.ScheduleRecord, error)

	// Settings returns a copy of the settings in use.
	Settings() Settings
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	settings *Settings
}

// NewDefaultService creates a new scheduling service with default settings
func NewDefaultService() (Service, error) {
	return NewServiceWithSettings(NewDefaultSettings())
}

// NewServiceWithSettings creates a new scheduling service with custom settings
func NewServiceWithSettings(settings *Settings) (Service, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: settings cannot be nil", ErrInvalidSettings)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	copied := *settings
	return &defaultService{settings: &copied}, nil
}

// CalculateNextReview implements the Service interface
func (s *defaultService) CalculateNextReview(
	current *domain.ScheduleRecord,
	response domain.ReviewResponse,
	initialEase float64,
	dueDates *histogram.ValueCountHistogram,
	now time.Time,
) (*domain.ScheduleRecord, error) {
	if !response.IsValid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidResponse, int(response))
	}
	if current != nil {
		if err := current.Validate(); err != nil {
			return nil, err
		}
	}
	if initialEase <= 0 {
		initialEase = s.settings.BaseEase
	}

	next := calculateNextSchedule(current, response, initialEase, dueDates, now, s.settings)
	return &next, nil
}

// InitialCardEase implements the Service interface
func (s *defaultService) InitialCardEase(notePath string, eases *EaseList) float64 {
	return calculateInitialCardEase(notePath, eases, s.settings)
}

// InitialNoteEase implements the Service interface
func (s *defaultService) InitialNoteEase(graph *linkgraph.Graph, notePath string, eases *EaseList) float64 {
	return calculateInitialNoteEase(graph, notePath, eases, s.settings)
}

// PostponeSchedule implements the Service interface
func (s *defaultService) PostponeSchedule(
	record *domain.ScheduleRecord,
	days int,
	now time.Time,
) (*domain.ScheduleRecord, error) {
	if record == nil {
		return nil, ErrNilSchedule
	}
	if days < 1 {
		return nil, ErrInvalidDays
	}

	// Overdue items are postponed from today rather than from a past date.
	from := record.DueDate
	if today := domain.Today(now); from.Before(today) {
		from = today
	}

	postponed := *record
	postponed.DueDate = domain.AddDays(from, days)
	postponed.DelayBeforeReview = 0
	return &postponed, nil
}

// Settings implements the Service interface
func (s *defaultService) Settings() Settings {
	return *s.settings
}
