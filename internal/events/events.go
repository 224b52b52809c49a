package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
)

// Event types
const (
	TypeCardReviewed = "card_reviewed"
	TypeNoteReviewed = "note_reviewed"
)

// ReviewEvent records one review that produced a new schedule.
type ReviewEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is TypeCardReviewed or TypeNoteReviewed
	Type string `json:"type"`

	ItemID   string                `json:"item_id"`
	NotePath string                `json:"note_path"`
	Response domain.ReviewResponse `json:"response"`
	Schedule domain.ScheduleRecord `json:"schedule"`

	// ReviewedAt is the time the answer was given
	ReviewedAt time.Time `json:"reviewed_at"`
}

// NewReviewEvent creates a ReviewEvent for item.
func NewReviewEvent(
	item domain.Item,
	notePath string,
	response domain.ReviewResponse,
	schedule domain.ScheduleRecord,
	reviewedAt time.Time,
) *ReviewEvent {
	eventType := TypeCardReviewed
	if item.Kind() == domain.ItemKindNote {
		eventType = TypeNoteReviewed
	}
	return &ReviewEvent{
		ID:         uuid.New(),
		Type:       eventType,
		ItemID:     item.ID(),
		NotePath:   notePath,
		Response:   response,
		Schedule:   schedule,
		ReviewedAt: reviewedAt,
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *ReviewEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *ReviewEvent) error
}
