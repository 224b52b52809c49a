package store

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
)

// ScheduleStore loads and saves item schedules. Item IDs are card IDs
// (question ID plus card index) or note paths.
type ScheduleStore interface {
	// LoadSchedule returns the schedule of an item, or nil with no error when
	// the item has never been reviewed.
	LoadSchedule(ctx context.Context, itemID string) (*domain.ScheduleRecord, error)

	// SaveSchedule stores the schedule of an item, replacing any previous one.
	SaveSchedule(ctx context.Context, itemID string, rec domain.ScheduleRecord) error

	// LoadAll returns every stored schedule keyed by item ID.
	LoadAll(ctx context.Context) (map[string]domain.ScheduleRecord, error)
}

// BatchScheduleStore is implemented by stores that can save many schedules
// atomically.
type BatchScheduleStore interface {
	ScheduleStore
	SaveMany(ctx context.Context, schedules map[string]domain.ScheduleRecord) error
}

// ValidateSchedule wraps a record validation failure in ErrInvalidEntity.
func ValidateSchedule(itemID string, rec domain.ScheduleRecord) error {
	if itemID == "" {
		return fmt.Errorf("%w: item id is required", ErrInvalidEntity)
	}
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}
	return nil
}

// MemoryScheduleStore keeps schedules in a map. It is safe for concurrent use.
type MemoryScheduleStore struct {
	mu        sync.RWMutex
	schedules map[string]domain.ScheduleRecord
}

var _ BatchScheduleStore = (*MemoryScheduleStore)(nil)

// NewMemoryScheduleStore creates an empty store.
func NewMemoryScheduleStore() *MemoryScheduleStore {
	return &MemoryScheduleStore{schedules: make(map[string]domain.ScheduleRecord)}
}

// LoadSchedule implements ScheduleStore.
func (s *MemoryScheduleStore) LoadSchedule(_ context.Context, itemID string) (*domain.ScheduleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.schedules[itemID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// SaveSchedule implements ScheduleStore.
func (s *MemoryScheduleStore) SaveSchedule(_ context.Context, itemID string, rec domain.ScheduleRecord) error {
	if err := ValidateSchedule(itemID, rec); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules[itemID] = rec
	return nil
}

// SaveMany implements BatchScheduleStore. Nothing is saved if any record is invalid.
func (s *MemoryScheduleStore) SaveMany(_ context.Context, schedules map[string]domain.ScheduleRecord) error {
	for id, rec := range schedules {
		if err := ValidateSchedule(id, rec); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	maps.Copy(s.schedules, schedules)
	return nil
}

// LoadAll implements ScheduleStore.
func (s *MemoryScheduleStore) LoadAll(_ context.Context) (map[string]domain.ScheduleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.schedules), nil
}
