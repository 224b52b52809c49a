package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/platform/logger"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/store"
)

const upsertScheduleQuery = `
	INSERT INTO schedules (item_id, due_date, interval_days, ease, delay_ms, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (item_id) DO UPDATE SET
		due_date = excluded.due_date,
		interval_days = excluded.interval_days,
		ease = excluded.ease,
		delay_ms = excluded.delay_ms,
		updated_at = excluded.updated_at
`

// ScheduleStore implements store.BatchScheduleStore on SQLite.
// Due dates are stored as YYYY-MM-DD text.
type ScheduleStore struct {
	db       *sql.DB
	logger   *slog.Logger
	location *time.Location
	now      func() time.Time
}

var _ store.BatchScheduleStore = (*ScheduleStore)(nil)

// NewScheduleStore creates a schedule store on an open, migrated database.
// If logger is nil, the default logger is used.
func NewScheduleStore(db *sql.DB, logger *slog.Logger) *ScheduleStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScheduleStore{
		db:       db,
		logger:   logger.With(slog.String("component", "schedule_store")),
		location: time.Local,
		now:      time.Now,
	}
}

// LoadSchedule implements store.ScheduleStore.
func (s *ScheduleStore) LoadSchedule(ctx context.Context, itemID string) (*domain.ScheduleRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx,
		`SELECT due_date, interval_days, ease, delay_ms FROM schedules WHERE item_id = ?`, itemID)

	var (
		dueDate  string
		interval float64
		ease     float64
		delayMs  int64
	)
	if err := row.Scan(&dueDate, &interval, &ease, &delayMs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("schedule not found", slog.String("item_id", itemID))
			return nil, nil
		}
		log.Error("failed to load schedule",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID))
		return nil, store.NewStoreError("schedule", "load", "query failed", mapError(err))
	}

	rec, err := s.record(dueDate, interval, ease, delayMs)
	if err != nil {
		return nil, store.NewStoreError("schedule", "load", "corrupt row", err)
	}
	return &rec, nil
}

// SaveSchedule implements store.ScheduleStore.
func (s *ScheduleStore) SaveSchedule(ctx context.Context, itemID string, rec domain.ScheduleRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := store.ValidateSchedule(itemID, rec); err != nil {
		log.Warn("schedule validation failed during save",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID))
		return err
	}
	if err := s.upsert(ctx, s.db, itemID, rec); err != nil {
		log.Error("failed to save schedule",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID))
		return store.NewStoreError("schedule", "save", "upsert failed", mapError(err))
	}

	log.Debug("schedule saved",
		slog.String("item_id", itemID),
		slog.String("due_date", rec.FormatDueDate()))
	return nil
}

// SaveMany implements store.BatchScheduleStore.
func (s *ScheduleStore) SaveMany(ctx context.Context, schedules map[string]domain.ScheduleRecord) error {
	for id, rec := range schedules {
		if err := store.ValidateSchedule(id, rec); err != nil {
			return err
		}
	}

	ctx = logger.WithLogger(ctx, logger.FromContextOrDefault(ctx, s.logger))
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		for id, rec := range schedules {
			if err := s.upsert(ctx, tx, id, rec); err != nil {
				return mapError(err)
			}
		}
		return nil
	})
	if err != nil {
		return store.NewStoreError("schedule", "save_many", "transaction failed", err)
	}
	return nil
}

// LoadAll implements store.ScheduleStore.
func (s *ScheduleStore) LoadAll(ctx context.Context) (map[string]domain.ScheduleRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT item_id, due_date, interval_days, ease, delay_ms FROM schedules ORDER BY item_id`)
	if err != nil {
		log.Error("failed to load schedules", slog.String("error", err.Error()))
		return nil, store.NewStoreError("schedule", "load_all", "query failed", mapError(err))
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]domain.ScheduleRecord)
	for rows.Next() {
		var (
			itemID   string
			dueDate  string
			interval float64
			ease     float64
			delayMs  int64
		)
		if err := rows.Scan(&itemID, &dueDate, &interval, &ease, &delayMs); err != nil {
			return nil, store.NewStoreError("schedule", "load_all", "scan failed", err)
		}
		rec, err := s.record(dueDate, interval, ease, delayMs)
		if err != nil {
			log.Warn("skipping corrupt schedule row",
				slog.String("item_id", itemID),
				slog.String("error", err.Error()))
			continue
		}
		out[itemID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("schedule", "load_all", "row iteration failed", err)
	}

	log.Debug("schedules loaded", slog.Int("count", len(out)))
	return out, nil
}

func (s *ScheduleStore) upsert(ctx context.Context, db store.DBTX, itemID string, rec domain.ScheduleRecord) error {
	_, err := db.ExecContext(ctx, upsertScheduleQuery,
		itemID,
		rec.FormatDueDate(),
		rec.Interval,
		rec.Ease,
		rec.DelayBeforeReview.Milliseconds(),
		s.now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *ScheduleStore) record(dueDate string, interval, ease float64, delayMs int64) (domain.ScheduleRecord, error) {
	due, err := domain.ParseDate(dueDate, s.location)
	if err != nil {
		return domain.ScheduleRecord{}, err
	}
	return domain.ScheduleRecord{
		DueDate:           due,
		Interval:          interval,
		Ease:              ease,
		DelayBeforeReview: time.Duration(delayMs) * time.Millisecond,
	}, nil
}

// mapError maps SQLite constraint failures to store errors. The modernc
// driver reports them as text such as "constraint failed: CHECK ...".
func mapError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case strings.Contains(msg, "CHECK constraint failed"),
		strings.Contains(msg, "NOT NULL constraint failed"):
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	return err
}
