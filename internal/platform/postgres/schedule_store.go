package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/platform/logger"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/store"
)

const upsertScheduleQuery = `
	INSERT INTO schedules (item_id, due_date, interval_days, ease, delay_ms, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (item_id) DO UPDATE SET
		due_date = EXCLUDED.due_date,
		interval_days = EXCLUDED.interval_days,
		ease = EXCLUDED.ease,
		delay_ms = EXCLUDED.delay_ms,
		updated_at = EXCLUDED.updated_at
`

// PostgresScheduleStore implements store.BatchScheduleStore
// using a PostgreSQL database as the storage backend.
type PostgresScheduleStore struct {
	db       *sql.DB
	logger   *slog.Logger
	location *time.Location
	now      func() time.Time
}

var _ store.BatchScheduleStore = (*PostgresScheduleStore)(nil)

// NewPostgresScheduleStore creates a schedule store on an open database.
// Due dates are returned as midnight in time.Local.
// If logger is nil, the default logger is used.
func NewPostgresScheduleStore(db *sql.DB, logger *slog.Logger) *PostgresScheduleStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresScheduleStore{
		db:       db,
		logger:   logger.With(slog.String("component", "schedule_store")),
		location: time.Local,
		now:      time.Now,
	}
}

// LoadSchedule implements store.ScheduleStore.
func (s *PostgresScheduleStore) LoadSchedule(ctx context.Context, itemID string) (*domain.ScheduleRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT due_date, interval_days, ease, delay_ms
		FROM schedules
		WHERE item_id = $1
	`
	rec, err := s.scanRecord(s.db.QueryRowContext(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("schedule not found", slog.String("item_id", itemID))
			return nil, nil
		}
		log.Error("failed to load schedule",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID))
		return nil, store.NewStoreError("schedule", "load", "query failed", MapError(err))
	}
	return &rec, nil
}

// SaveSchedule implements store.ScheduleStore.
func (s *PostgresScheduleStore) SaveSchedule(ctx context.Context, itemID string, rec domain.ScheduleRecord) error {
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
		return store.NewStoreError("schedule", "save", "upsert failed", MapError(err))
	}

	log.Debug("schedule saved",
		slog.String("item_id", itemID),
		slog.String("due_date", rec.FormatDueDate()),
		slog.Float64("interval", rec.Interval),
		slog.Float64("ease", rec.Ease))
	return nil
}

// SaveMany implements store.BatchScheduleStore. All records are written in
// one transaction.
func (s *PostgresScheduleStore) SaveMany(ctx context.Context, schedules map[string]domain.ScheduleRecord) error {
	for id, rec := range schedules {
		if err := store.ValidateSchedule(id, rec); err != nil {
			return err
		}
	}

	ctx = logger.WithLogger(ctx, logger.FromContextOrDefault(ctx, s.logger))
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		for id, rec := range schedules {
			if err := s.upsert(ctx, tx, id, rec); err != nil {
				return MapError(err)
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
func (s *PostgresScheduleStore) LoadAll(ctx context.Context) (map[string]domain.ScheduleRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT item_id, due_date, interval_days, ease, delay_ms
		FROM schedules
		ORDER BY item_id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to load schedules", slog.String("error", err.Error()))
		return nil, store.NewStoreError("schedule", "load_all", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]domain.ScheduleRecord)
	for rows.Next() {
		var (
			itemID   string
			dueDate  time.Time
			interval float64
			ease     float64
			delayMs  int64
		)
		if err := rows.Scan(&itemID, &dueDate, &interval, &ease, &delayMs); err != nil {
			return nil, store.NewStoreError("schedule", "load_all", "scan failed", err)
		}
		out[itemID] = s.record(dueDate, interval, ease, delayMs)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("schedule", "load_all", "row iteration failed", err)
	}

	log.Debug("schedules loaded", slog.Int("count", len(out)))
	return out, nil
}

func (s *PostgresScheduleStore) upsert(ctx context.Context, db store.DBTX, itemID string, rec domain.ScheduleRecord) error {
	_, err := db.ExecContext(ctx, upsertScheduleQuery,
		itemID,
		rec.FormatDueDate(),
		rec.Interval,
		rec.Ease,
		rec.DelayBeforeReview.Milliseconds(),
		s.now().UTC(),
	)
	return err
}

func (s *PostgresScheduleStore) scanRecord(row *sql.Row) (domain.ScheduleRecord, error) {
	var (
		dueDate  time.Time
		interval float64
		ease     float64
		delayMs  int64
	)
	if err := row.Scan(&dueDate, &interval, &ease, &delayMs); err != nil {
		return domain.ScheduleRecord{}, err
	}
	return s.record(dueDate, interval, ease, delayMs), nil
}

func (s *PostgresScheduleStore) record(dueDate time.Time, interval, ease float64, delayMs int64) domain.ScheduleRecord {
	return domain.ScheduleRecord{
		DueDate:           domain.DateIn(dueDate, s.location),
		Interval:          interval,
		Ease:              ease,
		DelayBeforeReview: time.Duration(delayMs) * time.Millisecond,
	}
}
