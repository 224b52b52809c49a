package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/store"
)

// SQLSTATE codes the schedules table can raise.
const (
	uniqueViolationCode  = "23505"
	checkViolationCode   = "23514" // schedules_interval_days_check, schedules_ease_check
	notNullViolationCode = "23502"
)

// MapError translates driver errors into store errors, keeping the original
// error in the message. Unknown errors pass through unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrScheduleNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolationCode:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case checkViolationCode:
		return fmt.Errorf("%w: constraint %s: %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case notNullViolationCode:
		return fmt.Errorf("%w: column %s is required: %v", store.ErrInvalidEntity, pgErr.ColumnName, err)
	default:
		return err
	}
}
