package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/platform/postgres"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/store"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "schedules",
		ColumnName:     "ease",
		ConstraintName: "schedules_ease_check",
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	genericErr := errors.New("generic error")
	unmapped := newPgError("42P01")

	tests := []struct {
		name         string
		err          error
		wantIs       error
		wantContains string
	}{
		{name: "no rows", err: sql.ErrNoRows, wantIs: store.ErrScheduleNotFound},
		{name: "unique violation", err: newPgError("23505"), wantIs: store.ErrDuplicate},
		{
			name:         "check violation",
			err:          newPgError("23514"),
			wantIs:       store.ErrInvalidEntity,
			wantContains: "schedules_ease_check",
		},
		{
			name:         "not null violation",
			err:          newPgError("23502"),
			wantIs:       store.ErrInvalidEntity,
			wantContains: "column ease",
		},
		{
			name:   "wrapped check violation",
			err:    fmt.Errorf("exec: %w", newPgError("23514")),
			wantIs: store.ErrInvalidEntity,
		},
		{name: "unmapped postgres error", err: unmapped, wantIs: unmapped},
		{name: "generic error passes through", err: genericErr, wantIs: genericErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := postgres.MapError(tt.err)
			assert.ErrorIs(t, got, tt.wantIs)
			if tt.wantContains != "" {
				assert.Contains(t, got.Error(), tt.wantContains)
			}
		})
	}

	assert.NoError(t, postgres.MapError(nil))
	assert.True(t, store.IsNotFoundError(postgres.MapError(sql.ErrNoRows)))
}
