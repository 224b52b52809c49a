// Package postgres implements store.ScheduleStore on PostgreSQL through the
// pgx database/sql driver. The schema is managed by embedded goose migrations.
package postgres
