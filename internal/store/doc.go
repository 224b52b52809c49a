// Package store defines where schedules are persisted: the ScheduleStore
// interface, an in-memory implementation, the errors every implementation
// returns and a transaction helper for the SQL stores.
package store
