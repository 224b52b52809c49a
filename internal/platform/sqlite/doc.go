// Package sqlite implements store.ScheduleStore on an embedded SQLite
// database using the pure-Go modernc driver. Tests run against ":memory:".
package sqlite
