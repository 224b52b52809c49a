// Package histogram provides the day-offset counting histogram used both to
// load-balance due dates and as the basis of review forecasts.
package histogram
