// Package logger sets up the JSON slog logger shared by the server and the
// CLI, optionally teeing it into a size-rotated file, and carries
// request-scoped loggers through contexts.
package logger
