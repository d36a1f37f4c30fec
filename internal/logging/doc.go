// Package logging assembles the structured slog loggers used across
// chatscribe.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attr helpers so components tag log lines with the
// same field names. A no-op logger is provided for tests and wiring code
// that cannot fail. Prefer these constructors over hand-rolled slog setup.
package logging
