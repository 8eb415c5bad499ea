// Package logging assembles structured slog loggers and formatting helpers
// used across spdxgen commands.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code can
// automatically tag log lines with document IDs, operations, and correlation
// IDs. The package also provides a no-op logger for tests and wiring code
// that cannot fail.
//
// New components should use these constructors rather than building slog
// handlers directly so every log line shares the same shape and routing.
package logging
