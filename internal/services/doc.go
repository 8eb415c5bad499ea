// Package services defines shared utilities consumed by the scan pipeline and
// external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp document IDs, operation names, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification consistent across components.
//   - Thin abstractions that make external command execution testable.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability) stays uniform across commands.
package services
