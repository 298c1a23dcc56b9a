// Package logging assembles the structured slog loggers used by the lyricsync
// CLI, HTTP server and storage layer.
//
// It owns the console and JSON handlers, level parsing and output routing,
// and exposes helpers so components tag their lines with a component name
// and a per-run correlation ID. Warnings about degraded behavior (a corrupt
// offset cache, an unreachable Redis) go through WarnWithContext so every one
// carries a cause, an impact and a hint. A no-op logger is provided for tests
// and for library callers that do not care about diagnostics.
package logging
