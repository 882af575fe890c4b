// Package logging assembles structured slog loggers and formatting helpers
// used across ytmeta components.
//
// It owns console/JSON handler construction, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code automatically
// tags log lines with correlation IDs, source paths, and video IDs. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
package logging
