// Package logging assembles structured slog loggers and formatting helpers used
// across coverfinder.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so resolver code can tag log
// lines with correlation IDs and the title under resolution. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
