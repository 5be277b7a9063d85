// Package logger provides slog factories used across the dispatch layer.
//
// New creates a JSON logger tagged with a component name; every entry carries
// a "component" attribute for filtering:
//
//	log := logger.New("router",
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithExtractors(requestIDExtractor),
//	)
//
// Context extractors pull request-scoped attributes (request id, principal)
// out of the context on every log call.
//
// NewWithSentry additionally forwards warnings and errors to Sentry when a
// DSN is configured, and degrades to stdout-only logging otherwise.
//
// Discard returns a no-op logger for use as a default.
package logger
