package logger

import (
	"io"
	"log/slog"
	"os"
)

// Option configures the logger factory.
type Option func(*options)

type options struct {
	writer     io.Writer
	level      slog.Level
	extractors []ContextExtractor
}

// WithLevel sets the minimum log level. Default: info.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithWriter sets the log destination. Default: stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// WithExtractors adds context extractors applied to every log record.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

// New creates a JSON-formatted logger tagged with a component name.
// The component attribute is added to every entry for easy filtering.
func New(component string, opts ...Option) *slog.Logger {
	o := &options{
		writer: os.Stdout,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(o)
	}

	h := slog.NewJSONHandler(o.writer, &slog.HandlerOptions{Level: o.level})
	log := slog.New(newExtractorHandler(h, o.extractors...))

	if component != "" {
		log = log.With(slog.String("component", component))
	}
	return log
}

// Discard creates a no-op logger. Use it as a default when logging is not
// configured.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
