package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel determines which log levels are forwarded to Sentry
	// (e.g., slog.LevelWarn for warnings and errors).
	MinLevel slog.Level
}

// NewWithSentry creates a component logger that writes to stdout and forwards
// warnings and errors to Sentry. If DSN is empty or Sentry initialization
// fails, it degrades to a stdout-only logger.
func NewWithSentry(component string, cfg SentryConfig, opts ...Option) *slog.Logger {
	o := &options{
		writer: os.Stdout,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(o)
	}

	stdoutHandler := slog.NewJSONHandler(o.writer, &slog.HandlerOptions{Level: o.level})

	build := func(h slog.Handler) *slog.Logger {
		log := slog.New(newExtractorHandler(h, o.extractors...))
		if component != "" {
			log = log.With(slog.String("component", component))
		}
		return log
	}

	if cfg.DSN == "" {
		return build(stdoutHandler)
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdoutHandler).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return build(stdoutHandler)
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel == slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError}, // Errors create Issues in Sentry
		LogLevel:   logLevel,                      // Logs stored for context/search
	}.NewSentryHandler(context.Background())

	return build(newFanoutHandler(stdoutHandler, sentryHandler))
}
