package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/frontman/pkg/logger"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("tags entries with the component name", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New("router", logger.WithWriter(&buf))

		log.Info("resolved")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "router", entry["component"])
		require.Equal(t, "resolved", entry["msg"])
	})

	t.Run("respects the configured level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New("router", logger.WithWriter(&buf))

		log.Debug("hidden")
		require.Zero(t, buf.Len())

		log = logger.New("router", logger.WithWriter(&buf), logger.WithLevel(slog.LevelDebug))
		log.Debug("visible")
		require.NotZero(t, buf.Len())
	})

	t.Run("applies context extractors per call", func(t *testing.T) {
		t.Parallel()

		type requestIDKey struct{}

		var buf bytes.Buffer
		log := logger.New("dispatcher",
			logger.WithWriter(&buf),
			logger.WithExtractors(func(ctx context.Context) (slog.Attr, bool) {
				if v, ok := ctx.Value(requestIDKey{}).(string); ok {
					return slog.String("request_id", v), true
				}
				return slog.Attr{}, false
			}),
		)

		ctx := context.WithValue(context.Background(), requestIDKey{}, "req-42")
		log.InfoContext(ctx, "dispatched")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "req-42", entry["request_id"])
	})

	t.Run("nil extractors are ignored", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New("x", logger.WithWriter(&buf), logger.WithExtractors(nil))

		require.NotPanics(t, func() {
			log.Info("ok")
		})
	})
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	log := logger.Discard()
	require.NotPanics(t, func() {
		log.Info("dropped")
		log.Error("dropped too")
	})
}
