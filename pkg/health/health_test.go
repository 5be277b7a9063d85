package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/frontman/pkg/health"
)

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	t.Run("plain text", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		health.LivenessHandler()(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "OK", w.Body.String())
	})

	t.Run("json on request", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		health.LivenessHandler()(w, httptest.NewRequest(http.MethodGet, "/health/live?format=json", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var report health.Report
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		require.Equal(t, health.StatusUp, report.Status)
	})
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	t.Run("all probes up", func(t *testing.T) {
		t.Parallel()
		checks := health.Checks{
			"cache": func(context.Context) error { return nil },
			"db":    func(context.Context) error { return nil },
		}
		w := httptest.NewRecorder()
		health.ReadinessHandler(checks)(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("one probe down yields 503 with detail", func(t *testing.T) {
		t.Parallel()
		checks := health.Checks{
			"cache": func(context.Context) error { return nil },
			"db":    func(context.Context) error { return errors.New("connection refused") },
		}
		req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		req.Header.Set("Accept", "application/json")
		w := httptest.NewRecorder()
		health.ReadinessHandler(checks)(w, req)
		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		var report health.Report
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		require.Equal(t, health.StatusDown, report.Status)
		require.Equal(t, health.StatusDown, report.Probes["db"].Status)
		require.Equal(t, health.StatusUp, report.Probes["cache"].Status)
	})

	t.Run("no probes is trivially up", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		health.ReadinessHandler(nil)(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		require.Equal(t, http.StatusOK, w.Code)
	})
}
