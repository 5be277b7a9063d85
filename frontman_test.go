package frontman_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/frontman"
	"github.com/dmitrymomot/frontman/pkg/cachestore"
)

// storefront is a minimal host: it fakes URL resolution by reading the
// content type from the path and exposes one guarded action.
type storefront struct{}

func (s *storefront) Handle(_ context.Context, req *frontman.Snapshot) (*frontman.Response, error) {
	return frontman.HTML(http.StatusOK, "<h1>"+req.ContentType()+"</h1>"), nil
}

func (s *storefront) Actions() []frontman.Action {
	return []frontman.Action{
		{
			Name: "getStats",
			Func: func(_ context.Context, _ *frontman.Snapshot, act *frontman.ActionRequest) (*frontman.Response, error) {
				return frontman.JSON(http.StatusOK, map[string]any{"user": act.StringArg("user_id")}), nil
			},
			Guards: []frontman.Guard{
				frontman.CacheReply(10*time.Minute, "user_id"),
			},
		},
		{
			Name: "save",
			Func: func(context.Context, *frontman.Snapshot, *frontman.ActionRequest) (*frontman.Response, error) {
				return frontman.Text(http.StatusOK, "saved"), nil
			},
			Guards: []frontman.Guard{
				frontman.RequireCapability("edit_products"),
			},
		},
	}
}

func resolveFromPath(r *http.Request) frontman.RouteInfo {
	return frontman.RouteInfo{
		ContentID:   frontman.NoContentID,
		ContentType: strings.Trim(r.URL.Path, "/"),
		Queryable:   true,
	}
}

func newTestApp(t *testing.T, opts ...frontman.Option) *frontman.App {
	t.Helper()
	store := cachestore.NewMemory()
	t.Cleanup(func() { _ = store.Close() })

	opts = append(opts,
		frontman.WithViewController("product", &storefront{}),
		frontman.WithDefaultController(frontman.ControllerFunc(
			func(context.Context, *frontman.Snapshot) (*frontman.Response, error) {
				return frontman.Text(http.StatusOK, "default"), nil
			},
		)),
		frontman.WithHostResolver(resolveFromPath),
		frontman.WithCacheStore(store),
		frontman.WithHealth(
			frontman.WithReadinessCheck("cache", cachestore.Healthcheck(store)),
		),
	)

	app, err := frontman.New(opts...)
	require.NoError(t, err)
	return app
}

func TestServeHTTP(t *testing.T) {
	t.Parallel()

	t.Run("registered type dispatches to its controller", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/product", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "<h1>product</h1>", w.Body.String())
	})

	t.Run("unregistered type falls back to the default controller", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/event", nil))
		require.Equal(t, "default", w.Body.String())
	})

	t.Run("guarded action rejects without leaking the guard", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		req := httptest.NewRequest(http.MethodPost, "/product", strings.NewReader("action=save"))
		req.Header.Set(frontman.HeaderActionRequest, "1")
		w := httptest.NewRecorder()
		app.ServeHTTP(w, req)
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, "Action not found", w.Body.String())
	})

	t.Run("cached action replays the first reply", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		post := func() *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/product", strings.NewReader("action=getStats&user_id=7"))
			req.Header.Set(frontman.HeaderActionRequest, "1")
			w := httptest.NewRecorder()
			app.ServeHTTP(w, req)
			return w
		}

		first := post()
		second := post()
		require.Equal(t, http.StatusOK, first.Code)
		require.Equal(t, first.Body.String(), second.Body.String())
	})

	t.Run("health endpoints respond", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		require.Equal(t, http.StatusOK, w.Code)
	})
}
