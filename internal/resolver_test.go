package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func namedController(name string) Controller {
	return ControllerFunc(func(context.Context, *Snapshot) (*Response, error) {
		return Text(http.StatusOK, name), nil
	})
}

func newResolveDispatch(t *testing.T, app *App, route RouteInfo) *dispatch {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	snap := NewSnapshot(req, route, 0)
	return newDispatch(app, httptest.NewRecorder(), req, snap)
}

func TestResolveControllerMemoization(t *testing.T) {
	t.Parallel()

	t.Run("repeated calls return the identical registration", func(t *testing.T) {
		t.Parallel()
		app, err := New(
			WithViewController("product", namedController("product")),
			WithDefaultController(namedController("default")),
		)
		require.NoError(t, err)

		d := newResolveDispatch(t, app, RouteInfo{
			ContentID:   NoContentID,
			ContentType: "product",
			Queryable:   true,
		})

		first, err := d.resolveController()
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := d.resolveController()
		require.NoError(t, err)
		require.Same(t, first, second)
		require.Len(t, d.resolved, 1)
	})

	t.Run("resolution work runs once per request", func(t *testing.T) {
		t.Parallel()
		var filterCalls atomic.Int64
		app, err := New(
			WithContentController(42, namedController("forty-two")),
			WithDefaultController(namedController("default")),
			WithContentIDFilter(func(id int, _ *Snapshot) int {
				filterCalls.Add(1)
				return id
			}),
		)
		require.NoError(t, err)

		d := newResolveDispatch(t, app, RouteInfo{
			ContentID:   42,
			ContentType: "page",
			Queryable:   true,
		})

		first, err := d.resolveController()
		require.NoError(t, err)
		second, err := d.resolveController()
		require.NoError(t, err)
		require.Same(t, first, second)
		require.Equal(t, int64(1), filterCalls.Load())
	})

	t.Run("admin resolution memoizes under its own namespace", func(t *testing.T) {
		t.Parallel()
		app, err := New(
			WithAdminController("stats", namedController("admin-stats")),
			WithDefaultController(namedController("default")),
		)
		require.NoError(t, err)

		d := newResolveDispatch(t, app, RouteInfo{
			ContentID: NoContentID,
			IsAdmin:   true,
			AdminPage: "stats",
			Queryable: true,
		})

		first, err := d.resolveController()
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := d.resolveController()
		require.NoError(t, err)
		require.Same(t, first, second)

		require.Contains(t, d.resolved, "admin:stats")
		require.Len(t, d.resolved, 1)
	})

	t.Run("failed resolution is memoized too", func(t *testing.T) {
		t.Parallel()
		var filterCalls atomic.Int64
		app, err := New(
			WithDefaultController(namedController("default")),
			WithContentIDFilter(func(int, *Snapshot) int {
				filterCalls.Add(1)
				return -1
			}),
		)
		require.NoError(t, err)

		d := newResolveDispatch(t, app, RouteInfo{
			ContentID:   7,
			ContentType: "product",
			Queryable:   true,
		})

		_, err = d.resolveController()
		require.ErrorIs(t, err, ErrMisconfigured)

		_, err = d.resolveController()
		require.ErrorIs(t, err, ErrMisconfigured)
		require.Equal(t, int64(1), filterCalls.Load())
	})
}
