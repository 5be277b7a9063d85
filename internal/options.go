package internal

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/frontman/pkg/cachestore"
	"github.com/dmitrymomot/frontman/pkg/config"
	"github.com/dmitrymomot/frontman/pkg/nonce"
)

// Option configures the application. Registration failures are collected and
// reported together by New.
type Option func(*App)

// WithViewController binds a controller to a handle in the view namespace.
func WithViewController(handle string, c Controller) Option {
	return func(a *App) {
		if err := a.registry.Register(KindView, handle, c); err != nil {
			a.bootErrs = append(a.bootErrs, err)
		}
	}
}

// WithAdminController binds a controller to an admin page parameter value.
func WithAdminController(page string, c Controller) Option {
	return func(a *App) {
		if err := a.registry.Register(KindAdmin, page, c); err != nil {
			a.bootErrs = append(a.bootErrs, err)
		}
	}
}

// WithContentController binds a controller to a single content identifier.
// Identifier registrations win over type registrations during resolution.
func WithContentController(id int, c Controller) Option {
	return func(a *App) {
		if err := a.registry.Register(KindView, ContentHandle(id), c); err != nil {
			a.bootErrs = append(a.bootErrs, err)
		}
	}
}

// WithArchiveController binds a controller to a content type's archive view.
func WithArchiveController(contentType string, c Controller) Option {
	return func(a *App) {
		if err := a.registry.Register(KindView, ArchiveHandle(contentType), c); err != nil {
			a.bootErrs = append(a.bootErrs, err)
		}
	}
}

// WithDefaultController sets the fallback controller for unmatched view
// requests. Admin requests never fall back to it.
func WithDefaultController(c Controller) Option {
	return func(a *App) {
		if err := a.registry.RegisterDefault(c); err != nil {
			a.bootErrs = append(a.bootErrs, err)
		}
	}
}

// WithNotFoundController sets the controller rendering the forced-404 path.
// Its response status is always overridden to 404.
func WithNotFoundController(c Controller) Option {
	return func(a *App) {
		if err := a.registry.RegisterNotFound(c); err != nil {
			a.bootErrs = append(a.bootErrs, err)
		}
	}
}

// WithConfig supplies the routing configuration, including the
// routes.disable.* archive switches.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.config = cfg
	}
}

// WithCacheStore supplies the backing store for reply caching. Without one,
// CacheReply guards degrade to plain invocation.
func WithCacheStore(store cachestore.Store) Option {
	return func(a *App) {
		a.store = store
	}
}

// WithNonceManager supplies the token manager consulted by nonce guards.
func WithNonceManager(m *nonce.Manager) Option {
	return func(a *App) {
		a.nonces = m
	}
}

// WithNonceSecret builds a nonce manager from a shared secret. Convenience
// for hosts that do not need custom lifetimes.
func WithNonceSecret(secret string, opts ...nonce.Option) Option {
	return func(a *App) {
		m, err := nonce.New(secret, opts...)
		if err != nil {
			a.bootErrs = append(a.bootErrs, err)
			return
		}
		a.nonces = m
	}
}

// WithLogger sets the structured logger. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithDevMode disables reply caching so changes are visible immediately.
func WithDevMode() Option {
	return func(a *App) {
		a.devMode = true
	}
}

// WithPassthrough sets the handler receiving requests the router declines to
// touch. Defaults to a plain 404 handler.
func WithPassthrough(h http.Handler) Option {
	return func(a *App) {
		if h != nil {
			a.passthrough = h
		}
	}
}

// WithHostResolver sets the host's URL-to-route resolution used by ServeHTTP.
func WithHostResolver(fn HostResolver) Option {
	return func(a *App) {
		if fn != nil {
			a.hostResolver = fn
		}
	}
}

// WithContentIDFilter appends an identifier remap filter. Filters run in
// registration order before identifier-based resolution.
func WithContentIDFilter(fn ContentIDFilter) Option {
	return func(a *App) {
		a.filters.contentID = append(a.filters.contentID, fn)
	}
}

// WithArchivePageFilter appends a filter over the archive special-page
// identifier.
func WithArchivePageFilter(fn ArchivePageIDFilter) Option {
	return func(a *App) {
		a.filters.archivePageID = append(a.filters.archivePageID, fn)
	}
}

// WithActionVeto appends a veto callback running after all guards pass.
func WithActionVeto(fn ActionVeto) Option {
	return func(a *App) {
		a.filters.canRun = append(a.filters.canRun, fn)
	}
}

// WithArchivePageLookup sets the host's special-page lookup used during
// archive resolution.
func WithArchivePageLookup(fn ArchivePageLookup) Option {
	return func(a *App) {
		a.pageLookup = fn
	}
}

// WithNotFoundCheck sets the post-handle 404 re-check consulted on the GET
// path before the handler's response is sent.
func WithNotFoundCheck(fn func(*Snapshot) bool) Option {
	return func(a *App) {
		a.notFoundCheck = fn
	}
}

// WithMaxBodyBytes bounds how much of an action body is read into the
// snapshot.
func WithMaxBodyBytes(n int64) Option {
	return func(a *App) {
		if n > 0 {
			a.maxBodyBytes = n
		}
	}
}

// WithHealth enables the liveness and readiness endpoints.
func WithHealth(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}
