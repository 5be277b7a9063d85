package internal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/frontman/pkg/cachestore"
	"github.com/dmitrymomot/frontman/pkg/config"
	"github.com/dmitrymomot/frontman/pkg/health"
	"github.com/dmitrymomot/frontman/pkg/logger"
	"github.com/dmitrymomot/frontman/pkg/nonce"
)

// HostResolver translates an incoming request into the host platform's route
// resolution. The dispatch layer never parses URLs itself.
type HostResolver func(r *http.Request) RouteInfo

// App is the front-controller dispatch layer. It is assembled once via New
// and immutable afterwards; every collaborator is an explicit field, never an
// ambient global.
type App struct {
	registry      *Registry
	config        *config.Config
	store         cachestore.Store
	nonces        *nonce.Manager
	logger        *slog.Logger
	router        chi.Router
	passthrough   http.Handler
	hostResolver  HostResolver
	notFoundCheck func(*Snapshot) bool
	pageLookup    ArchivePageLookup
	healthConfig  *healthConfig
	filters       filters
	sfGroup       singleflight.Group
	maxBodyBytes  int64
	devMode       bool
	bootErrs      []error
}

// New assembles the dispatch layer. Registration collisions and invalid
// action declarations surface here, at boot, never at request time.
func New(opts ...Option) (*App, error) {
	a := &App{
		registry:    NewRegistry(),
		logger:      logger.Discard(),
		router:      chi.NewRouter(),
		passthrough: http.NotFoundHandler(),
		hostResolver: func(*http.Request) RouteInfo {
			return RouteInfo{ContentID: NoContentID}
		},
	}

	for _, opt := range opts {
		opt(a)
	}

	if err := errors.Join(a.bootErrs...); err != nil {
		return nil, err
	}

	a.setupRoutes()
	return a, nil
}

// Registry exposes the controller registry for hosts that need to inspect it
// outside a dispatch.
func (a *App) Registry() *Registry {
	return a.registry
}

// Dispatch runs the router state machine for an already-resolved request.
// Hosts that own their HTTP stack call this directly instead of ServeHTTP.
func (a *App) Dispatch(w http.ResponseWriter, r *http.Request, route RouteInfo) error {
	snap := NewSnapshot(r, route, a.maxBodyBytes)
	return newDispatch(a, w, r, snap).run(r.Context())
}

// ServeHTTP resolves the route through the host resolver and dispatches.
// Dispatch-level errors are logged and answered with a bare 500.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// setupRoutes mounts the health endpoints and the catch-all dispatch handler.
func (a *App) setupRoutes() {
	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath, health.ReadinessHandler(a.healthConfig.checks, health.WithLogger(a.logger)))
	}

	a.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		route := a.hostResolver(r)
		if err := a.Dispatch(w, r, route); err != nil {
			a.handleDispatchError(r.Context(), w, err)
		}
	})
}

// handleDispatchError answers framework-level failures. These are
// misconfigurations or handler errors on the GET path, not action errors,
// which carry their own response contract.
func (a *App) handleDispatchError(ctx context.Context, w http.ResponseWriter, err error) {
	a.logger.ErrorContext(ctx, "dispatch failed", slog.String("error", err.Error()))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// healthConfig holds the probe endpoint wiring.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default probe paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures the probe endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath overrides the liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath overrides the readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness probe.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
