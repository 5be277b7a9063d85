package frontman

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/frontman/internal"
	"github.com/dmitrymomot/frontman/pkg/cachestore"
	"github.com/dmitrymomot/frontman/pkg/config"
	"github.com/dmitrymomot/frontman/pkg/health"
	"github.com/dmitrymomot/frontman/pkg/logger"
	"github.com/dmitrymomot/frontman/pkg/nonce"
)

// Type aliases - public API
type (
	// App is the front-controller dispatch layer. Immutable after New.
	App = internal.App

	// Controller answers requests for the handle it was registered under.
	Controller = internal.Controller

	// ControllerFunc adapts a function to the Controller interface.
	ControllerFunc = internal.ControllerFunc

	// ActionProvider is implemented by controllers exposing POST actions.
	ActionProvider = internal.ActionProvider

	// Action binds a wire-visible action name to a function and its guards.
	Action = internal.Action

	// ActionFunc is the signature of an action method.
	ActionFunc = internal.ActionFunc

	// ActionRequest is the parsed action sub-request.
	ActionRequest = internal.ActionRequest

	// Guard is a declarative action precondition.
	Guard = internal.Guard

	// Snapshot is the immutable per-request view.
	Snapshot = internal.Snapshot

	// RouteInfo is the host platform's route resolution for a request.
	RouteInfo = internal.RouteInfo

	// HostContext carries the platform execution-context flags.
	HostContext = internal.HostContext

	// HostResolver translates an incoming request into a RouteInfo.
	HostResolver = internal.HostResolver

	// Principal is the acting identity supplied by the host.
	Principal = internal.Principal

	// Response is the value a controller or action produces.
	Response = internal.Response

	// Registry maps (view kind, handle) pairs to controllers.
	Registry = internal.Registry

	// ViewKind is the registration namespace a handle lives in.
	ViewKind = internal.ViewKind

	// ArchiveKind identifies the archive flavor a request targets.
	ArchiveKind = internal.ArchiveKind

	// ContentIDFilter remaps a content identifier before resolution.
	ContentIDFilter = internal.ContentIDFilter

	// ArchivePageIDFilter overrides the archive special-page identifier.
	ArchivePageIDFilter = internal.ArchivePageIDFilter

	// ArchivePageLookup is the host's special-page lookup.
	ArchivePageLookup = internal.ArchivePageLookup

	// ActionVeto is the final gate before an action runs.
	ActionVeto = internal.ActionVeto

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the serving runtime.
	RunOption = internal.RunOption

	// HealthOption configures the probe endpoints.
	HealthOption = internal.HealthOption

	// Config is the routing configuration consulted by the router.
	Config = config.Config

	// CacheStore is the backing store for reply caching.
	CacheStore = cachestore.Store

	// NonceManager issues and verifies one-time action tokens.
	NonceManager = nonce.Manager

	// ContextExtractor extracts a slog attribute from context.
	ContextExtractor = logger.ContextExtractor
)

// Registration namespaces.
const (
	KindView  = internal.KindView
	KindAdmin = internal.KindAdmin
)

// Archive kinds controlled by routes.disable.* configuration.
const (
	ArchiveAuthor   = internal.ArchiveAuthor
	ArchiveTag      = internal.ArchiveTag
	ArchiveCategory = internal.ArchiveCategory
	ArchiveDate     = internal.ArchiveDate
	ArchiveFeed     = internal.ArchiveFeed
	ArchiveSearch   = internal.ArchiveSearch
)

// Wire constants.
const (
	// HeaderActionRequest marks an inbound POST as an action sub-request.
	HeaderActionRequest = internal.HeaderActionRequest

	// NonceArgKey is the action argument carrying the one-time token.
	NonceArgKey = internal.NonceArgKey

	// NoContentID is the sentinel for requests without a content identifier.
	NoContentID = internal.NoContentID
)

// Sentinel errors.
var (
	ErrBadRequest            = internal.ErrBadRequest
	ErrActionNotFound        = internal.ErrActionNotFound
	ErrMisconfigured         = internal.ErrMisconfigured
	ErrAlreadySent           = internal.ErrAlreadySent
	ErrDuplicateRegistration = internal.ErrDuplicateRegistration
	ErrInvalidAction         = internal.ErrInvalidAction
)

// New assembles the dispatch layer. Registration collisions and invalid
// action declarations are reported here, at boot, never at request time.
//
// Example:
//
//	app, err := frontman.New(
//	    frontman.WithViewController("product", catalog),
//	    frontman.WithDefaultController(pages),
//	    frontman.WithCacheStore(store),
//	)
func New(opts ...Option) (*App, error) {
	return internal.New(opts...)
}

// Response constructors

// Text creates a plain-text response.
func Text(status int, body string) *Response {
	return internal.Text(status, body)
}

// HTML creates a text/html response.
func HTML(status int, body string) *Response {
	return internal.HTML(status, body)
}

// JSON creates a response whose body is JSON-encoded on send.
func JSON(status int, body any) *Response {
	return internal.JSON(status, body)
}

// Hijacked creates a marker response for handlers that wrote to the
// connection themselves.
func Hijacked() *Response {
	return internal.Hijacked()
}

// Guards

// RequireNonce guards an action with a one-time token scoped to the given
// action name.
func RequireNonce(action string) Guard {
	return internal.RequireNonce(action)
}

// RequireCapability guards an action behind the listed capabilities.
func RequireCapability(capabilities ...string) Guard {
	return internal.RequireCapability(capabilities...)
}

// CacheReply serves the action's reply from cache when possible.
func CacheReply(ttl time.Duration, varyBy ...string) Guard {
	return internal.CacheReply(ttl, varyBy...)
}

// CacheReplyKeyed is CacheReply with an explicit cache key.
func CacheReplyKeyed(key string, ttl time.Duration, varyBy ...string) Guard {
	return internal.CacheReplyKeyed(key, ttl, varyBy...)
}

// NewActionRequest creates an action request for synthetic dispatches and
// tests.
func NewActionRequest(name string, args map[string]any) *ActionRequest {
	return internal.NewActionRequest(name, args)
}

// Handles

// ArchiveHandle returns the synthetic handle for a content type's archive.
func ArchiveHandle(contentType string) string {
	return internal.ArchiveHandle(contentType)
}

// ContentHandle returns the handle for an identifier-based registration.
func ContentHandle(id int) string {
	return internal.ContentHandle(id)
}

// App options

// WithViewController binds a controller to a handle in the view namespace.
func WithViewController(handle string, c Controller) Option {
	return internal.WithViewController(handle, c)
}

// WithAdminController binds a controller to an admin page parameter value.
func WithAdminController(page string, c Controller) Option {
	return internal.WithAdminController(page, c)
}

// WithContentController binds a controller to a single content identifier.
func WithContentController(id int, c Controller) Option {
	return internal.WithContentController(id, c)
}

// WithArchiveController binds a controller to a content type's archive view.
func WithArchiveController(contentType string, c Controller) Option {
	return internal.WithArchiveController(contentType, c)
}

// WithDefaultController sets the fallback controller for unmatched views.
func WithDefaultController(c Controller) Option {
	return internal.WithDefaultController(c)
}

// WithNotFoundController sets the controller rendering the forced-404 path.
func WithNotFoundController(c Controller) Option {
	return internal.WithNotFoundController(c)
}

// WithConfig supplies the routing configuration.
func WithConfig(cfg *Config) Option {
	return internal.WithConfig(cfg)
}

// WithCacheStore supplies the backing store for reply caching.
func WithCacheStore(store CacheStore) Option {
	return internal.WithCacheStore(store)
}

// WithNonceManager supplies the token manager consulted by nonce guards.
func WithNonceManager(m *NonceManager) Option {
	return internal.WithNonceManager(m)
}

// WithNonceSecret builds a nonce manager from a shared secret.
func WithNonceSecret(secret string, opts ...nonce.Option) Option {
	return internal.WithNonceSecret(secret, opts...)
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithDevMode disables reply caching for development.
func WithDevMode() Option {
	return internal.WithDevMode()
}

// WithPassthrough sets the handler for requests the router declines.
func WithPassthrough(h http.Handler) Option {
	return internal.WithPassthrough(h)
}

// WithHostResolver sets the host's URL-to-route resolution.
func WithHostResolver(fn HostResolver) Option {
	return internal.WithHostResolver(fn)
}

// WithContentIDFilter appends an identifier remap filter.
func WithContentIDFilter(fn ContentIDFilter) Option {
	return internal.WithContentIDFilter(fn)
}

// WithArchivePageFilter appends a filter over the archive special-page id.
func WithArchivePageFilter(fn ArchivePageIDFilter) Option {
	return internal.WithArchivePageFilter(fn)
}

// WithActionVeto appends a veto callback running after all guards pass.
func WithActionVeto(fn ActionVeto) Option {
	return internal.WithActionVeto(fn)
}

// WithArchivePageLookup sets the host's special-page lookup.
func WithArchivePageLookup(fn ArchivePageLookup) Option {
	return internal.WithArchivePageLookup(fn)
}

// WithNotFoundCheck sets the post-handle 404 re-check on the GET path.
func WithNotFoundCheck(fn func(*Snapshot) bool) Option {
	return internal.WithNotFoundCheck(fn)
}

// WithMaxBodyBytes bounds how much of an action body is read.
func WithMaxBodyBytes(n int64) Option {
	return internal.WithMaxBodyBytes(n)
}

// WithHealth enables the liveness and readiness endpoints.
//
// Example:
//
//	frontman.WithHealth(
//	    frontman.WithReadinessCheck("cache", cachestore.Healthcheck(store)),
//	)
func WithHealth(opts ...HealthOption) Option {
	return internal.WithHealth(opts...)
}

// Health check options

// WithLivenessPath overrides the liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath overrides the readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness probe.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// WithShutdownTimeout bounds graceful shutdown. Defaults to 30s.
func WithShutdownTimeout(d time.Duration) RunOption {
	return internal.WithShutdownTimeout(d)
}

// WithShutdownHook registers a hook run during graceful shutdown.
func WithShutdownHook(hook func(context.Context) error) RunOption {
	return internal.WithShutdownHook(hook)
}

// WithBaseContext sets the context the server lifecycle is bound to.
func WithBaseContext(ctx context.Context) RunOption {
	return internal.WithBaseContext(ctx)
}
