package internal

import (
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// HeaderActionRequest marks an inbound POST as an action sub-request,
// independent of content negotiation.
const HeaderActionRequest = "X-Action-Request"

// NoContentID is the sentinel for a request that carries no content
// identifier.
const NoContentID = -1

// defaultMaxBodyBytes caps how much of an action body is read into the
// snapshot. 1MB matches typical form payloads; file uploads go through the
// host, not through action dispatch.
const defaultMaxBodyBytes = 1 << 20

// ArchiveKind identifies the archive flavor a request targets.
type ArchiveKind string

// Archive kinds that can be disabled via routes.disable.* configuration.
const (
	ArchiveNone     ArchiveKind = ""
	ArchiveAuthor   ArchiveKind = "author"
	ArchiveTag      ArchiveKind = "tag"
	ArchiveCategory ArchiveKind = "category"
	ArchiveDate     ArchiveKind = "date"
	ArchiveFeed     ArchiveKind = "feed"
	ArchiveSearch   ArchiveKind = "search"
)

// switchName returns the routes.disable.* key controlling the kind.
func (k ArchiveKind) switchName() string {
	switch k {
	case ArchiveFeed, ArchiveSearch:
		return string(k)
	default:
		return string(k) + "_archive"
	}
}

// Principal is the acting identity supplied by the host platform.
// The capability guard consults Can; the nonce guard binds tokens to ID.
type Principal interface {
	// ID identifies the principal. Anonymous principals return "".
	ID() string

	// Can reports whether the principal holds the named capability.
	Can(capability string) bool
}

// HostContext carries the platform execution-context flags that feed the
// router's pass-through decision.
type HostContext struct {
	CLI    bool
	Cron   bool
	REST   bool
	XMLRPC bool
	Ajax   bool
}

// RouteInfo is what the host platform resolved the incoming URL to.
// The host owns URL parsing; the dispatch layer only consumes the result.
type RouteInfo struct {
	// ContentID is the resolved content identifier, or NoContentID.
	ContentID int

	// ContentType names the content type of the resolved content (e.g.
	// "post", "page", "product").
	ContentType string

	// Taxonomy names the taxonomy when the request targets a term.
	Taxonomy string

	// AdminPage is the admin "page" query parameter value, when present.
	AdminPage string

	// ArchiveKind is the archive flavor, ArchiveNone for singular views.
	ArchiveKind ArchiveKind

	// Context holds the platform execution-context flags.
	Context HostContext

	// Principal is the acting identity; nil means anonymous.
	Principal Principal

	// IsArchive marks archive (listing) views.
	IsArchive bool

	// IsAttachment marks binary/media attachment requests.
	IsAttachment bool

	// IsAdmin marks requests in the admin area.
	IsAdmin bool

	// NotFound is the host-reported 404 state.
	NotFound bool

	// Queryable reports whether the host could build a content query for
	// this request at all.
	Queryable bool
}

// Snapshot is the read-only view of the current request. It is built once
// per request and never mutated; all per-request platform state is threaded
// through it instead of being read from ambient globals.
type Snapshot struct {
	id       string
	method   string
	route    RouteInfo
	query    url.Values
	header   http.Header
	rawBody  []byte
	isAction bool
}

// NewSnapshot builds the per-request snapshot from the raw request and the
// host's route resolution. The body is read eagerly (bounded by maxBody, or
// defaultMaxBodyBytes when maxBody is zero) so the snapshot stays usable
// after the request body is closed.
func NewSnapshot(r *http.Request, route RouteInfo, maxBody int64) *Snapshot {
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	var body []byte
	if r.Body != nil && r.Method == http.MethodPost {
		body, _ = io.ReadAll(io.LimitReader(r.Body, maxBody))
	}

	return &Snapshot{
		id:       uuid.NewString(),
		method:   r.Method,
		route:    route,
		query:    r.URL.Query(),
		header:   r.Header.Clone(),
		rawBody:  body,
		isAction: r.Method == http.MethodPost && r.Header.Get(HeaderActionRequest) != "",
	}
}

// ID returns the per-request identifier stamped on the snapshot.
func (s *Snapshot) ID() string { return s.id }

// Method returns the HTTP method.
func (s *Snapshot) Method() string { return s.method }

// ContentID returns the resolved content identifier, or NoContentID.
func (s *Snapshot) ContentID() int { return s.route.ContentID }

// ContentType returns the resolved content type name.
func (s *Snapshot) ContentType() string { return s.route.ContentType }

// Taxonomy returns the taxonomy name when the request targets a term.
func (s *Snapshot) Taxonomy() string { return s.route.Taxonomy }

// IsArchive reports whether the request is an archive view.
func (s *Snapshot) IsArchive() bool { return s.route.IsArchive }

// ArchiveKind returns the archive flavor.
func (s *Snapshot) ArchiveKind() ArchiveKind { return s.route.ArchiveKind }

// IsAction reports whether the request is a POST action sub-request.
func (s *Snapshot) IsAction() bool { return s.isAction }

// IsAdmin reports whether the request targets the admin area.
func (s *Snapshot) IsAdmin() bool { return s.route.IsAdmin }

// IsAttachment reports whether the request targets a binary attachment.
func (s *Snapshot) IsAttachment() bool { return s.route.IsAttachment }

// NotFound reports the host's 404 state.
func (s *Snapshot) NotFound() bool { return s.route.NotFound }

// Queryable reports whether the host could build a content query at all.
func (s *Snapshot) Queryable() bool { return s.route.Queryable }

// AdminPage returns the admin "page" query parameter value.
func (s *Snapshot) AdminPage() string { return s.route.AdminPage }

// HostContext returns the platform execution-context flags.
func (s *Snapshot) HostContext() HostContext { return s.route.Context }

// Principal returns the acting identity, or nil for anonymous requests.
func (s *Snapshot) Principal() Principal { return s.route.Principal }

// Query returns the query parameter value by name.
func (s *Snapshot) Query(name string) string { return s.query.Get(name) }

// Header returns the request header value by name.
func (s *Snapshot) Header(name string) string { return s.header.Get(name) }

// Body returns the raw request body.
func (s *Snapshot) Body() []byte { return s.rawBody }

// principalID returns the principal's id, "" for anonymous requests.
func (s *Snapshot) principalID() string {
	if s.route.Principal == nil {
		return ""
	}
	return s.route.Principal.ID()
}
