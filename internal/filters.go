package internal

// Extension points consumed by the core. All are pure value-transform
// callbacks: each filter receives the value produced so far and returns the
// (possibly unchanged) value. Filters run in registration order.

// ContentIDFilter remaps a content identifier before resolution, e.g. to a
// localized or variant piece of content. Returning a negative id is a fatal
// configuration error.
type ContentIDFilter func(id int, req *Snapshot) int

// ArchivePageIDFilter overrides the special-page identifier used to resolve
// archive views.
type ArchivePageIDFilter func(id int, contentType string) int

// ActionVeto is the final gate before an action runs, after all guards have
// passed. Returning false vetoes execution; the caller sees the uniform
// "action not found" signal.
type ActionVeto func(allowed bool, c Controller, action string, act *ActionRequest) bool

// ArchivePageLookup is the host's "special page" lookup: given a content
// type, return the page identifier that fronts its archive, or NoContentID.
type ArchivePageLookup func(contentType string) int

// filters holds the registered extension points.
type filters struct {
	contentID     []ContentIDFilter
	archivePageID []ArchivePageIDFilter
	canRun        []ActionVeto
}

func (f *filters) remapContentID(id int, req *Snapshot) int {
	for _, fn := range f.contentID {
		id = fn(id, req)
	}
	return id
}

func (f *filters) filterArchivePageID(id int, contentType string) int {
	for _, fn := range f.archivePageID {
		id = fn(id, contentType)
	}
	return id
}

func (f *filters) allowAction(c Controller, action string, act *ActionRequest) bool {
	allowed := true
	for _, fn := range f.canRun {
		allowed = fn(allowed, c, action, act)
	}
	return allowed
}
