package internal

import (
	"fmt"
	"strconv"
)

// resolveResult is a memoized resolver outcome. A nil registration with a nil
// error means "no controller", which is a legitimate terminal outcome.
type resolveResult struct {
	reg *registration
	err error
}

// resolveController resolves the snapshot to a controller registration.
// Results are memoized per request under a composite key, so repeated calls
// during one dispatch are free and always agree.
func (d *dispatch) resolveController() (*registration, error) {
	key := d.resolveKey()
	if res, ok := d.resolved[key]; ok {
		return res.reg, res.err
	}

	reg, err := d.resolve()
	d.resolved[key] = resolveResult{reg: reg, err: err}
	return reg, err
}

// resolveKey composes the memo key. Admin resolution lives in its own
// namespace keyed purely by the admin page parameter.
func (d *dispatch) resolveKey() string {
	if d.snap.IsAdmin() {
		return "admin:" + d.snap.AdminPage()
	}
	return "view:" + strconv.Itoa(d.snap.ContentID()) +
		":" + d.typeKey() +
		":" + strconv.FormatBool(d.snap.IsArchive())
}

// typeKey derives the type-based lookup handle: the taxonomy name when the
// request targets a taxonomy term, else the content type.
func (d *dispatch) typeKey() string {
	if t := d.snap.Taxonomy(); t != "" {
		return t
	}
	return d.snap.ContentType()
}

func (d *dispatch) resolve() (*registration, error) {
	reg := d.app.registry

	// Identifier-based registration always wins, admin context included.
	if id := d.snap.ContentID(); id != NoContentID {
		id = d.app.filters.remapContentID(id, d.snap)
		if id < 0 {
			return nil, fmt.Errorf("%w: content id filter produced %d", ErrMisconfigured, id)
		}
		if r, ok := reg.lookup(KindView, ContentHandle(id)); ok {
			return r, nil
		}
	}

	// Admin views are a separate leaf: keyed by the page parameter alone,
	// no default fallback. A miss is "no admin page matches", not an error.
	if d.snap.IsAdmin() {
		page := d.snap.AdminPage()
		if page == "" {
			return nil, nil
		}
		if r, ok := reg.lookup(KindAdmin, page); ok {
			return r, nil
		}
		return nil, nil
	}

	typeKey := d.typeKey()

	if d.snap.IsArchive() {
		if r, ok := d.resolveArchive(typeKey); ok {
			return r, nil
		}
	}

	// No type key, or the generic page type, goes straight to the default.
	if typeKey == "" || typeKey == "page" {
		r, _ := reg.defaultRegistration()
		return r, nil
	}

	if r, ok := reg.lookup(KindView, typeKey); ok {
		return r, nil
	}
	r, _ := reg.defaultRegistration()
	return r, nil
}

// resolveArchive attempts the archive-specific paths: a host "special page"
// identifier first, then the synthetic archive handle for the type.
func (d *dispatch) resolveArchive(typeKey string) (*registration, bool) {
	reg := d.app.registry

	if d.app.pageLookup != nil {
		pageID := d.app.pageLookup(typeKey)
		pageID = d.app.filters.filterArchivePageID(pageID, typeKey)
		if pageID >= 0 {
			if r, ok := reg.lookup(KindView, ContentHandle(pageID)); ok {
				return r, true
			}
		}
	}

	if r, ok := reg.lookup(KindView, ArchiveHandle(typeKey)); ok {
		return r, true
	}
	return nil, false
}
