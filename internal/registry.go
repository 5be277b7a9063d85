package internal

import (
	"fmt"
	"strconv"
)

// ViewKind is the registration namespace a handle lives in.
type ViewKind string

// Registration namespaces.
const (
	KindView  ViewKind = "view"
	KindAdmin ViewKind = "admin"
)

// ArchiveHandle returns the synthetic handle for a content type's archive
// view.
func ArchiveHandle(contentType string) string {
	return "archive_" + contentType
}

// ContentHandle returns the handle for an identifier-based registration.
func ContentHandle(id int) string {
	return strconv.Itoa(id)
}

// registration is the boot-time record binding a handle to a controller and
// its validated action map.
type registration struct {
	controller Controller
	actions    map[string]*Action
	kind       ViewKind
	handle     string
}

// identity is the controller identity used in reply-cache keys.
func (r *registration) identity() string {
	return string(r.kind) + ":" + r.handle
}

// registryKey is the composite lookup key.
type registryKey struct {
	kind   ViewKind
	handle string
}

// Registry maps (view kind, handle) pairs to controllers, plus one default
// and one not-found controller. It is populated during boot and immutable
// afterwards; a registration collision is a boot-time error, never a runtime
// one.
type Registry struct {
	entries  map[registryKey]*registration
	fallback *registration
	notFound *registration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[registryKey]*registration)}
}

// Register binds a controller to a (view kind, handle) pair.
// Fails if the pair is already taken or the controller's actions are invalid.
func (r *Registry) Register(kind ViewKind, handle string, c Controller) error {
	key := registryKey{kind: kind, handle: handle}
	if _, exists := r.entries[key]; exists {
		return fmt.Errorf("%w: %s %q", ErrDuplicateRegistration, kind, handle)
	}

	reg, err := newRegistration(kind, handle, c)
	if err != nil {
		return err
	}

	r.entries[key] = reg
	return nil
}

// RegisterDefault sets the process-wide default controller.
// Fails if a default is already registered.
func (r *Registry) RegisterDefault(c Controller) error {
	if r.fallback != nil {
		return fmt.Errorf("%w: default controller", ErrDuplicateRegistration)
	}

	reg, err := newRegistration(KindView, "default", c)
	if err != nil {
		return err
	}

	r.fallback = reg
	return nil
}

// RegisterNotFound sets the process-wide not-found controller.
// Fails if a not-found controller is already registered.
func (r *Registry) RegisterNotFound(c Controller) error {
	if r.notFound != nil {
		return fmt.Errorf("%w: not-found controller", ErrDuplicateRegistration)
	}

	reg, err := newRegistration(KindView, "not_found", c)
	if err != nil {
		return err
	}

	r.notFound = reg
	return nil
}

// lookup returns the exact (kind, handle) match, without default fallback.
func (r *Registry) lookup(kind ViewKind, handle string) (*registration, bool) {
	reg, ok := r.entries[registryKey{kind: kind, handle: handle}]
	return reg, ok
}

// defaultRegistration returns the default controller record.
func (r *Registry) defaultRegistration() (*registration, bool) {
	return r.fallback, r.fallback != nil
}

// notFoundRegistration returns the not-found controller record.
func (r *Registry) notFoundRegistration() (*registration, bool) {
	return r.notFound, r.notFound != nil
}

// Resolve returns the exact match for (kind, handle), else the default
// controller, else nothing. Exposed for hosts that need to inspect the
// registry outside a dispatch.
func (r *Registry) Resolve(kind ViewKind, handle string) (Controller, bool) {
	if reg, ok := r.lookup(kind, handle); ok {
		return reg.controller, true
	}
	if r.fallback != nil {
		return r.fallback.controller, true
	}
	return nil, false
}

// newRegistration validates and collects the controller's actions.
// Action maps replace call-by-name reflection: visibility and shape are
// checked here, once, instead of at every dispatch.
func newRegistration(kind ViewKind, handle string, c Controller) (*registration, error) {
	reg := &registration{
		kind:       kind,
		handle:     handle,
		controller: c,
		actions:    make(map[string]*Action),
	}

	provider, ok := c.(ActionProvider)
	if !ok {
		return reg, nil
	}

	for _, a := range provider.Actions() {
		if reservedActionName(a.Name) {
			return nil, fmt.Errorf("%w: %q on %s %q", ErrInvalidAction, a.Name, kind, handle)
		}
		if a.Func == nil {
			return nil, fmt.Errorf("%w: %q on %s %q has no function", ErrInvalidAction, a.Name, kind, handle)
		}
		if _, dup := reg.actions[a.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate action %q on %s %q", ErrInvalidAction, a.Name, kind, handle)
		}

		action := a
		reg.actions[a.Name] = &action
	}

	return reg, nil
}
