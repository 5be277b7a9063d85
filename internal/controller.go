package internal

import (
	"context"
	"strings"
)

// Reserved action names. Dispatching any of these is reported as "action not
// found" so callers cannot probe the controller surface.
const (
	reservedHandle    = "handle"
	reservedInit      = "init"
	reservedConfigure = "configure"

	// internalPrefix marks controller-internal actions that must never be
	// reachable from the wire.
	internalPrefix = "_"
)

// Controller answers requests for the handle it was registered under.
// Controllers are registered once at boot and shared across requests, so
// implementations must be safe for concurrent use.
type Controller interface {
	// Handle produces the response for a GET dispatch.
	// Returning a nil response is a misconfiguration, not a valid outcome.
	Handle(ctx context.Context, req *Snapshot) (*Response, error)
}

// ActionFunc is the signature of an action method. The ActionRequest is
// mutable: a function may add, merge or remove arguments.
type ActionFunc func(ctx context.Context, req *Snapshot, act *ActionRequest) (*Response, error)

// Action binds a wire-visible name to a function, with an ordered list of
// guards evaluated before the function runs.
type Action struct {
	Name   string
	Func   ActionFunc
	Guards []Guard
}

// ActionProvider is implemented by controllers that expose actions.
// Actions are collected once at registration; the declaration order of each
// action's Guards is the evaluation order.
type ActionProvider interface {
	Actions() []Action
}

// reservedActionName reports whether name may never be dispatched.
func reservedActionName(name string) bool {
	switch name {
	case "", reservedHandle, reservedInit, reservedConfigure:
		return true
	}
	return strings.HasPrefix(name, internalPrefix)
}

// ControllerFunc adapts a function to the Controller interface.
type ControllerFunc func(ctx context.Context, req *Snapshot) (*Response, error)

// Handle calls f.
func (f ControllerFunc) Handle(ctx context.Context, req *Snapshot) (*Response, error) {
	return f(ctx, req)
}
