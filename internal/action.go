package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/frontman/pkg/sanitizer"
)

// actionBodyField is the body field naming the target action.
const actionBodyField = "action"

// ActionRequest is the parsed action sub-request: a target name and an
// argument mapping. Unlike the Snapshot it is mutable during dispatch —
// handlers and vetoes may add, merge or remove arguments.
type ActionRequest struct {
	name  string
	args  map[string]any
	named bool
}

// NewActionRequest creates an action request, mainly for tests and for
// hosts that dispatch synthetic actions.
func NewActionRequest(name string, args map[string]any) *ActionRequest {
	if args == nil {
		args = map[string]any{}
	}
	return &ActionRequest{name: name, named: true, args: args}
}

// Name returns the target action name. Meaningless when Named is false.
func (a *ActionRequest) Name() string { return a.name }

// Named reports whether the body carried an action field at all.
// An unnamed request is the "bad request" state.
func (a *ActionRequest) Named() bool { return a.named }

// Arg returns the argument value by name.
func (a *ActionRequest) Arg(name string) (any, bool) {
	v, ok := a.args[name]
	return v, ok
}

// StringArg returns the argument as a string, "" when absent or non-string.
func (a *ActionRequest) StringArg(name string) string {
	if s, ok := a.args[name].(string); ok {
		return s
	}
	return ""
}

// SetArg adds or replaces an argument.
func (a *ActionRequest) SetArg(name string, value any) {
	a.args[name] = value
}

// DeleteArg removes an argument.
func (a *ActionRequest) DeleteArg(name string) {
	delete(a.args, name)
}

// MergeArgs copies all entries of args into the argument mapping,
// overwriting existing keys.
func (a *ActionRequest) MergeArgs(args map[string]any) {
	for k, v := range args {
		a.args[k] = v
	}
}

// Args returns the live argument mapping.
func (a *ActionRequest) Args() map[string]any { return a.args }

// parseActionRequest extracts the action sub-request from the snapshot body.
//
//   - JSON bodies: {"action": "...", "args": {...}} — the args object is used
//     verbatim as the argument mapping.
//   - Form bodies: every field except "action" becomes an argument; string
//     values are stripped of markup.
//   - Any other shape yields an empty argument mapping.
//   - A body without an action field yields an unnamed request.
func parseActionRequest(req *Snapshot) *ActionRequest {
	body := req.Body()

	if strings.Contains(req.Header("Content-Type"), "application/json") {
		return parseJSONAction(body)
	}
	return parseFormAction(body)
}

func parseJSONAction(body []byte) *ActionRequest {
	var payload struct {
		Action *string        `json:"action"`
		Args   map[string]any `json:"args"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Action == nil {
		return &ActionRequest{args: map[string]any{}}
	}

	args := payload.Args
	if args == nil {
		args = map[string]any{}
	}
	return &ActionRequest{name: *payload.Action, named: true, args: args}
}

func parseFormAction(body []byte) *ActionRequest {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return &ActionRequest{args: map[string]any{}}
	}

	name, named := "", false
	args := map[string]any{}
	for field, vals := range values {
		if len(vals) == 0 {
			continue
		}
		if field == actionBodyField {
			name, named = vals[0], true
			continue
		}
		args[field] = vals[0]
	}

	return &ActionRequest{name: name, named: named, args: sanitizer.StripArgs(args)}
}

// dispatchAction runs the action sub-request against the resolved controller.
// It always terminates by sending exactly one response or returning an error
// for the caller of Dispatch to propagate.
func (d *dispatch) dispatchAction(ctx context.Context, reg *registration) error {
	act := parseActionRequest(d.snap)

	if !act.Named() {
		return d.send(Text(http.StatusBadRequest, "Bad Request"))
	}

	// Reserved and internal names are rejected exactly like unknown ones so
	// the reply never reveals the controller's method surface.
	if reservedActionName(act.Name()) {
		return d.sendActionNotFound(ctx, "reserved action name")
	}

	action, ok := reg.actions[act.Name()]
	if !ok {
		return d.sendActionNotFound(ctx, "unknown action")
	}

	cached, intent, err := d.app.evaluateGuards(ctx, reg, action, d.snap, act)
	if err != nil {
		return d.sendActionNotFound(ctx, err.Error())
	}
	if cached != nil {
		return d.send(cached)
	}

	if !d.app.filters.allowAction(reg.controller, action.Name, act) {
		return d.sendActionNotFound(ctx, "vetoed")
	}

	resp, err := d.invokeAction(ctx, action, act, intent)
	if err != nil {
		// Execution errors surface the raw message in a 500 body. This leaks
		// internal error text by design of the current contract; see the
		// error taxonomy notes before changing it.
		d.app.logger.ErrorContext(ctx, "action execution failed",
			slog.String("action", action.Name),
			slog.String("controller", reg.identity()),
			slog.String("error", err.Error()),
		)
		return d.send(Text(http.StatusInternalServerError, err.Error()))
	}

	return d.send(resp)
}

// invokeAction runs the action function. When a reply-cache write is pending,
// concurrent dispatches for the same key are collapsed into one invocation
// and all of them replay the serialized result.
func (d *dispatch) invokeAction(ctx context.Context, action *Action, act *ActionRequest, intent *cacheIntent) (*Response, error) {
	if intent == nil {
		resp, err := action.Func(ctx, d.snap, act)
		if err != nil {
			return nil, err
		}
		if resp == nil {
			return nil, errors.New("action returned no response")
		}
		return resp, nil
	}

	data, err, _ := d.app.sfGroup.Do(intent.key, func() (any, error) {
		resp, err := action.Func(ctx, d.snap, act)
		if err != nil {
			return nil, err
		}
		if resp == nil {
			return nil, errors.New("action returned no response")
		}

		serialized, err := marshalResponse(resp)
		if err != nil {
			return nil, err
		}

		if err := d.app.store.Set(ctx, intent.key, serialized, intent.ttl); err != nil {
			d.app.logger.WarnContext(ctx, "reply cache write failed",
				slog.String("key", intent.key),
				slog.String("error", err.Error()),
			)
		}
		return serialized, nil
	})
	if err != nil {
		return nil, err
	}

	resp, err := unmarshalResponse(data.([]byte))
	if err != nil {
		return nil, fmt.Errorf("replay cached action result: %w", err)
	}
	return resp, nil
}

// sendActionNotFound emits the uniform rejection signal. The reason is
// logged for operators and never included in the response.
func (d *dispatch) sendActionNotFound(ctx context.Context, reason string) error {
	d.app.logger.WarnContext(ctx, "action dispatch rejected",
		slog.String("request_id", d.snap.ID()),
		slog.String("reason", reason),
	)
	return d.send(Text(http.StatusNotFound, "Action not found"))
}
