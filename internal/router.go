package internal

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

// dispatch is the per-request state machine. It lives for exactly one request
// and guarantees that at most one response is sent through it.
type dispatch struct {
	app      *App
	snap     *Snapshot
	w        http.ResponseWriter
	r        *http.Request
	resolved map[string]resolveResult
	sent     bool
}

func newDispatch(app *App, w http.ResponseWriter, r *http.Request, snap *Snapshot) *dispatch {
	return &dispatch{
		app:      app,
		snap:     snap,
		w:        w,
		r:        r,
		resolved: make(map[string]resolveResult),
	}
}

// run walks the router states: pass-through first, then forced 404, then
// resolution, then the GET or action dispatch path. Every terminal state
// either delegates to the host or sends exactly one response.
func (d *dispatch) run(ctx context.Context) error {
	if d.shouldPass() {
		d.pass()
		return nil
	}

	if d.should404() {
		return d.send404(ctx)
	}

	reg, err := d.resolveController()
	if err != nil {
		return err
	}
	if reg == nil {
		// No controller matches. Equivalent to pass-through: the router
		// performs no response of its own.
		d.pass()
		return nil
	}

	if d.snap.IsAction() {
		return d.dispatchAction(ctx, reg)
	}
	return d.dispatchGet(ctx, reg)
}

// shouldPass is the fast, side-effect-free predicate deciding the request is
// none of this layer's business. Once true, the router does no other work.
func (d *dispatch) shouldPass() bool {
	hc := d.snap.HostContext()
	switch {
	case hc.CLI, hc.Cron, hc.REST, hc.XMLRPC:
		return true
	case hc.Ajax && !d.snap.IsAction():
		return true
	case !d.snap.Queryable() && !d.snap.IsAction():
		return true
	}
	return false
}

// should404 decides the forced not-found path: the host's own 404 state,
// attachment requests unconditionally, and archive kinds disabled by policy.
func (d *dispatch) should404() bool {
	if d.snap.NotFound() {
		return true
	}
	if d.snap.IsAttachment() {
		return true
	}
	if d.snap.IsArchive() {
		if kind := d.snap.ArchiveKind(); kind != ArchiveNone {
			return d.app.archiveDisabled(kind)
		}
	}
	return false
}

// archiveDisabled consults the routes.disable.* switch for the kind. An
// archive kind is 404-eligible unless its switch is explicitly set to false.
func (a *App) archiveDisabled(kind ArchiveKind) bool {
	if a.config == nil {
		return true
	}
	return a.config.BoolOr("routes.disable."+kind.switchName(), true)
}

// dispatchGet invokes the controller's Handle and sends its response,
// re-checking the host's 404 state after the handler ran. A handler returning
// a non-404 response in a 404 context is not supported.
func (d *dispatch) dispatchGet(ctx context.Context, reg *registration) error {
	resp, err := reg.controller.Handle(ctx, d.snap)
	if err != nil {
		return fmt.Errorf("controller %s: %w", reg.identity(), err)
	}
	if resp == nil {
		return fmt.Errorf("%w: controller %s returned no response", ErrMisconfigured, reg.identity())
	}

	if d.app.notFoundCheck != nil && d.app.notFoundCheck(d.snap) {
		return d.send404(ctx)
	}
	return d.send(resp)
}

// send404 routes through the registered not-found controller, forcing the
// status code to 404 whatever the controller sets. Without one, a plain-text
// 404 is sent.
func (d *dispatch) send404(ctx context.Context) error {
	reg, ok := d.app.registry.notFoundRegistration()
	if !ok {
		return d.send(Text(http.StatusNotFound, "Not Found"))
	}

	resp, err := reg.controller.Handle(ctx, d.snap)
	if err != nil || resp == nil {
		if err != nil {
			d.app.logger.ErrorContext(ctx, "not-found controller failed",
				slog.String("request_id", d.snap.ID()),
				slog.String("error", err.Error()),
			)
		}
		return d.send(Text(http.StatusNotFound, "Not Found"))
	}

	resp.StatusCode = http.StatusNotFound
	return d.send(resp)
}

// pass hands the request to the host's pass-through handler untouched.
func (d *dispatch) pass() {
	d.app.passthrough.ServeHTTP(d.w, d.r)
}

// send writes the response, enforcing the one-response-per-request invariant
// at the dispatch level on top of the per-Response guard.
func (d *dispatch) send(resp *Response) error {
	if d.sent {
		return ErrAlreadySent
	}
	d.sent = true
	return resp.send(d.w)
}
