package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/frontman/pkg/cachestore"
)

// NonceArgKey is the reserved action argument carrying the one-time token
// checked by the nonce guard.
const NonceArgKey = "_nonce"

// GuardKind discriminates the guard variants.
type GuardKind int

// Guard kinds.
const (
	GuardNonce GuardKind = iota + 1
	GuardCapability
	GuardCacheReply
)

// Guard is a declarative precondition attached to an action. Guards are
// evaluated strictly in declaration order with short-circuit on the first
// failure; the caller is never told which guard failed.
//
// CacheReply is not a pure precondition: on a cache hit it serves the cached
// response and skips the action entirely.
type Guard struct {
	// NonceAction names the token scope for GuardNonce.
	NonceAction string

	// Capabilities lists the capabilities required by GuardCapability.
	// All must be held by the acting principal.
	Capabilities []string

	// CacheKey overrides the default reply-cache key for GuardCacheReply.
	CacheKey string

	// VaryBy lists argument names folded into the reply-cache key, in order.
	VaryBy []string

	// TTL bounds the reply-cache entry lifetime.
	TTL time.Duration

	Kind GuardKind
}

// RequireNonce creates a guard validating a one-time token issued for the
// given action name. The token is read from the NonceArgKey argument.
func RequireNonce(action string) Guard {
	return Guard{Kind: GuardNonce, NonceAction: action}
}

// RequireCapability creates a guard requiring the acting principal to hold
// every listed capability.
func RequireCapability(capabilities ...string) Guard {
	return Guard{Kind: GuardCapability, Capabilities: capabilities}
}

// CacheReply creates a guard that serves the action's reply from the cache
// when possible, re-populating it with the given TTL on a miss. Each varyBy
// argument's value is folded into the cache key in declared order.
func CacheReply(ttl time.Duration, varyBy ...string) Guard {
	return Guard{Kind: GuardCacheReply, TTL: ttl, VaryBy: varyBy}
}

// CacheReplyKeyed is CacheReply with an explicit cache key instead of the
// default controller-identity:action-name key.
func CacheReplyKeyed(key string, ttl time.Duration, varyBy ...string) Guard {
	return Guard{Kind: GuardCacheReply, CacheKey: key, TTL: ttl, VaryBy: varyBy}
}

// replyCacheKey composes the cache key: explicit override or
// controller-identity:action-name, suffixed with ":value" per vary-by
// argument in declared order. An absent argument contributes an empty
// segment so it cannot collide with a present value like "<nil>".
func (g Guard) replyCacheKey(identity, actionName string, act *ActionRequest) string {
	key := g.CacheKey
	if key == "" {
		key = identity + ":" + actionName
	}
	for _, name := range g.VaryBy {
		if v, ok := act.Arg(name); ok {
			key += ":" + fmt.Sprint(v)
		} else {
			key += ":"
		}
	}
	return key
}

// cacheIntent records a pending reply-cache write for the action result.
type cacheIntent struct {
	key string
	ttl time.Duration
}

// errGuardFailed is the internal marker for any guard failure. The detail is
// logged, never surfaced: every guard failure leaves the dispatcher as the
// uniform "action not found" signal.
var errGuardFailed = errors.New("frontman: guard failed")

// evaluateGuards runs the action's guard pipeline in declaration order.
//
// Returns a cached response when a CacheReply guard hit (short-circuiting the
// dispatch), a cache intent when one missed (the invocation result must be
// written back), or an error wrapping errGuardFailed on the first failing
// guard. Later guards are not evaluated after a failure.
func (a *App) evaluateGuards(ctx context.Context, reg *registration, action *Action, req *Snapshot, act *ActionRequest) (*Response, *cacheIntent, error) {
	var intent *cacheIntent

	for _, g := range action.Guards {
		switch g.Kind {
		case GuardNonce:
			if err := a.checkNonce(g, req, act); err != nil {
				return nil, nil, err
			}

		case GuardCapability:
			if err := a.checkCapabilities(g, req); err != nil {
				return nil, nil, err
			}

		case GuardCacheReply:
			// Development mode disables reply caching entirely; without a
			// store the guard degrades to plain invocation.
			if a.devMode || a.store == nil {
				continue
			}

			key := g.replyCacheKey(reg.identity(), action.Name, act)
			if cached := a.lookupCachedReply(ctx, key); cached != nil {
				return cached, nil, nil
			}
			if intent == nil {
				intent = &cacheIntent{key: key, ttl: g.TTL}
			}

		default:
			return nil, nil, fmt.Errorf("%w: unknown guard kind %d", errGuardFailed, g.Kind)
		}
	}

	return nil, intent, nil
}

// checkNonce validates the one-time token found under NonceArgKey.
func (a *App) checkNonce(g Guard, req *Snapshot, act *ActionRequest) error {
	if a.nonces == nil {
		return fmt.Errorf("%w: nonce manager not configured", errGuardFailed)
	}

	token := act.StringArg(NonceArgKey)
	if !a.nonces.Verify(token, g.NonceAction, req.principalID()) {
		return fmt.Errorf("%w: invalid or missing token", errGuardFailed)
	}
	return nil
}

// checkCapabilities verifies the acting principal holds every configured
// capability. The first missing capability is named in the error for
// internal logging only.
func (a *App) checkCapabilities(g Guard, req *Snapshot) error {
	p := req.Principal()
	for _, capability := range g.Capabilities {
		if p == nil || !p.Can(capability) {
			return fmt.Errorf("%w: missing capability %q", errGuardFailed, capability)
		}
	}
	return nil
}

// lookupCachedReply fetches and deserializes a cached reply.
// A corrupt entry is treated as a miss; the follow-up write self-heals it.
func (a *App) lookupCachedReply(ctx context.Context, key string) *Response {
	if a.store == nil {
		return nil
	}

	data, err := a.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cachestore.ErrNotFound) {
			a.logger.WarnContext(ctx, "reply cache read failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return nil
	}

	resp, err := unmarshalResponse(data)
	if err != nil {
		a.logger.WarnContext(ctx, "corrupt reply cache entry",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return resp
}
