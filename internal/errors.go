package internal

import "errors"

// Error taxonomy for the dispatch layer.
//
// Guard failures, unknown actions, reserved names and vetoes are all
// normalized to ErrActionNotFound so a caller cannot distinguish "no such
// action" from "action exists but you may not run it".
var (
	// ErrBadRequest marks an action body that could not be parsed into a
	// named action. Surfaced as 400 "Bad Request".
	ErrBadRequest = errors.New("frontman: bad request")

	// ErrActionNotFound is the uniform outward signal for every rejected
	// action dispatch. Surfaced as 404 "Action not found".
	ErrActionNotFound = errors.New("frontman: action not found")

	// ErrMisconfigured marks a deployment defect: a controller Handle that
	// returned no response, or an identifier remap filter that produced a
	// negative id. It is never converted to a client response; it propagates
	// to the caller of Dispatch.
	ErrMisconfigured = errors.New("frontman: misconfigured")

	// ErrAlreadySent is returned when a response is sent twice.
	ErrAlreadySent = errors.New("frontman: response already sent")

	// ErrDuplicateRegistration is returned when a (view kind, handle) pair,
	// the default controller or the not-found controller is registered twice.
	ErrDuplicateRegistration = errors.New("frontman: duplicate controller registration")

	// ErrInvalidAction is returned at registration time for an action with an
	// empty, reserved or internal name, or without a function.
	ErrInvalidAction = errors.New("frontman: invalid action registration")
)
