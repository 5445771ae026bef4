package domain

import "errors"

// Sentinel errors shared across services. Services wrap them with context via
// fmt.Errorf("...: %w", Err...), and the delivery layer maps them to HTTP
// statuses with errors.Is.
var (
	// ErrNotFound is returned when a referenced entity does not exist or
	// does not belong to the caller.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned for malformed or temporally-invalid input.
	ErrValidation = errors.New("invalid request")
	// ErrConflict is returned for state-machine or invariant violations:
	// duplicate request, participant limit reached, illegal state transition.
	ErrConflict = errors.New("conflict")
	// ErrForbidden is returned when an authenticated caller acts on behalf
	// of another user.
	ErrForbidden = errors.New("forbidden")
)
