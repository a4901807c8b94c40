// Package apperr defines the sentinel errors shared across Pinboard
// packages. Handlers map them to HTTP status codes at the request boundary;
// everything not matching a sentinel surfaces as a 500.
package apperr

import "errors"

var (
	// ErrNotFound marks a missing entity (task, comment, session, ...).
	ErrNotFound = errors.New("not found")
	// ErrValidation marks a rejected request (missing or malformed field).
	ErrValidation = errors.New("validation failed")
	// ErrConflict marks a uniqueness violation (username, email, favorite).
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized marks missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden marks a valid identity lacking access.
	ErrForbidden = errors.New("forbidden")
)
