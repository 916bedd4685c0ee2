package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")

	// ErrInvalidCredentials covers login with a wrong email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenInvalidOrExpired is the single outcome for every failed token
	// consumption: not found, expired, already used, or wrong purpose. The
	// specific cause is logged internally but never exposed, so a caller
	// probing tokens cannot tell the cases apart.
	ErrTokenInvalidOrExpired = errors.New("token invalid or expired")

	// ErrStoreUnavailable means the store round trip itself failed.
	// Retryable; never to be collapsed into ErrTokenInvalidOrExpired.
	ErrStoreUnavailable = errors.New("store unavailable")
)
