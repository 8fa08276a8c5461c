package service

import "errors"

// Business errors returned by the services. Handlers translate these into
// HTTP status codes with errors.Is; everything unrecognized becomes a 500.
var (
	ErrPflegerNotFound   = errors.New("pfleger not found")
	ErrProtokollNotFound = errors.New("protokoll not found")
	ErrEintragNotFound   = errors.New("eintrag not found")
	// ErrErstellerNotFound is returned when an owner reference on a
	// Protokoll or Eintrag does not resolve to an existing Pfleger.
	ErrErstellerNotFound = errors.New("ersteller not found")

	ErrDuplicateName         = errors.New("duplicate, name pfleger already exists")
	ErrDuplicatePatientDatum = errors.New("unique constraint of patient datum combination violated")
	ErrProtokollClosed       = errors.New("protokoll is already closed")

	// ErrAuthenticationFailed is deliberately neutral: unknown name and
	// wrong password are indistinguishable to the caller.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrInvalidToken covers malformed, tampered and expired tokens alike.
	ErrInvalidToken = errors.New("invalid or expired token")

	ErrInternalServer = errors.New("internal server error")
)
