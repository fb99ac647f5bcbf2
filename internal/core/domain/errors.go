package domain

import "errors"

// Sentinel errors for every failure the service layer can surface. The HTTP
// boundary maps each one to a stable status code; nothing below the boundary
// ever writes a response itself.
var (
	// ErrInvalidCredentials covers both "no such user" and "wrong password".
	// The two cases must stay indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnknownHash means the stored password hash could not be parsed.
	// Surfaced to the end user identically to ErrInvalidCredentials, but
	// logged distinctly.
	ErrUnknownHash = errors.New("unrecognized password hash")

	ErrMissingAuthHeader = errors.New("missing authorization header")
	ErrInvalidAuthHeader = errors.New("invalid authorization header format")

	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("invalid token signature")
	ErrTokenMalformed = errors.New("malformed token")
	// ErrInvalidToken marks a structurally valid token used in the wrong
	// place, e.g. a refresh token presented as an access token.
	ErrInvalidToken = errors.New("invalid token")

	ErrUserNotFound = errors.New("user not found")
	ErrPostNotFound = errors.New("post not found")
	ErrEmailTaken   = errors.New("email already registered")

	ErrDatabaseUnavailable = errors.New("database unavailable")
	ErrDatabaseTimeout     = errors.New("database timeout")
)
