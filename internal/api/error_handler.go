package api

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/quickblog/blog-api/internal/api/handler"
	"github.com/quickblog/blog-api/internal/core/domain"
)

// invalidCredentialsReason is the single wording used for both "no such
// user" and "wrong password" so responses cannot reveal whether an email
// is registered.
const invalidCredentialsReason = "Invalid credentials provided!"

// databaseVocabulary matches error text that would leak storage details
// (driver names, constraint and index vocabulary) to a client.
var databaseVocabulary = regexp.MustCompile(`(?i)(sql|constraint|duplicate key|index|bson|mongo|collection|e11000)`)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the domain error taxonomy to stable HTTP status codes.
//   - Renders the envelope {timestamp, status_code, status, message, reason}.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, message, reason := resolveError(err, log, c)
		_ = c.JSON(code, handler.ErrorEnvelope(code, message, reason))
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (code int, message, reason string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, "Request failed", fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Login failed", invalidCredentialsReason

	case errors.Is(err, domain.ErrUnknownHash):
		// Same wording as invalid credentials for the end user; the real
		// cause goes to the log only.
		log.Error().
			Str("path", c.Path()).
			Msg("login rejected: stored hash unrecognized")
		return http.StatusUnauthorized, "Login failed", invalidCredentialsReason

	case errors.Is(err, domain.ErrMissingAuthHeader):
		return http.StatusUnauthorized, "Authentication required", "Missing Authorization header"

	case errors.Is(err, domain.ErrInvalidAuthHeader):
		return http.StatusUnauthorized, "Authentication required", "Invalid Authorization header format. Expected: Bearer <token>"

	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "Authentication failed", "Token has expired. Please log in again."

	case errors.Is(err, domain.ErrTokenSignature):
		return http.StatusUnauthorized, "Authentication failed", "Invalid token signature."

	case errors.Is(err, domain.ErrTokenMalformed):
		return http.StatusUnauthorized, "Authentication failed", "Malformed authentication token."

	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "Authentication failed", err.Error()

	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, "Request failed", err.Error()

	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "User already exists", "A user with this email already exists."

	case errors.Is(err, domain.ErrDatabaseTimeout):
		return http.StatusInternalServerError, "Request failed", "Database operation timed out. Please try again later."

	case errors.Is(err, domain.ErrDatabaseUnavailable):
		return http.StatusInternalServerError, "Request failed", "Failed to connect to the database. Please try again later."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error", maskReason(err.Error())
}

// maskReason replaces any error text containing storage vocabulary with a
// generic message before it reaches a client.
func maskReason(reason string) string {
	if databaseVocabulary.MatchString(reason) {
		return "An unexpected error occurred. Please try again later."
	}
	return reason
}
