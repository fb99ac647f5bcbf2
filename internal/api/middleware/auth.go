package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/quickblog/blog-api/internal/api/metrics"
	"github.com/quickblog/blog-api/internal/auth"
	"github.com/quickblog/blog-api/internal/core/domain"
	"github.com/quickblog/blog-api/internal/core/ports"
)

// Auth is the bearer guard for protected routes. Per request it extracts
// the Authorization header, decodes the token, rejects refresh tokens used
// as access tokens, and resolves the current user with a fresh store read.
// The resolved user is exposed to handlers via c.Get("user") for the
// duration of the request only.
func Auth(codec *auth.Codec, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_header").Inc()
				return domain.ErrMissingAuthHeader
			}

			// Exactly two space-separated parts, case-insensitive scheme.
			parts := strings.Split(header, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_header").Inc()
				return domain.ErrInvalidAuthHeader
			}

			claims, err := codec.Decode(parts[1])
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues(decodeFailureReason(err)).Inc()
				return err
			}

			if claims.Refresh {
				metrics.AuthFailuresTotal.WithLabelValues("wrong_type").Inc()
				return fmt.Errorf("%w: access token required", domain.ErrInvalidToken)
			}

			// Fresh read, not the token snapshot: a deleted user is locked
			// out here even while holding a valid access token.
			user, err := users.FindByID(c.Request().Context(), claims.User.ID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.AuthFailuresTotal.WithLabelValues("user_not_found").Inc()
					return fmt.Errorf("user with id %d: %w", claims.User.ID, domain.ErrUserNotFound)
				}
				return err
			}

			c.Set("user", user)
			return next(c)
		}
	}
}

func decodeFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenSignature):
		return "signature"
	case errors.Is(err, domain.ErrTokenMalformed):
		return "malformed"
	default:
		return "invalid"
	}
}
