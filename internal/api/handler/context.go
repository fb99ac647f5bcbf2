package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quickblog/blog-api/internal/core/domain"
)

// ctxUser extracts the user resolved by the bearer guard. Presence proves
// the guard ran; a protected handler reached without it is a wiring bug and
// is rejected rather than trusted.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
