package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dinebook/reservation-system/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: id and role must both
// be present (presence proves the middleware ran and the token carried a
// usable subject).
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if id == "" || role == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	username, _ := c.Get("username").(string)
	return domain.Identity{ID: id, Role: domain.Role(role), Username: username}, nil
}
