package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dinebook/reservation-system/internal/core/domain"
	"github.com/dinebook/reservation-system/internal/core/ports"
)

// AuthHandler handles registration, login, and admin account management.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// ListUsers handles GET /api/auth/users (admin).
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  errorResponse
// @Router       /api/auth/users [get]
func (h *AuthHandler) ListUsers(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	users, err := h.authService.ListUsers(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// DeleteUser handles DELETE /api/auth/users/:id (admin).
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      204  "deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/auth/users/{id} [delete]
func (h *AuthHandler) DeleteUser(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.authService.DeleteUser(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetUserRole handles PUT /api/auth/users/:id/role?role=OWNER (admin).
//
// @Summary      Change a user's role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "User id"
// @Param        role  query     string  true  "New role"  Enums(CUSTOMER, OWNER, ADMIN)
// @Success      204   "updated"
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/auth/users/{id}/role [put]
func (h *AuthHandler) SetUserRole(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	role := domain.Role(c.QueryParam("role"))
	if !role.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "role must be one of: CUSTOMER OWNER ADMIN")
	}

	if err := h.authService.SetUserRole(c.Request().Context(), actor, c.Param("id"), role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetUserPassword handles PUT /api/auth/users/:id/password?password=... (admin).
//
// @Summary      Change a user's password
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true  "User id"
// @Param        password  query     string  true  "New password"
// @Success      204       "updated"
// @Failure      403       {object}  errorResponse
// @Router       /api/auth/users/{id}/password [put]
func (h *AuthHandler) SetUserPassword(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	password := c.QueryParam("password")
	if password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}

	if err := h.authService.SetUserPassword(c.Request().Context(), actor, c.Param("id"), password); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateUser handles PUT /api/auth/users/:id (admin).
//
// @Summary      Update a user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Profile fields"
// @Success      204   "updated"
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/auth/users/{id} [put]
func (h *AuthHandler) UpdateUser(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := ports.UserUpdate{Username: req.Username, Email: req.Email}
	if err := h.authService.UpdateUserProfile(c.Request().Context(), actor, c.Param("id"), update); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
