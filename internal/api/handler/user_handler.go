package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shomvob/travels-api/internal/core/ports"
)

// UserHandler handles profile and admin account management.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateProfileRequest struct {
	Username string `json:"username,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user guide admin"`
}

// Me returns the caller's own profile.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorMessage
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	user, err := h.service.Profile(c.Request().Context(), p.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List returns all users. Admin only.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     SessionAuth
// @Success      200  {array}  domain.User
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns one user; self or admin.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     SessionAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      403  {object}  errorMessage
// @Failure      404  {object}  errorMessage
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update merges profile fields; self or admin.
//
// @Summary      Update a user profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        id    path      string                true  "User id"
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  messageResponse
// @Failure      403   {object}  errorMessage
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req map[string]any
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.UpdateProfile(c.Request().Context(), p, c.Param("id"), req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "profile updated"})
}

// ChangeRole sets a user's role. Admin only; takes effect on next login.
//
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      changeRoleRequest  true  "New role"
// @Success      200   {object}  messageResponse
// @Router       /users/{id}/role [patch]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.ChangeRole(c.Request().Context(), c.Param("id"), req.Role); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "role updated"})
}

// Delete removes a user account. Admin only.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     SessionAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
