package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shomvob/travels-api/internal/api/middleware"
	"github.com/shomvob/travels-api/internal/core/domain"
)

// principal extracts the authenticated identity injected by the Auth
// middleware. A present role with a missing user id means a structurally
// valid but unusable token; reject before any service call.
func principal(c echo.Context) (domain.Principal, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	role, _ := c.Get(middleware.CtxRole).(string)
	if id == "" || role == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return domain.Principal{ID: id, Role: role}, nil
}

// maybePrincipal returns the principal when a session is present, or the zero
// value for anonymous requests on public routes.
func maybePrincipal(c echo.Context) domain.Principal {
	id, _ := c.Get(middleware.CtxUserID).(string)
	role, _ := c.Get(middleware.CtxRole).(string)
	return domain.Principal{ID: id, Role: role}
}
