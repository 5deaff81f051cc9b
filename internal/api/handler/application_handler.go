package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shomvob/travels-api/internal/core/domain"
	"github.com/shomvob/travels-api/internal/core/ports"
)

// ApplicationHandler handles the guide-application flow.
type ApplicationHandler struct {
	service ports.UserService
}

func NewApplicationHandler(service ports.UserService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Apply files a guide application for the caller.
//
// @Summary      Apply to become a tour guide
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        body  body      object  true  "Application payload (experience, languages, etc.)"
// @Success      201   {object}  domain.Application
// @Failure      401   {object}  errorMessage
// @Router       /applications [post]
func (h *ApplicationHandler) Apply(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var payload domain.Document
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	application, err := h.service.Apply(c.Request().Context(), p, payload)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, application)
}

// List returns all applications. Admin only.
//
// @Summary      List guide applications
// @Tags         applications
// @Produce      json
// @Security     SessionAuth
// @Success      200  {array}  domain.Application
// @Router       /applications [get]
func (h *ApplicationHandler) List(c echo.Context) error {
	applications, err := h.service.ListApplications(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, applications)
}

// Approve promotes the applicant to guide. Admin only.
//
// @Summary      Approve a guide application
// @Tags         applications
// @Produce      json
// @Security     SessionAuth
// @Param        id  path  string  true  "Application id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorMessage
// @Router       /applications/{id}/approve [patch]
func (h *ApplicationHandler) Approve(c echo.Context) error {
	if err := h.service.Approve(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "application approved"})
}

// Reject declines a guide application. Admin only.
//
// @Summary      Reject a guide application
// @Tags         applications
// @Produce      json
// @Security     SessionAuth
// @Param        id  path  string  true  "Application id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorMessage
// @Router       /applications/{id}/reject [patch]
func (h *ApplicationHandler) Reject(c echo.Context) error {
	if err := h.service.Reject(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "application rejected"})
}
