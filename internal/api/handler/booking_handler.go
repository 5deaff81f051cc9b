package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shomvob/travels-api/internal/api/metrics"
	"github.com/shomvob/travels-api/internal/core/domain"
	"github.com/shomvob/travels-api/internal/core/ports"
)

// BookingHandler handles tour bookings.
type BookingHandler struct {
	service ports.BookingService
	users   ports.UserService
}

func NewBookingHandler(service ports.BookingService, users ports.UserService) *BookingHandler {
	return &BookingHandler{service: service, users: users}
}

type createBookingRequest struct {
	GuideEmail string  `json:"guide_email,omitempty" validate:"omitempty,email"`
	PackageID  string  `json:"package_id"            validate:"required"`
	TourDate   string  `json:"tour_date"             validate:"required"`
	Price      float64 `json:"price"                 validate:"omitempty,gt=0"`
}

type updateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled"`
}

// Create books a tour for the caller. The booking is created in status
// "pending"; the user email comes from the caller's account, never the body.
//
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        body  body      createBookingRequest  true  "Booking details"
// @Success      201   {object}  domain.Booking
// @Failure      400   {object}  errorMessage
// @Failure      401   {object}  errorMessage
// @Router       /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Profile(c.Request().Context(), p.ID)
	if err != nil {
		return err
	}

	booking, err := h.service.Create(c.Request().Context(), ports.CreateBookingInput{
		UserEmail:  user.Email,
		GuideEmail: req.GuideEmail,
		PackageID:  req.PackageID,
		TourDate:   req.TourDate,
		Price:      req.Price,
	})
	if err != nil {
		return err
	}
	metrics.BookingsCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, booking)
}

// List returns all bookings. Admin only.
//
// @Summary      List all bookings
// @Tags         bookings
// @Produce      json
// @Security     SessionAuth
// @Success      200  {array}  domain.Booking
// @Router       /bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	bookings, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// Get returns one booking. The caller must own it, be its guide, or be admin.
//
// @Summary      Get a booking by id
// @Tags         bookings
// @Produce      json
// @Security     SessionAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  domain.Booking
// @Failure      404  {object}  errorMessage
// @Router       /bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	booking, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if err := h.authorizeBookingAccess(c, p, booking); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// ListByUser returns a traveller's bookings; self or admin.
//
// @Summary      List bookings by traveller email
// @Tags         bookings
// @Produce      json
// @Security     SessionAuth
// @Param        email  path  string  true  "Traveller email"
// @Success      200    {array}  domain.Booking
// @Router       /bookings/user/{email} [get]
func (h *BookingHandler) ListByUser(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	email := c.Param("email")
	if err := h.authorizeEmailAccess(c, p, email); err != nil {
		return err
	}

	bookings, err := h.service.ListByUser(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// ListByGuide returns the bookings assigned to a guide; the guide themself or admin.
//
// @Summary      List bookings by guide email
// @Tags         bookings
// @Produce      json
// @Security     SessionAuth
// @Param        email  path  string  true  "Guide email"
// @Success      200    {array}  domain.Booking
// @Router       /bookings/guide/{email} [get]
func (h *BookingHandler) ListByGuide(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	email := c.Param("email")
	if err := h.authorizeEmailAccess(c, p, email); err != nil {
		return err
	}

	bookings, err := h.service.ListByGuide(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// UpdateStatus transitions a booking between lifecycle states.
//
// @Summary      Update booking status
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        id    path      string                      true  "Booking id"
// @Param        body  body      updateBookingStatusRequest  true  "Target status"
// @Success      200   {object}  messageResponse
// @Failure      422   {object}  errorMessage
// @Router       /bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req updateBookingStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if err := h.authorizeBookingAccess(c, p, booking); err != nil {
		return err
	}

	if err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), domain.BookingStatus(req.Status)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "status updated"})
}

// Delete removes a booking; owner or admin.
//
// @Summary      Delete a booking
// @Tags         bookings
// @Produce      json
// @Security     SessionAuth
// @Param        id  path  string  true  "Booking id"
// @Success      204
// @Router       /bookings/{id} [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	booking, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if err := h.authorizeBookingAccess(c, p, booking); err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// authorizeBookingAccess allows admins, the booking's traveller, and its
// assigned guide.
func (h *BookingHandler) authorizeBookingAccess(c echo.Context, p domain.Principal, booking *domain.Booking) error {
	if p.IsAdmin() {
		return nil
	}
	user, err := h.users.Profile(c.Request().Context(), p.ID)
	if err != nil {
		return err
	}
	if booking.UserEmail == user.Email || booking.GuideEmail == user.Email {
		return nil
	}
	return domain.ErrForbidden
}

// authorizeEmailAccess allows admins and callers whose account email matches.
func (h *BookingHandler) authorizeEmailAccess(c echo.Context, p domain.Principal, email string) error {
	if p.IsAdmin() {
		return nil
	}
	user, err := h.users.Profile(c.Request().Context(), p.ID)
	if err != nil {
		return err
	}
	if user.Email != email {
		return domain.ErrForbidden
	}
	return nil
}
