package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shomvob/travels-api/internal/core/ports"
)

// AnalyticsHandler serves the admin dashboard figures.
type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Summary returns per-collection document counts.
//
// @Summary      Dashboard summary counts
// @Tags         analytics
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  ports.DashboardSummary
// @Router       /analytics [get]
func (h *AnalyticsHandler) Summary(c echo.Context) error {
	summary, err := h.service.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// Chart returns booking counts grouped by tour date, ascending.
//
// @Summary      Bookings-per-date chart data
// @Tags         analytics
// @Produce      json
// @Security     SessionAuth
// @Success      200  {array}  domain.DateCount
// @Router       /analytics/chart [get]
func (h *AnalyticsHandler) Chart(c echo.Context) error {
	buckets, err := h.service.BookingsByDate(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, buckets)
}
