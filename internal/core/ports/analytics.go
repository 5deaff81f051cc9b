package ports

import (
	"context"

	"github.com/shomvob/travels-api/internal/core/domain"
)

// AnalyticsService serves the admin dashboard.
type AnalyticsService interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
	BookingsByDate(ctx context.Context) ([]domain.DateCount, error)
}

// DashboardSummary is the per-collection document census shown on the admin
// dashboard.
type DashboardSummary struct {
	Users         int64 `json:"users"`
	Packages      int64 `json:"packages"`
	Bookings      int64 `json:"bookings"`
	Guides        int64 `json:"guides"`
	Stories       int64 `json:"stories"`
	Applications  int64 `json:"applications"`
	Announcements int64 `json:"announcements"`
}

// Counter is the one method the analytics service needs from each collection.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}
