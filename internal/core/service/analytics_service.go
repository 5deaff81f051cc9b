package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/shomvob/travels-api/internal/core/domain"
	"github.com/shomvob/travels-api/internal/core/ports"
)

// AnalyticsService computes the admin dashboard figures on demand. Nothing is
// cached: the database stays the single source of truth for every read.
type AnalyticsService struct {
	bookings ports.BookingRepository
	counters map[string]ports.Counter
	log      zerolog.Logger
}

// NewAnalyticsService takes a named set of collection counters for the
// dashboard census plus the booking repository for the chart aggregation.
func NewAnalyticsService(bookings ports.BookingRepository, counters map[string]ports.Counter, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{bookings: bookings, counters: counters, log: log}
}

// Summary counts documents per collection for the dashboard.
func (s *AnalyticsService) Summary(ctx context.Context) (*ports.DashboardSummary, error) {
	counts := make(map[string]int64, len(s.counters)+1)
	for name, counter := range s.counters {
		n, err := counter.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", name, err)
		}
		counts[name] = n
	}

	bookingCount, err := s.bookings.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	return &ports.DashboardSummary{
		Users:         counts["users"],
		Packages:      counts["packages"],
		Bookings:      bookingCount,
		Guides:        counts["tour_guides"],
		Stories:       counts["stories"],
		Applications:  counts["applications"],
		Announcements: counts["announcements"],
	}, nil
}

// BookingsByDate returns booking counts grouped by tour date, ascending.
func (s *AnalyticsService) BookingsByDate(ctx context.Context) ([]domain.DateCount, error) {
	return s.bookings.CountByTourDate(ctx)
}
