package ports

import (
	"context"

	"github.com/shomvob/travels-api/internal/core/domain"
)

// CreateBookingInput carries the fields a traveller submits when booking a tour.
type CreateBookingInput struct {
	UserEmail  string
	GuideEmail string
	PackageID  string
	TourDate   string
	Price      float64
}

// BookingRepository persists bookings and serves the analytics aggregations.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context) ([]*domain.Booking, error)
	ListByUserEmail(ctx context.Context, email string) ([]*domain.Booking, error)
	ListByGuideEmail(ctx context.Context, email string) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	Delete(ctx context.Context, id string) (int64, error)
	// CountByTourDate groups bookings by tour date, ascending by date.
	CountByTourDate(ctx context.Context) ([]domain.DateCount, error)
	Count(ctx context.Context) (int64, error)
}

// BookingService implements the booking use cases.
type BookingService interface {
	Create(ctx context.Context, in CreateBookingInput) (*domain.Booking, error)
	Get(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context) ([]*domain.Booking, error)
	ListByUser(ctx context.Context, email string) ([]*domain.Booking, error)
	ListByGuide(ctx context.Context, email string) ([]*domain.Booking, error)
	// UpdateStatus applies pending→confirmed/cancelled, confirmed→cancelled.
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	Delete(ctx context.Context, id string) error
}
