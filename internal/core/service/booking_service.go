package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shomvob/travels-api/internal/core/domain"
	"github.com/shomvob/travels-api/internal/core/ports"
)

// BookingService implements the booking use cases.
type BookingService struct {
	repo ports.BookingRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewBookingService(repo ports.BookingRepository, log zerolog.Logger) *BookingService {
	return &BookingService{repo: repo, log: log, now: time.Now}
}

func (s *BookingService) Create(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
	if in.UserEmail == "" || in.PackageID == "" || in.TourDate == "" {
		return nil, domain.ErrMissingField
	}

	booking := &domain.Booking{
		UserEmail:  in.UserEmail,
		GuideEmail: in.GuideEmail,
		PackageID:  in.PackageID,
		TourDate:   in.TourDate,
		Price:      in.Price,
		Status:     domain.BookingPending,
		CreatedAt:  s.now().UTC(),
	}

	created, err := s.repo.Create(ctx, booking)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("booking_id", created.ID).
		Str("user_email", created.UserEmail).
		Str("tour_date", created.TourDate).
		Msg("booking created")
	return created, nil
}

func (s *BookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	if err := checkObjectID(id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *BookingService) List(ctx context.Context) ([]*domain.Booking, error) {
	return s.repo.List(ctx)
}

func (s *BookingService) ListByUser(ctx context.Context, email string) ([]*domain.Booking, error) {
	return s.repo.ListByUserEmail(ctx, email)
}

func (s *BookingService) ListByGuide(ctx context.Context, email string) ([]*domain.Booking, error) {
	return s.repo.ListByGuideEmail(ctx, email)
}

func (s *BookingService) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	if err := checkObjectID(id); err != nil {
		return err
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !booking.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, booking.Status, status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.log.Info().Str("booking_id", id).Str("status", string(status)).Msg("booking status updated")
	return nil
}

func (s *BookingService) Delete(ctx context.Context, id string) error {
	if err := checkObjectID(id); err != nil {
		return err
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		s.log.Debug().Str("booking_id", id).Msg("delete of absent booking")
	}
	return nil
}

// checkObjectID rejects a malformed hex ObjectID before any database call.
func checkObjectID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return domain.ErrInvalidID
	}
	return nil
}
