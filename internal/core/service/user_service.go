package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shomvob/travels-api/internal/core/domain"
	"github.com/shomvob/travels-api/internal/core/ports"
)

// profileFields whitelists what UpdateProfile may touch. Credentials, role
// and the reset-token pair are managed by their own operations.
var profileFields = map[string]bool{
	"username":  true,
	"photo_url": true,
	"bio":       true,
}

// UserService implements account management and the guide-application flow.
type UserService struct {
	users        ports.UserRepository
	applications ports.ApplicationRepository
	guides       ports.ResourceRepository
	log          zerolog.Logger
	now          func() time.Time
}

func NewUserService(
	users ports.UserRepository,
	applications ports.ApplicationRepository,
	guides ports.ResourceRepository,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		users:        users,
		applications: applications,
		guides:       guides,
		log:          log,
		now:          time.Now,
	}
}

func (s *UserService) Profile(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, p domain.Principal, id string) (*domain.User, error) {
	if err := checkObjectID(id); err != nil {
		return nil, err
	}
	if !p.IsAdmin() && p.ID != id {
		return nil, domain.ErrForbidden
	}
	return s.users.FindByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, p domain.Principal, id string, fields map[string]any) error {
	if err := checkObjectID(id); err != nil {
		return err
	}
	if !p.IsAdmin() && p.ID != id {
		return domain.ErrForbidden
	}

	allowed := make(map[string]any, len(fields))
	for k, v := range fields {
		if profileFields[k] {
			allowed[k] = v
		}
	}
	if len(allowed) == 0 {
		return nil
	}
	return s.users.UpdateProfile(ctx, id, allowed)
}

func (s *UserService) ChangeRole(ctx context.Context, id, role string) error {
	if err := checkObjectID(id); err != nil {
		return err
	}
	if !domain.ValidRole(role) {
		return domain.ErrMissingField
	}
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Str("role", role).Msg("role changed")
	return nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := checkObjectID(id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

func (s *UserService) Apply(ctx context.Context, p domain.Principal, payload domain.Document) (*domain.Application, error) {
	user, err := s.users.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	application := &domain.Application{
		UserID:    user.ID,
		UserEmail: user.Email,
		Payload:   payload,
		Status:    domain.ApplicationPending,
		CreatedAt: s.now().UTC(),
	}

	created, err := s.applications.Create(ctx, application)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetGuideRequest(ctx, user.ID, domain.GuideRequestPending); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to mark guide request pending")
	}

	s.log.Info().Str("user_id", user.ID).Str("application_id", created.ID).Msg("guide application filed")
	return created, nil
}

func (s *UserService) ListApplications(ctx context.Context) ([]*domain.Application, error) {
	return s.applications.List(ctx)
}

// Approve promotes the applicant and registers a tour-guide document seeded
// from the application payload, keyed by the applicant's email.
func (s *UserService) Approve(ctx context.Context, applicationID string) error {
	if err := checkObjectID(applicationID); err != nil {
		return err
	}

	application, err := s.applications.FindByID(ctx, applicationID)
	if err != nil {
		return err
	}

	if err := s.applications.UpdateStatus(ctx, applicationID, domain.ApplicationApproved); err != nil {
		return err
	}
	if err := s.users.UpdateRole(ctx, application.UserID, domain.RoleGuide); err != nil {
		return err
	}
	if err := s.users.SetGuideRequest(ctx, application.UserID, domain.GuideRequestApproved); err != nil {
		s.log.Warn().Err(err).Str("user_id", application.UserID).Msg("failed to mark guide request approved")
	}

	guide := domain.Document{"email": application.UserEmail}
	for k, v := range application.Payload {
		if k != "email" && k != "_id" {
			guide[k] = v
		}
	}
	if _, err := s.guides.Create(ctx, guide); err != nil {
		return err
	}

	s.log.Info().
		Str("application_id", applicationID).
		Str("user_id", application.UserID).
		Msg("guide application approved")
	return nil
}

func (s *UserService) Reject(ctx context.Context, applicationID string) error {
	if err := checkObjectID(applicationID); err != nil {
		return err
	}

	application, err := s.applications.FindByID(ctx, applicationID)
	if err != nil {
		return err
	}

	if err := s.applications.UpdateStatus(ctx, applicationID, domain.ApplicationRejected); err != nil {
		return err
	}
	if err := s.users.SetGuideRequest(ctx, application.UserID, domain.GuideRequestRejected); err != nil {
		s.log.Warn().Err(err).Str("user_id", application.UserID).Msg("failed to mark guide request rejected")
	}
	return nil
}
