package ports

import (
	"context"

	"github.com/shomvob/travels-api/internal/core/domain"
)

// UserService covers profile and admin account management plus the
// guide-application flow.
type UserService interface {
	Profile(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, p domain.Principal, id string) (*domain.User, error)
	// UpdateProfile merges whitelisted profile fields; self or admin only.
	UpdateProfile(ctx context.Context, p domain.Principal, id string, fields map[string]any) error
	ChangeRole(ctx context.Context, id, role string) error
	Delete(ctx context.Context, id string) error

	// Apply files a guide application for the principal and marks the
	// account's guide request pending.
	Apply(ctx context.Context, p domain.Principal, payload domain.Document) (*domain.Application, error)
	ListApplications(ctx context.Context) ([]*domain.Application, error)
	// Approve promotes the applicant to the guide role and registers a
	// tour-guide document keyed by the applicant's email.
	Approve(ctx context.Context, applicationID string) error
	Reject(ctx context.Context, applicationID string) error
}

// ApplicationRepository persists guide applications.
type ApplicationRepository interface {
	Create(ctx context.Context, a *domain.Application) (*domain.Application, error)
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	List(ctx context.Context) ([]*domain.Application, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Count(ctx context.Context) (int64, error)
}
