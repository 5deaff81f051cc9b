package ports

import (
	"context"
	"time"

	"github.com/shomvob/travels-api/internal/core/domain"
)

// UserRepository persists account records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// UpdateProfile merges the given fields into the user document. Only
	// whitelisted profile fields are accepted; it never touches credentials.
	UpdateProfile(ctx context.Context, id string, fields map[string]any) error
	UpdateRole(ctx context.Context, id, role string) error
	SetGuideRequest(ctx context.Context, id, state string) error
	// SetResetToken stores a reset token and its expiry on the user.
	SetResetToken(ctx context.Context, id, token string, expiry time.Time) error
	// FindByResetToken matches only non-expired tokens as of now.
	FindByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error)
	// UpdatePassword replaces the hash and clears any reset token.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
