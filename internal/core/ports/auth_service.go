package ports

import (
	"context"

	"github.com/shomvob/travels-api/internal/core/domain"
)

// AuthService covers registration, login and the password-reset lifecycle.
// Session verification itself is transport middleware, not a service call.
type AuthService interface {
	// Register creates a user with role "user" and returns it with a signed
	// session token. Fails with domain.ErrUserExists on duplicate
	// username or email.
	Register(ctx context.Context, username, email, password string) (*domain.User, string, error)
	// Login authenticates by username and returns a fresh session token.
	// Unknown user and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
	// RequestPasswordReset issues a single-use reset token for the account
	// registered under email and hands it to the notifier.
	RequestPasswordReset(ctx context.Context, email string) error
	// ResetPassword consumes a reset token and installs a new password.
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// LoginThrottle bounds failed login attempts per account.
type LoginThrottle interface {
	// Allow records an attempt for key and reports whether it may proceed.
	Allow(ctx context.Context, key string) (bool, error)
	// Clear forgets the attempt counter for key after a successful login.
	Clear(ctx context.Context, key string) error
}

// ResetNotifier delivers a password-reset token to the account owner.
// Email delivery is an external collaborator; the default implementation
// only logs.
type ResetNotifier interface {
	SendResetToken(ctx context.Context, email, token string) error
}
