package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shomvob/travels-api/internal/core/domain"
	"github.com/shomvob/travels-api/internal/core/ports"
)

const (
	bcryptCost    = 10
	resetTokenTTL = time.Hour
)

// AuthService implements registration, login and password reset.
type AuthService struct {
	users    ports.UserRepository
	throttle ports.LoginThrottle
	notifier ports.ResetNotifier
	secret   string
	tokenTTL time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	throttle ports.LoginThrottle,
	notifier ports.ResetNotifier,
	secret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{
		users:    users,
		throttle: throttle,
		notifier: notifier,
		secret:   secret,
		tokenTTL: tokenTTL,
		log:      log,
		now:      time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	if username == "" || email == "" || password == "" {
		return nil, "", domain.ErrMissingField
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		GuideRequest: domain.GuideRequestNone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(created)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("username", username).Msg("user registered")
	return created, token, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	if username == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	ok, err := s.throttle.Allow(ctx, username)
	if err != nil {
		// Throttle store down: log and fail open rather than locking
		// everyone out.
		s.log.Warn().Err(err).Msg("login throttle unavailable")
	} else if !ok {
		return nil, "", domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn a hash comparison anyway so unknown usernames cost
			// roughly the same as wrong passwords.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	if err := s.throttle.Clear(ctx, username); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear login throttle")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("username", username).Str("role", user.Role).Msg("login")
	return user, token, nil
}

func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := randomToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	expiry := s.now().UTC().Add(resetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return err
	}

	if err := s.notifier.SendResetToken(ctx, email, token); err != nil {
		s.log.Error().Err(err).Msg("reset token delivery failed")
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return domain.ErrResetTokenInvalid
	}

	user, err := s.users.FindByResetToken(ctx, token, s.now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrResetTokenInvalid
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	// UpdatePassword clears the token, making it single-use.
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  s.now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// dummyHash is a bcrypt hash of an unguessable value, used to equalize timing
// for logins against unknown usernames.
var dummyHash = func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("travels-timing-pad"), bcryptCost)
	return h
}()

// randomToken returns 32 hex characters from a CSPRNG.
func randomToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
