package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shomvob/travels-api/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("%024x", r.nextID)
	r.users[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByResetToken(_ context.Context, token string, now time.Time) (*domain.User, error) {
	for _, u := range r.users {
		if u.ResetToken != "" && u.ResetToken == token && u.ResetTokenExpiry.After(now) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, fields map[string]any) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if v, ok := fields["username"].(string); ok {
		u.Username = v
	}
	if v, ok := fields["photo_url"].(string); ok {
		u.PhotoURL = v
	}
	if v, ok := fields["bio"].(string); ok {
		u.Bio = v
	}
	return nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id, role string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) SetGuideRequest(_ context.Context, id, state string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.GuideRequest = state
	return nil
}

func (r *stubUserRepo) SetResetToken(_ context.Context, id, token string, expiry time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetToken = token
	u.ResetTokenExpiry = expiry
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetToken = ""
	u.ResetTokenExpiry = time.Time{}
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type stubThrottle struct {
	denied  bool
	cleared []string
}

func (t *stubThrottle) Allow(_ context.Context, _ string) (bool, error) {
	return !t.denied, nil
}

func (t *stubThrottle) Clear(_ context.Context, key string) error {
	t.cleared = append(t.cleared, key)
	return nil
}

type stubNotifier struct {
	tokens map[string]string
}

func (n *stubNotifier) SendResetToken(_ context.Context, email, token string) error {
	if n.tokens == nil {
		n.tokens = make(map[string]string)
	}
	n.tokens[email] = token
	return nil
}

func newAuthFixture() (*AuthService, *stubUserRepo, *stubThrottle, *stubNotifier) {
	repo := newStubUserRepo()
	throttle := &stubThrottle{}
	notifier := &stubNotifier{}
	svc := NewAuthService(repo, throttle, notifier, "secret", time.Hour, zerolog.Nop())
	return svc, repo, throttle, notifier
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	user, token, err := svc.Register(context.Background(), "alice", "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role user, got %s", user.Role)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != user.ID || claims["role"] != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	if _, _, err := svc.Register(context.Background(), "", "a@example.com", "pass"); err != domain.ErrMissingField {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	if _, _, err := svc.Register(context.Background(), "bob", "bob@example.com", "pass"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "bob", "other@example.com", "pass2"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists for duplicate username, got %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "robert", "bob@example.com", "pass2"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists for duplicate email, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, throttle, _ := newAuthFixture()

	if _, _, err := svc.Register(context.Background(), "carol", "carol@example.com", "s3cret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if len(throttle.cleared) != 1 || throttle.cleared[0] != "carol" {
		t.Fatalf("expected throttle cleared for carol, got %v", throttle.cleared)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, _, _ = svc.Register(context.Background(), "dave", "dave@example.com", "goodpass")
	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	// Unknown usernames fail with the same error as wrong passwords.
	if _, _, err := svc.Login(context.Background(), "ghost", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	svc, _, throttle, _ := newAuthFixture()
	throttle.denied = true

	_, _, _ = svc.Register(context.Background(), "erin", "erin@example.com", "pass")
	if _, _, err := svc.Login(context.Background(), "erin", "pass"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_PasswordReset_Lifecycle(t *testing.T) {
	svc, repo, _, notifier := newAuthFixture()

	user, _, err := svc.Register(context.Background(), "frank", "frank@example.com", "original")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	issued := time.Now().UTC()
	svc.now = func() time.Time { return issued }

	if err := svc.RequestPasswordReset(context.Background(), "frank@example.com"); err != nil {
		t.Fatalf("request reset failed: %v", err)
	}

	token := notifier.tokens["frank@example.com"]
	if len(token) != 32 {
		t.Fatalf("expected 32 hex chars, got %q", token)
	}

	// Just before expiry the token works.
	svc.now = func() time.Time { return issued.Add(resetTokenTTL - time.Second) }
	if err := svc.ResetPassword(context.Background(), token, "newpass"); err != nil {
		t.Fatalf("reset before expiry failed: %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), user.ID)
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpass")); err != nil {
		t.Fatalf("new password not installed: %v", err)
	}
	if stored.ResetToken != "" {
		t.Fatalf("expected reset token cleared after use")
	}

	// Replay after success fails: the token is single-use.
	if err := svc.ResetPassword(context.Background(), token, "again"); err != domain.ErrResetTokenInvalid {
		t.Fatalf("expected ErrResetTokenInvalid on replay, got %v", err)
	}
}

func TestAuthService_PasswordReset_Expired(t *testing.T) {
	svc, _, _, notifier := newAuthFixture()

	_, _, _ = svc.Register(context.Background(), "grace", "grace@example.com", "original")

	issued := time.Now().UTC()
	svc.now = func() time.Time { return issued }
	if err := svc.RequestPasswordReset(context.Background(), "grace@example.com"); err != nil {
		t.Fatalf("request reset failed: %v", err)
	}
	token := notifier.tokens["grace@example.com"]

	svc.now = func() time.Time { return issued.Add(resetTokenTTL + time.Second) }
	if err := svc.ResetPassword(context.Background(), token, "newpass"); err != domain.ErrResetTokenInvalid {
		t.Fatalf("expected ErrResetTokenInvalid after expiry, got %v", err)
	}
}

func TestAuthService_PasswordReset_UnknownEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	if err := svc.RequestPasswordReset(context.Background(), "nobody@example.com"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
