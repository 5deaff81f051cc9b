package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shomvob/travels-api/internal/api/middleware"
	"github.com/shomvob/travels-api/internal/core/domain"
)

type stubAuthService struct {
	loginErr error
	resetErr error

	resetRequested string
	resetToken     string
	resetPassword  string
}

func (s *stubAuthService) Register(_ context.Context, username, email, _ string) (*domain.User, string, error) {
	if username == "taken" {
		return nil, "", domain.ErrUserExists
	}
	return &domain.User{ID: "66f0a1b2c3d4e5f6a7b8c9d0", Username: username, Email: email, Role: domain.RoleUser}, "signed.jwt.token", nil
}

func (s *stubAuthService) Login(_ context.Context, username, _ string) (*domain.User, string, error) {
	if s.loginErr != nil {
		return nil, "", s.loginErr
	}
	return &domain.User{ID: "66f0a1b2c3d4e5f6a7b8c9d0", Username: username, Role: domain.RoleUser}, "signed.jwt.token", nil
}

func (s *stubAuthService) RequestPasswordReset(_ context.Context, email string) error {
	s.resetRequested = email
	return nil
}

func (s *stubAuthService) ResetPassword(_ context.Context, token, newPassword string) error {
	if s.resetErr != nil {
		return s.resetErr
	}
	s.resetToken = token
	s.resetPassword = newPassword
	return nil
}

func authRequest(t *testing.T, svc *stubAuthService, body string) (echo.Context, *httptest.ResponseRecorder, *AuthHandler) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec, NewAuthHandler(svc, time.Hour, false)
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			return ck
		}
	}
	return nil
}

func TestAuthHandler_Register(t *testing.T) {
	c, rec, h := authRequest(t, &stubAuthService{},
		`{"username":"rafiq","email":"rafiq@example.com","password":"hunter22"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Token == "" || resp.User == nil || resp.User.Username != "rafiq" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	ck := sessionCookie(rec)
	if ck == nil || ck.Value != resp.Token {
		t.Fatalf("session cookie not set from token: %+v", ck)
	}
	if !ck.HttpOnly || ck.SameSite != http.SameSiteStrictMode {
		t.Fatalf("weak cookie attributes: %+v", ck)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	cases := map[string]string{
		"short password": `{"username":"rafiq","email":"rafiq@example.com","password":"abc"}`,
		"bad email":      `{"username":"rafiq","email":"nope","password":"hunter22"}`,
		"missing fields": `{}`,
	}
	for name, body := range cases {
		c, _, h := authRequest(t, &stubAuthService{}, body)
		err := h.Register(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %v", name, err)
		}
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	c, _, h := authRequest(t, &stubAuthService{},
		`{"username":"taken","email":"taken@example.com","password":"hunter22"}`)

	// Domain errors pass through untouched; the central error handler maps
	// ErrUserExists to 409.
	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists passthrough, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	c, rec, h := authRequest(t, &stubAuthService{}, `{"username":"rafiq","password":"hunter22"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ck := sessionCookie(rec); ck == nil || ck.Value == "" {
		t.Fatal("expected a session cookie on login")
	}
}

func TestAuthHandler_Login_Failure(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	c, _, h := authRequest(t, svc, `{"username":"rafiq","password":"wrong"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials passthrough, got %v", err)
	}
}

func TestAuthHandler_Logout_ExpiresCookie(t *testing.T) {
	c, rec, h := authRequest(t, &stubAuthService{}, ``)

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	ck := sessionCookie(rec)
	if ck == nil || ck.MaxAge >= 0 || ck.Value != "" {
		t.Fatalf("expected an expired empty session cookie, got %+v", ck)
	}
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	svc := &stubAuthService{}
	c, rec, h := authRequest(t, svc, `{"email":"rafiq@example.com"}`)

	if err := h.ForgotPassword(c); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}
	if rec.Code != http.StatusOK || svc.resetRequested != "rafiq@example.com" {
		t.Fatalf("reset not requested for the posted email: %q", svc.resetRequested)
	}
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	token := strings.Repeat("ab", 16)
	svc := &stubAuthService{}
	c, rec, h := authRequest(t, svc,
		`{"reset_token":"`+token+`","new_password":"hunter23"}`)

	if err := h.ResetPassword(c); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if rec.Code != http.StatusOK || svc.resetToken != token {
		t.Fatalf("token not consumed: %q", svc.resetToken)
	}
}

func TestAuthHandler_ResetPassword_MalformedToken(t *testing.T) {
	c, _, h := authRequest(t, &stubAuthService{},
		`{"reset_token":"not-hex","new_password":"hunter23"}`)

	err := h.ResetPassword(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed token, got %v", err)
	}
}
