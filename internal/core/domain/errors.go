package domain

import "errors"

// Sentinel errors forming the API error taxonomy. Handlers never invent
// status codes; the central HTTP error handler maps these.
var (
	ErrInvalidID          = errors.New("malformed identifier")
	ErrMissingField       = errors.New("missing required field")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrResetTokenInvalid  = errors.New("reset token invalid or expired")
	ErrInvalidTransition  = errors.New("invalid booking status transition")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)
