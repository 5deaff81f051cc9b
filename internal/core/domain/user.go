package domain

import "time"

const (
	RoleUser  = "user"
	RoleGuide = "guide"
	RoleAdmin = "admin"
)

// Guide-request states tracked on the user record while an application is in flight.
const (
	GuideRequestNone     = "none"
	GuideRequestPending  = "pending"
	GuideRequestApproved = "approved"
	GuideRequestRejected = "rejected"
)

// ValidRole reports whether s is one of the known roles.
func ValidRole(s string) bool {
	return s == RoleUser || s == RoleGuide || s == RoleAdmin
}

// User models an account holder. PasswordHash and the reset-token pair are
// persistence-only and never serialized to clients.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Role             string    `json:"role"`
	GuideRequest     string    `json:"guide_request,omitempty"`
	PhotoURL         string    `json:"photo_url,omitempty"`
	Bio              string    `json:"bio,omitempty"`
	ResetToken       string    `json:"-"`
	ResetTokenExpiry time.Time `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Principal is the authenticated identity extracted from a session token.
// Kept minimal (id + role) so tokens never go stale on profile edits; role
// changes take effect on the next issued token.
type Principal struct {
	ID   string
	Role string
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }
