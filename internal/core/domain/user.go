package domain

import "time"

// Roles in ascending order of privilege.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// ReservedUsername cannot be registered: it collides with the /users/me route.
const ReservedUsername = "me"

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleModerator || role == RoleAdmin
}

// User models an account on the platform. Accounts are created inactive by
// signup and become active on the first successful confirmation-code
// exchange. CodeEpoch is incremented on every exchange so that previously
// issued confirmation codes stop validating.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"-"`
	CodeEpoch int64     `json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// IsStaff reports whether the user may moderate content owned by others.
func (u *User) IsStaff() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}
