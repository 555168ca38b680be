package domain

import "strings"

// RoleAdmin is the role string that gates the admin views. This is a
// client-side display gate only, not a security boundary; the commerce API
// verifies every admin call.
const RoleAdmin = "ADMIN"

// UserProfile is the cached profile of the signed-in user.
type UserProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the cached role grants access to admin views.
func (u *UserProfile) IsAdmin() bool {
	return NormalizeRole(u.Role) == RoleAdmin
}

// NormalizeRole trims and uppercases a role string for literal comparison.
func NormalizeRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}
