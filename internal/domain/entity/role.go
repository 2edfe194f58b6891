package entity

import "strings"

// Role is the coarse-grained permission level attached to an account.
type Role string

const (
	// RoleUser is assigned to every newly registered account.
	RoleUser Role = "USER"
	// RoleAdmin may manage accounts and the book catalogue.
	RoleAdmin Role = "ADMIN"
)

// rolePrefix is accepted on input for compatibility with clients that send "ROLE_ADMIN".
const rolePrefix = "ROLE_"

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole normalizes a role name taken from a path or token.
// It accepts "admin", "ADMIN" and "ROLE_ADMIN" alike.
func ParseRole(s string) (Role, bool) {
	role := Role(strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), rolePrefix))
	if !role.IsValid() {
		return "", false
	}

	return role, true
}
