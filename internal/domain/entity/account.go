// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Account is a registered identity. Username and Email are unique across all accounts.
type Account struct {
	ID           int64     // Assigned by the store at creation, never changes.
	Username     string    // Login identifier, immutable after creation.
	Email        string    // Contact address, unique.
	Firstname    string    // Given name.
	Lastname     string    // Family name.
	PasswordHash string    // bcrypt digest. Never leaves the service boundary.
	Role         Role      // Current role. Tokens carry a snapshot of it.
	CreatedAt    time.Time // Set once, at creation.
}

// AccountSummary is the public projection of an Account.
type AccountSummary struct {
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// Summary returns the public projection of the account.
func (a *Account) Summary() *AccountSummary {
	return &AccountSummary{
		Firstname: a.Firstname,
		Lastname:  a.Lastname,
		Username:  a.Username,
		CreatedAt: a.CreatedAt,
	}
}

// AuthClaim is the identity recovered from a valid session token.
// It is derived per request and never stored.
type AuthClaim struct {
	Username string
	Role     Role
}

// HasRole reports whether the claim's role is one of roles.
func (c *AuthClaim) HasRole(roles ...Role) bool {
	for _, role := range roles {
		if c.Role == role {
			return true
		}
	}

	return false
}
