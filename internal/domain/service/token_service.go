package service

import (
	"errors"
	"time"

	"bookreview/internal/domain/entity"
)

// Decode failures. They are deliberately coarse: callers only need to know the token is unusable.
var (
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature invalid")
)

// TokenService issues and decodes stateless session tokens.
// Implementations never touch the credential store.
type TokenService interface {
	// Issue creates a token for username carrying role, valid from now for TTL().
	Issue(username string, role entity.Role, now time.Time) (token string, expiresAt time.Time, err error)

	// Decode verifies the token as of now and returns the claim it carries.
	Decode(token string, now time.Time) (*entity.AuthClaim, error)

	// TTL returns the lifetime of issued tokens.
	TTL() time.Duration
}
