// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"bookreview/config"
	domainerrors "bookreview/internal/domain/errors"
	"bookreview/internal/domain/service"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy config.PasswordStrengthConfig
}

// NewBcryptHasher builds the hasher from the auth and password strength sections of the config.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	hasher := &bcryptHasher{cost: bcrypt.DefaultCost}
	if cfg.Auth != nil {
		hasher.cost = normalizeCost(cfg.Auth.BcryptCost)
	}
	if cfg.PasswordStrength != nil {
		hasher.policy = *cfg.PasswordStrength
	}

	return hasher
}

// NewBcryptHasherWithCost creates a hasher with an explicit cost and the given strength policy.
func NewBcryptHasherWithCost(cost int, policy config.PasswordStrengthConfig) service.PasswordHasher {
	return &bcryptHasher{cost: normalizeCost(cost), policy: policy}
}

func normalizeCost(cost int) int {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}

	return cost
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
// The comparison is constant time with respect to the password.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength checks the password against the configured policy.
// The first violated rule is reported in the error details.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	p := h.policy
	length := len([]rune(password))

	var violation string
	switch {
	case p.MinLength > 0 && length < p.MinLength:
		violation = "must be at least " + strconv.Itoa(p.MinLength) + " characters long"
	case p.MaxLength > 0 && len(password) > p.MaxLength:
		violation = "must be at most " + strconv.Itoa(p.MaxLength) + " bytes long"
	case p.RequireLowercase && !h.hasLowercase(password):
		violation = "must contain at least one lowercase letter"
	case p.RequireUppercase && !h.hasUppercase(password):
		violation = "must contain at least one uppercase letter"
	case p.RequireNumbers && !h.hasNumbers(password):
		violation = "must contain at least one number"
	case p.RequireSpecial && !h.hasSpecialChars(password):
		violation = "must contain at least one special character"
	case h.containsForbiddenWords(password, p.ForbiddenWords):
		violation = "contains forbidden words"
	default:
		return nil
	}

	return domainerrors.ErrPasswordStrength.WithDetails("password " + violation)
}

func (h *bcryptHasher) hasUppercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}

func (h *bcryptHasher) hasLowercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsLower) >= 0
}

func (h *bcryptHasher) hasNumbers(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func (h *bcryptHasher) hasSpecialChars(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	}) >= 0
}

func (h *bcryptHasher) containsForbiddenWords(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, word := range words {
		if word != "" && strings.Contains(lower, strings.ToLower(word)) {
			return true
		}
	}

	return false
}
