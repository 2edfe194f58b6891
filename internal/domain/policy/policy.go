// Package policy decides whether an authorization claim may perform an action.
// Every function here is pure: no I/O, no logging, no store lookups.
package policy

import (
	"bookreview/internal/domain/entity"
	domainerrors "bookreview/internal/domain/errors"
)

// Decision is the outcome of evaluating a set of policies.
type Decision int

const (
	// Unauthenticated means no claim was presented.
	Unauthenticated Decision = iota
	// Forbidden means a claim was presented but at least one policy rejected it.
	Forbidden
	// Authorized means every policy accepted the claim.
	Authorized
)

func (d Decision) String() string {
	switch d {
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case Authorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Policy is a predicate over a non-nil claim.
type Policy func(claim *entity.AuthClaim) bool

// RequireRole accepts claims whose role is one of roles.
func RequireRole(roles ...entity.Role) Policy {
	return func(claim *entity.AuthClaim) bool {
		return claim.HasRole(roles...)
	}
}

// RequireOwner accepts claims whose subject is username.
func RequireOwner(username string) Policy {
	return func(claim *entity.AuthClaim) bool {
		return claim.Username == username
	}
}

// Evaluate applies policies in order. A nil claim is Unauthenticated regardless of policies.
func Evaluate(claim *entity.AuthClaim, policies ...Policy) Decision {
	if claim == nil {
		return Unauthenticated
	}

	for _, p := range policies {
		if !p(claim) {
			return Forbidden
		}
	}

	return Authorized
}

// Authorize is Evaluate expressed as an error.
func Authorize(claim *entity.AuthClaim, policies ...Policy) error {
	switch Evaluate(claim, policies...) {
	case Unauthenticated:
		return domainerrors.ErrUnauthenticated
	case Forbidden:
		return domainerrors.ErrForbidden
	default:
		return nil
	}
}
