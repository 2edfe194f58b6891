// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"bookreview/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Firstname string
	Lastname  string
	Username  string
	Email     string
	Password  string
}

// LoginInput is a credential assertion. It is never logged or stored.
type LoginInput struct {
	Username string
	Password string
}

// ChangePasswordInput defines the data required to rotate a password.
type ChangePasswordInput struct {
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

// --- Output DTOs ---

// TokenTypeBearer is the only token type issued.
const TokenTypeBearer = "Bearer"

// LoginOutput carries the session token issued after a successful login.
type LoginOutput struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// AccountUsecase defines the identity and access operations.
// Authorization is enforced before these methods are called; methods acting on
// behalf of a user receive that user's name explicitly.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*entity.AccountSummary, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	ChangePassword(ctx context.Context, actingUsername string, input *ChangePasswordInput) error
	GrantRole(ctx context.Context, targetUsername, role string) error
	DeleteAccount(ctx context.Context, targetUsername string) error
	ValidateToken(ctx context.Context, token string) bool
	GetAccount(ctx context.Context, username string) (*entity.AccountSummary, error)
	ListAccounts(ctx context.Context, page entity.PageRequest) (*entity.Page[entity.AccountSummary], error)
}
