// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"bookreview/internal/domain/entity"
)

// ErrAccountNotFound is returned when no account matches the lookup.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository is the credential store gateway.
// Uniqueness of username and email is enforced by the store itself; Create and Update
// report a violation as domainerrors.ErrDuplicateUsername or ErrDuplicateEmail.
type AccountRepository interface {
	// FindByID retrieves a single account by its store-assigned ID.
	FindByID(ctx context.Context, id int64) (*entity.Account, error)

	// FindByUsername retrieves a single account by username.
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)

	// FindByEmail retrieves a single account by email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// ExistsByUsername reports whether the username is taken. Reads from the primary.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail reports whether the email is taken. Reads from the primary.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create persists a new account and fills in ID and CreatedAt.
	Create(ctx context.Context, account *entity.Account) error

	// Update saves every mutable field of an existing account.
	Update(ctx context.Context, account *entity.Account) error

	// DeleteByUsername removes the account and its reviews.
	DeleteByUsername(ctx context.Context, username string) error

	// List returns accounts ordered by username.
	List(ctx context.Context, page entity.PageRequest) ([]*entity.Account, int64, error)
}
