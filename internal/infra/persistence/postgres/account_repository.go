// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"bookreview/internal/domain/entity"
	domainerrors "bookreview/internal/domain/errors"
	"bookreview/internal/domain/repository"
	"bookreview/internal/errors"
	"bookreview/internal/infra/persistence/model"
)

// accountRepository implements the domain AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a repository.AccountRepository interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByID retrieves a single account by its ID.
func (repo *accountRepository) FindByID(ctx context.Context, id int64) (*entity.Account, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByUsername retrieves a single account by username.
func (repo *accountRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	return repo.findOne(ctx, "username = ?", username)
}

// FindByEmail retrieves a single account by email address.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return repo.findOne(ctx, "email = ?", email)
}

func (repo *accountRepository) findOne(ctx context.Context, query string, arg any) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).Where(query, arg).Take(&accountM).Error; err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find account")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toAccountDomain(&accountM), nil
}

// ExistsByUsername reports whether the username is taken. The read is pinned to the primary
// so a just-committed registration is never missed because of replica lag.
func (repo *accountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return repo.exists(ctx, "username = ?", username)
}

// ExistsByEmail reports whether the email is taken, reading from the primary.
func (repo *accountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return repo.exists(ctx, "email = ?", email)
}

func (repo *accountRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Model(&model.AccountModel{}).
		Where(query, arg).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check account existence")
	}

	return count > 0, nil
}

// Create persists a new account. A unique violation is mapped to the duplicate error of the
// constraint that fired, so concurrent registrations fail exactly like sequential ones.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		return mapAccountWriteError(err, "failed to create account")
	}

	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt

	return nil
}

// Update saves every mutable column of the account. Username and created_at are never rewritten.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", account.ID).
		Updates(map[string]any{
			"email":         account.Email,
			"firstname":     account.Firstname,
			"lastname":      account.Lastname,
			"password_hash": account.PasswordHash,
			"role":          account.Role.String(),
		})
	if result.Error != nil {
		return mapAccountWriteError(result.Error, "failed to update account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// DeleteByUsername removes the account. Reviews go with it through ON DELETE CASCADE.
func (repo *accountRepository) DeleteByUsername(ctx context.Context, username string) error {
	result := repo.db.WithContext(ctx).Where("username = ?", username).Delete(&model.AccountModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// List returns one page of accounts ordered by username, plus the total count.
func (repo *accountRepository) List(ctx context.Context, page entity.PageRequest) ([]*entity.Account, int64, error) {
	page = page.Normalize()

	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.AccountModel{}).Count(&total).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count accounts")
	}

	var rows []*model.AccountModel
	err := repo.db.WithContext(ctx).
		Order("username ASC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&rows).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to list accounts")
	}

	accounts := make([]*entity.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, toAccountDomain(row))
	}

	return accounts, total, nil
}

// mapAccountWriteError converts PostgreSQL errors to domain errors.
func mapAccountWriteError(err error, details string) error {
	if isUniqueConstraintViolation(err) {
		switch violatedConstraint(err) {
		case constraintUsersEmail:
			return domainerrors.ErrDuplicateEmail
		case constraintUsersUsername:
			return domainerrors.ErrDuplicateUsername
		default:
			return domainerrors.ErrDuplicateUsername.WithDetails(details)
		}
	}
	if isCheckConstraintViolation(err) || isNotNullConstraintViolation(err) {
		return domainerrors.ErrValidationFailed.WrapMessage(details)
	}

	// For other database errors, return a generic database error
	return domainerrors.NewDatabaseExecuteError(err, details)
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		Firstname:    data.Firstname,
		Lastname:     data.Lastname,
		PasswordHash: data.PasswordHash,
		Role:         entity.Role(data.Role),
		CreatedAt:    data.CreatedAt,
	}
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel for persistence.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:           data.ID,
		Username:     data.Username,
		Email:        data.Email,
		Firstname:    data.Firstname,
		Lastname:     data.Lastname,
		PasswordHash: data.PasswordHash,
		Role:         data.Role.String(),
		CreatedAt:    data.CreatedAt,
	}
}
