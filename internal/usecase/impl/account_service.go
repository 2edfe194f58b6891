// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	deliverycontext "bookreview/internal/delivery/context"
	"bookreview/internal/domain/entity"
	domainerrors "bookreview/internal/domain/errors"
	"bookreview/internal/domain/repository"
	"bookreview/internal/domain/service"
	"bookreview/internal/errors"
	"bookreview/internal/usecase"
)

// dummyPassword is hashed once so that a login for an unknown username still pays for one bcrypt comparison.
const dummyPassword = "dummy-password-for-timing-equalization"

// fallbackDummyHash is a cost-10 bcrypt digest of dummyPassword, used when hashing it at runtime fails.
const fallbackDummyHash = "$2a$10$hDecKZWzkX8L7/TnioPzceKpcbjgaEGqauT8V7RALyHio1aLbNBJ."

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	logger       *slog.Logger
	now          func() time.Time

	dummyHashOnce sync.Once
	dummyHash     string
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		publisher:    params.Publisher,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a USER account. Email is checked before username so that a request
// colliding on both reports the email conflict.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.AccountSummary, error) {
	emailTaken, err := srv.accountRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check email availability")
	}
	if emailTaken {
		srv.log(ctx).Info("Registration rejected: email taken", slog.String("username", input.Username))

		return nil, domainerrors.ErrDuplicateEmail
	}

	usernameTaken, err := srv.accountRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check username availability")
	}
	if usernameTaken {
		srv.log(ctx).Info("Registration rejected: username taken", slog.String("username", input.Username))

		return nil, domainerrors.ErrDuplicateUsername
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	account := &entity.Account{
		Username:     input.Username,
		Email:        input.Email,
		Firstname:    input.Firstname,
		Lastname:     input.Lastname,
		PasswordHash: hash,
		Role:         entity.RoleUser,
	}

	// A concurrent registration may still win between the checks and the insert;
	// the store reports that as the same duplicate error.
	if err := srv.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Account registered", slog.String("username", account.Username), slog.Int64("accountID", account.ID))
	srv.publish(ctx, service.AccountRegistered, account.Username, account.Role)

	return account.Summary(), nil
}

// Login verifies the credential assertion and issues a token bound to the account's current role.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if input.Username == "" || input.Password == "" {
		srv.hasher.Check(input.Password, srv.getDummyHash())

		return nil, domainerrors.ErrInvalidCredentials
	}

	account, err := srv.accountRepo.FindByUsername(ctx, input.Username)
	if errors.Is(err, repository.ErrAccountNotFound) {
		srv.hasher.Check(input.Password, srv.getDummyHash())
		srv.log(ctx).Info("Login failed", slog.String("username", input.Username))

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load account for login")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Info("Login failed", slog.String("username", input.Username))

		return nil, domainerrors.ErrInvalidCredentials
	}

	token, expiresAt, err := srv.tokenService.Issue(account.Username, account.Role, srv.now())
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Debug("Login succeeded", slog.String("username", account.Username))

	return &usecase.LoginOutput{
		AccessToken: token,
		TokenType:   usecase.TokenTypeBearer,
		ExpiresAt:   expiresAt,
	}, nil
}

func (srv *accountService) getDummyHash() string {
	srv.dummyHashOnce.Do(func() {
		hash, err := srv.hasher.Hash(dummyPassword)
		if err != nil {
			srv.logger.Warn("Failed to prepare dummy hash, using the built-in digest", slog.Any("error", err))
			srv.dummyHash = fallbackDummyHash

			return
		}
		srv.dummyHash = hash
	})

	return srv.dummyHash
}

// ChangePassword rotates the acting user's password. Checks run in a fixed order:
// account exists, old password matches, confirmation matches, new password is strong enough.
func (srv *accountService) ChangePassword(ctx context.Context, actingUsername string, input *usecase.ChangePasswordInput) error {
	account, err := srv.findAccount(ctx, actingUsername)
	if err != nil {
		return err
	}

	if !srv.hasher.Check(input.OldPassword, account.PasswordHash) {
		return domainerrors.ErrOldPasswordMismatch
	}
	if input.NewPassword != input.ConfirmPassword {
		return domainerrors.ErrConfirmationMismatch
	}
	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return err
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	// Re-read inside the transaction so a role granted meanwhile is not overwritten.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accounts := repoFactory.NewAccountRepository()

		current, err := accounts.FindByUsername(ctx, actingUsername)
		if err != nil {
			return mapAccountLookupError(err, actingUsername)
		}
		current.PasswordHash = hash

		return accounts.Update(ctx, current)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Password changed", slog.String("username", actingUsername))

	return nil
}

// GrantRole overwrites the target's role. Tokens issued earlier keep the role they were issued with until they expire.
func (srv *accountService) GrantRole(ctx context.Context, targetUsername, role string) error {
	parsed, ok := entity.ParseRole(role)
	if !ok {
		return domainerrors.ErrInvalidRole.WithDetails(role)
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accounts := repoFactory.NewAccountRepository()

		account, err := accounts.FindByUsername(ctx, targetUsername)
		if err != nil {
			return mapAccountLookupError(err, targetUsername)
		}
		account.Role = parsed

		return accounts.Update(ctx, account)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Role granted", slog.String("username", targetUsername), slog.String("role", parsed.String()))
	srv.publish(ctx, service.AccountRoleGranted, targetUsername, parsed)

	return nil
}

// DeleteAccount removes the target account. The existence check precedes deletion.
func (srv *accountService) DeleteAccount(ctx context.Context, targetUsername string) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accounts := repoFactory.NewAccountRepository()

		exists, err := accounts.ExistsByUsername(ctx, targetUsername)
		if err != nil {
			return errors.Wrap(err, "failed to check account existence")
		}
		if !exists {
			return userNotFound(targetUsername)
		}

		return mapAccountLookupError(accounts.DeleteByUsername(ctx, targetUsername), targetUsername)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Account deleted", slog.String("username", targetUsername))
	srv.publish(ctx, service.AccountDeleted, targetUsername, "")

	return nil
}

// ValidateToken reports whether the token is currently usable. It never fails.
func (srv *accountService) ValidateToken(ctx context.Context, token string) bool {
	if _, err := srv.tokenService.Decode(token, srv.now()); err != nil {
		srv.log(ctx).Debug("Token rejected", slog.String("reason", err.Error()))

		return false
	}

	return true
}

// GetAccount returns the public view of an account.
func (srv *accountService) GetAccount(ctx context.Context, username string) (*entity.AccountSummary, error) {
	account, err := srv.findAccount(ctx, username)
	if err != nil {
		return nil, err
	}

	return account.Summary(), nil
}

// ListAccounts returns accounts ordered by username.
func (srv *accountService) ListAccounts(ctx context.Context, page entity.PageRequest) (*entity.Page[entity.AccountSummary], error) {
	page = page.Normalize()

	accounts, total, err := srv.accountRepo.List(ctx, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	summaries := make([]*entity.AccountSummary, 0, len(accounts))
	for _, account := range accounts {
		summaries = append(summaries, account.Summary())
	}

	return newPage(summaries, page, total), nil
}

func (srv *accountService) findAccount(ctx context.Context, username string) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, mapAccountLookupError(err, username)
	}

	return account, nil
}

// publish emits an account event. Delivery is best-effort: the change is already committed.
func (srv *accountService) publish(ctx context.Context, eventType, username string, role entity.Role) {
	event := &service.AccountEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventID:    uuid.NewString(),
		Type:       eventType,
		Username:   username,
		Role:       role.String(),
		OccurredAt: srv.now().UTC(),
	}

	if err := srv.publisher.PublishAccountEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish account event",
			slog.String("event_type", eventType),
			slog.String("username", username),
			slog.Any("error", err),
		)
	}
}

func mapAccountLookupError(err error, username string) error {
	if errors.Is(err, repository.ErrAccountNotFound) {
		return userNotFound(username)
	}

	return err
}

func userNotFound(username string) error {
	return domainerrors.ErrUserNotFound.WithMessagef("User was not found for username=%s", username)
}
