// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "ratehub/internal/delivery/context"
	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"
	"ratehub/internal/domain/service"
	"ratehub/internal/usecase"

	playground "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// validate re-checks field syntax at the usecase layer so the rules hold for
// every caller, not only requests passing through the HTTP DTO tags.
var validate = playground.New(playground.WithRequiredStructEnabled())

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup orchestrates the complete account registration process.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting signup", slog.String("email", input.Email), slog.String("role", input.Role))

	account, err := buildSignupAccount(input)
	if err != nil {
		srv.log(ctx).Warn("Signup validation failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	// Hash outside the transaction (bcrypt is CPU-bound).
	if err := srv.hasher.ValidatePolicy(input.Password); err != nil {
		srv.log(ctx).Warn("Password policy violated during signup", slog.String("email", input.Email))

		return nil, domainerrors.ErrPasswordPolicy.WrapMessage(err.Error())
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during signup")
	}
	account.PasswordHash = hashedPassword

	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		// Pre-check for a friendly error; the unique index on lower(email)
		// remains the authoritative guard under concurrent signups.
		_, findErr := accountRepo.FindByEmail(ctx, account.Email)
		if findErr == nil {
			return errors.Wrap(domainerrors.ErrEmailTaken, "email already registered")
		}
		if !errors.Is(findErr, repository.ErrAccountNotFound) {
			return errors.Wrap(findErr, "failed to check email availability")
		}

		if createErr := accountRepo.Create(ctx, account); createErr != nil {
			return errors.Wrap(createErr, "failed to create account during signup")
		}

		return nil
	}); err != nil {
		srv.log(ctx).Warn("Signup failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute signup transaction")
	}

	token, err := srv.tokenService.Generate(account)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after signup", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token after signup")
	}

	srv.log(ctx).Debug("Signup completed", slog.Any("accountID", account.ID), slog.String("role", account.Role.String()))

	return &usecase.AuthOutput{Account: account, Token: token}, nil
}

// buildSignupAccount validates the signup fields and assembles the new
// account with its role-dependent default status.
func buildSignupAccount(input *usecase.SignupInput) (*entity.Account, error) {
	name := strings.TrimSpace(input.Name)
	if len(name) < usecase.NameMinLength || len(name) > usecase.NameMaxLength {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("name length out of bounds")
	}

	email := strings.TrimSpace(input.Email)
	if validate.Var(email, "required,email") != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid email address")
	}

	address := strings.TrimSpace(input.Address)
	if len(address) > usecase.AddressMaxLength {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("address length out of bounds")
	}

	role := entity.RoleUser
	if input.Role != "" {
		parsed, ok := entity.ParseRole(input.Role)
		if !ok {
			return nil, domainerrors.ErrInvalidRole.WrapMessage("unknown role " + input.Role)
		}
		role = parsed
	}

	return &entity.Account{
		Name:    name,
		Email:   email,
		Role:    role,
		Status:  entity.DefaultStatusFor(role),
		Address: address,
	}, nil
}

// Login verifies credentials and issues a session token.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		if errors.Is(err, repository.ErrAccountNotFound) {
			// Identical outcome to a wrong password: never reveal which half
			// of the credential pair was wrong.
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	if account.Status == entity.StatusInactive {
		srv.log(ctx).Warn("Login rejected for inactive account", slog.Any("accountID", account.ID))

		return nil, errors.Wrap(domainerrors.ErrAccountInactive, "login rejected")
	}

	token, err := srv.tokenService.Generate(account)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token during login", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token during login")
	}

	srv.log(ctx).Debug("Login completed", slog.Any("accountID", account.ID))

	return &usecase.AuthOutput{Account: account, Token: token}, nil
}

// ValidateAccount re-fetches the live account behind a verified token subject.
func (srv *authService) ValidateAccount(ctx context.Context, accountID int64) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			// A validly signed token for a since-deleted account is not a
			// session. Token validity is necessary but not sufficient.
			return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "account behind token no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load account for token validation")
	}

	if account.Status == entity.StatusInactive {
		srv.log(ctx).Warn("Session rejected for inactive account", slog.Any("accountID", account.ID))

		return nil, errors.Wrap(domainerrors.ErrAccountInactive, "account deactivated")
	}

	return account, nil
}
