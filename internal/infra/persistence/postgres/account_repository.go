package postgres

import (
	"context"
	"strings"

	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"
	"ratehub/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements the repository.AccountRepository interface
// using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository. It returns
// the repository as a domain interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create persists a new account. The unique index on lower(email) is the
// authoritative duplicate check; the resulting constraint violation is
// translated to the Conflict domain error so concurrent signups for the same
// email cannot race past an application-level pre-check.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailTaken.WrapMessage("email already registered")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("account violates schema constraints")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// FindByID retrieves a single account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id int64) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).First(&accountM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return toAccountDomain(&accountM), nil
}

// FindByEmail retrieves a single account by email. The lookup lowercases the
// input so it matches the case-insensitive unique index.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("lower(email) = lower(?)", email).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// Update modifies an existing account.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Save(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailTaken.WrapMessage("email already registered")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update account")
	}

	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// Delete removes an account by ID.
func (repo *accountRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.AccountModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// List returns accounts matching the filter, newest first.
func (repo *accountRepository) List(ctx context.Context, filter repository.AccountFilter) ([]*entity.Account, error) {
	var accountModels []model.AccountModel

	query := repo.applyAccountFilter(repo.db.WithContext(ctx), filter)
	if err := query.Order("created_at DESC").Find(&accountModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	accounts := make([]*entity.Account, 0, len(accountModels))
	for i := range accountModels {
		accounts = append(accounts, toAccountDomain(&accountModels[i]))
	}

	return accounts, nil
}

// Count returns the number of accounts matching the filter.
func (repo *accountRepository) Count(ctx context.Context, filter repository.AccountFilter) (int64, error) {
	var count int64

	query := repo.applyAccountFilter(repo.db.WithContext(ctx).Model(&model.AccountModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count accounts")
	}

	return count, nil
}

func (repo *accountRepository) applyAccountFilter(query *gorm.DB, filter repository.AccountFilter) *gorm.DB {
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role.String())
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status.String())
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	return query
}

// --- Mapper functions ---

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Role:         entity.Role(data.Role),
		Status:       entity.Status(data.Status),
		Address:      data.Address,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Role:         data.Role.String(),
		Status:       data.Status.String(),
		Address:      data.Address,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
