package impl

import (
	"context"
	"testing"

	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"
	mockRepo "ratehub/internal/mocks/repository"
	mockService "ratehub/internal/mocks/service"
	"ratehub/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProfileService(t *testing.T) (usecase.ProfileUsecase, *mockRepo.MockTransactionManager, *mockRepo.MockAccountRepository, *mockService.MockPasswordHasher) {
	txManager := mockRepo.NewMockTransactionManager(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)

	service := NewProfileService(ProfileServiceParams{
		TxManager:   txManager,
		AccountRepo: accountRepo,
		Hasher:      hasher,
		Logger:      discardLogger(),
	})

	return service, txManager, accountRepo, hasher
}

func profileAccount() *entity.Account {
	return &entity.Account{
		ID:           7,
		Name:         "Jonathan Maxwell Harrington",
		Email:        "jon.harrington@example.com",
		PasswordHash: "stored-hash",
		Role:         entity.RoleUser,
		Status:       entity.StatusActive,
		Address:      "12 Elm Street, Springfield",
	}
}

func TestProfileService_UpdateProfile_Success(t *testing.T) {
	service, txManager, _, _ := newProfileService(t)

	ctx := context.Background()
	newName := "  Alexandra Josephine Whitfield  "
	newAddress := "99 Cherry Lane, Shelbyville"

	txAccountRepo := mockRepo.NewMockAccountRepository(t)
	txAccountRepo.EXPECT().FindByID(ctx, int64(7)).Return(profileAccount(), nil)
	txAccountRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Account")).Return(nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().AccountRepo().Return(txAccountRepo)
	runInTransaction(txManager, ctx, factory)

	account, err := service.UpdateProfile(ctx, 7, &usecase.UpdateProfileInput{
		Name:    &newName,
		Address: &newAddress,
	})

	require.NoError(t, err)
	assert.Equal(t, "Alexandra Josephine Whitfield", account.Name)
	assert.Equal(t, "99 Cherry Lane, Shelbyville", account.Address)
	// Untouched fields survive a partial update.
	assert.Equal(t, "jon.harrington@example.com", account.Email)
	assert.Equal(t, "stored-hash", account.PasswordHash)
}

func TestProfileService_UpdateProfile_NameOutOfBounds(t *testing.T) {
	service, txManager, _, _ := newProfileService(t)

	ctx := context.Background()
	shortName := "Shorty"

	txAccountRepo := mockRepo.NewMockAccountRepository(t)
	txAccountRepo.EXPECT().FindByID(ctx, int64(7)).Return(profileAccount(), nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().AccountRepo().Return(txAccountRepo)
	runInTransaction(txManager, ctx, factory)

	_, err := service.UpdateProfile(ctx, 7, &usecase.UpdateProfileInput{Name: &shortName})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	// No Update expectation on the repo mock: the rejected change never lands.
}

func TestProfileService_UpdateProfile_DeletedAccount(t *testing.T) {
	service, txManager, _, _ := newProfileService(t)

	ctx := context.Background()
	newName := "Alexandra Josephine Whitfield"

	txAccountRepo := mockRepo.NewMockAccountRepository(t)
	txAccountRepo.EXPECT().FindByID(ctx, int64(7)).Return(nil, repository.ErrAccountNotFound)

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().AccountRepo().Return(txAccountRepo)
	runInTransaction(txManager, ctx, factory)

	_, err := service.UpdateProfile(ctx, 7, &usecase.UpdateProfileInput{Name: &newName})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestProfileService_ChangePassword_Success(t *testing.T) {
	service, txManager, accountRepo, hasher := newProfileService(t)

	ctx := context.Background()

	accountRepo.EXPECT().FindByID(ctx, int64(7)).Return(profileAccount(), nil)
	hasher.EXPECT().Check("OldSecret!1", "stored-hash").Return(true)
	hasher.EXPECT().ValidatePolicy("NewSecret!2").Return(nil)
	hasher.EXPECT().Hash("NewSecret!2").Return("new-hash", nil)

	txAccountRepo := mockRepo.NewMockAccountRepository(t)
	txAccountRepo.EXPECT().FindByID(ctx, int64(7)).Return(profileAccount(), nil)
	txAccountRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Account")).
		RunAndReturn(func(_ context.Context, account *entity.Account) error {
			assert.Equal(t, "new-hash", account.PasswordHash)

			return nil
		})

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().AccountRepo().Return(txAccountRepo)
	runInTransaction(txManager, ctx, factory)

	err := service.ChangePassword(ctx, 7, &usecase.ChangePasswordInput{
		CurrentPassword: "OldSecret!1",
		NewPassword:     "NewSecret!2",
	})

	require.NoError(t, err)
}

func TestProfileService_ChangePassword_WrongCurrentPassword(t *testing.T) {
	service, _, accountRepo, hasher := newProfileService(t)

	ctx := context.Background()

	accountRepo.EXPECT().FindByID(ctx, int64(7)).Return(profileAccount(), nil)
	hasher.EXPECT().Check("WrongOld!1", "stored-hash").Return(false)

	err := service.ChangePassword(ctx, 7, &usecase.ChangePasswordInput{
		CurrentPassword: "WrongOld!1",
		NewPassword:     "NewSecret!2",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestProfileService_ChangePassword_PolicyViolation(t *testing.T) {
	service, _, accountRepo, hasher := newProfileService(t)

	ctx := context.Background()

	accountRepo.EXPECT().FindByID(ctx, int64(7)).Return(profileAccount(), nil)
	hasher.EXPECT().Check("OldSecret!1", "stored-hash").Return(true)
	hasher.EXPECT().ValidatePolicy("weak").
		Return(domainerrors.ErrPasswordPolicy.WithDetails("password length out of bounds"))

	err := service.ChangePassword(ctx, 7, &usecase.ChangePasswordInput{
		CurrentPassword: "OldSecret!1",
		NewPassword:     "weak",
	})

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrPasswordPolicy.ErrorCode(), appErr.ErrorCode())
}
