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

func newAdminService(t *testing.T) (usecase.AdminUsecase, *mockRepo.MockTransactionManager, *mockRepo.MockAccountRepository, *mockRepo.MockStoreRepository, *mockRepo.MockRatingRepository, *mockService.MockPasswordHasher) {
	txManager := mockRepo.NewMockTransactionManager(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	storeRepo := mockRepo.NewMockStoreRepository(t)
	ratingRepo := mockRepo.NewMockRatingRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)

	service := NewAdminService(AdminServiceParams{
		TxManager:   txManager,
		AccountRepo: accountRepo,
		StoreRepo:   storeRepo,
		RatingRepo:  ratingRepo,
		Hasher:      hasher,
		Logger:      discardLogger(),
	})

	return service, txManager, accountRepo, storeRepo, ratingRepo, hasher
}

func TestAdminService_Dashboard_Counts(t *testing.T) {
	service, _, accountRepo, storeRepo, ratingRepo, _ := newAdminService(t)

	ctx := context.Background()
	accountRepo.EXPECT().Count(ctx, repository.AccountFilter{Role: entity.RoleUser}).Return(int64(10), nil)
	accountRepo.EXPECT().Count(ctx, repository.AccountFilter{Role: entity.RoleOwner}).Return(int64(4), nil)
	accountRepo.EXPECT().Count(ctx, repository.AccountFilter{Role: entity.RoleOwner, Status: entity.StatusPending}).Return(int64(1), nil)
	storeRepo.EXPECT().Count(ctx, repository.StoreFilter{}).Return(int64(6), nil)
	ratingRepo.EXPECT().Count(ctx, repository.RatingFilter{}).Return(int64(37), nil)

	dashboard, err := service.Dashboard(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(10), dashboard.TotalUsers)
	assert.Equal(t, int64(4), dashboard.TotalOwners)
	assert.Equal(t, int64(6), dashboard.TotalStores)
	assert.Equal(t, int64(37), dashboard.TotalRatings)
	assert.Equal(t, int64(1), dashboard.PendingOwners)
}

func TestAdminService_ListAccounts_FilterNormalization(t *testing.T) {
	service, _, accountRepo, _, _, _ := newAdminService(t)

	ctx := context.Background()
	accounts := []*entity.Account{{ID: 1, Role: entity.RoleOwner, Status: entity.StatusPending}}
	accountRepo.EXPECT().
		List(ctx, repository.AccountFilter{Role: entity.RoleOwner, Status: entity.StatusPending, Search: "smith"}).
		Return(accounts, nil)

	got, err := service.ListAccounts(ctx, &usecase.ListAccountsInput{Role: "Owner", Status: "PENDING", Search: "smith"})

	require.NoError(t, err)
	assert.Equal(t, accounts, got)
}

func TestAdminService_ListAccounts_UnknownRoleFilter(t *testing.T) {
	service, _, _, _, _, _ := newAdminService(t)

	got, err := service.ListAccounts(context.Background(), &usecase.ListAccountsInput{Role: "wizard"})

	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)
}

// Admin-created owners skip the pending stage.
func TestAdminService_CreateAccount_OwnerStartsActive(t *testing.T) {
	service, _, accountRepo, _, _, hasher := newAdminService(t)

	ctx := context.Background()
	input := &usecase.SignupInput{
		Name:     "Margaret Louise Fitzgerald",
		Email:    "margaret@stores.example.com",
		Password: "Sup3rSecret!",
		Role:     "owner",
	}

	hasher.EXPECT().ValidatePolicy(input.Password).Return(nil)
	hasher.EXPECT().Hash(input.Password).Return("hashed-password", nil)
	accountRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Account")).Return(nil)

	account, err := service.CreateAccount(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, entity.RoleOwner, account.Role)
	assert.Equal(t, entity.StatusActive, account.Status)
}

func TestAdminService_CreateAccount_InvalidEmailSyntax(t *testing.T) {
	service, _, _, _, _, _ := newAdminService(t)

	// Administrative creation bypasses the HTTP DTO tags, so the usecase
	// itself must reject a syntactically invalid email.
	_, err := service.CreateAccount(context.Background(), &usecase.SignupInput{
		Name:     "Jonathan Maxwell Harrington",
		Email:    "not-an-email",
		Password: "Sup3rSecret!",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAdminService_UpdateAccount_RoleAndStatusChange(t *testing.T) {
	service, txManager, _, _, _, _ := newAdminService(t)

	ctx := context.Background()
	txAccountRepo := mockRepo.NewMockAccountRepository(t)
	txAccountRepo.EXPECT().FindByID(ctx, int64(5)).
		Return(&entity.Account{ID: 5, Name: "Margaret Louise Fitzgerald", Role: entity.RoleUser, Status: entity.StatusActive}, nil)
	txAccountRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Account")).Return(nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().AccountRepo().Return(txAccountRepo)
	runInTransaction(txManager, ctx, factory)

	role := "owner"
	status := "pending"
	account, err := service.UpdateAccount(ctx, 5, &usecase.UpdateAccountInput{Role: &role, Status: &status})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleOwner, account.Role)
	assert.Equal(t, entity.StatusPending, account.Status)
}

func TestAdminService_UpdateAccount_UnknownStatus(t *testing.T) {
	service, txManager, _, _, _, _ := newAdminService(t)

	ctx := context.Background()
	txAccountRepo := mockRepo.NewMockAccountRepository(t)
	txAccountRepo.EXPECT().FindByID(ctx, int64(5)).
		Return(&entity.Account{ID: 5, Status: entity.StatusActive}, nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().AccountRepo().Return(txAccountRepo)
	runInTransaction(txManager, ctx, factory)

	status := "banned"
	account, err := service.UpdateAccount(ctx, 5, &usecase.UpdateAccountInput{Status: &status})

	require.Error(t, err)
	assert.Nil(t, account)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatus)
}

func TestAdminService_DeleteAccount_AdminRefused(t *testing.T) {
	service, txManager, _, _, _, _ := newAdminService(t)

	ctx := context.Background()
	txAccountRepo := mockRepo.NewMockAccountRepository(t)
	txAccountRepo.EXPECT().FindByID(ctx, int64(1)).
		Return(&entity.Account{ID: 1, Role: entity.RoleAdmin}, nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().AccountRepo().Return(txAccountRepo)
	runInTransaction(txManager, ctx, factory)

	err := service.DeleteAccount(ctx, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAdminUndeletable)
}

func TestAdminService_DeleteAccount_Success(t *testing.T) {
	service, txManager, _, _, _, _ := newAdminService(t)

	ctx := context.Background()
	txAccountRepo := mockRepo.NewMockAccountRepository(t)
	txAccountRepo.EXPECT().FindByID(ctx, int64(5)).
		Return(&entity.Account{ID: 5, Role: entity.RoleOwner}, nil)
	txAccountRepo.EXPECT().Delete(ctx, int64(5)).Return(nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().AccountRepo().Return(txAccountRepo)
	runInTransaction(txManager, ctx, factory)

	require.NoError(t, service.DeleteAccount(ctx, 5))
}

func TestAdminService_CreateStore_RejectsNonOwnerAssignment(t *testing.T) {
	service, _, accountRepo, _, _, _ := newAdminService(t)

	ctx := context.Background()
	accountRepo.EXPECT().FindByID(ctx, int64(8)).
		Return(&entity.Account{ID: 8, Role: entity.RoleUser}, nil)

	store, err := service.CreateStore(ctx, &usecase.AdminCreateStoreInput{Name: "Corner Bakery", OwnerID: 8})

	require.Error(t, err)
	assert.Nil(t, store)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAdminService_CreateStore_Success(t *testing.T) {
	service, _, accountRepo, storeRepo, _, _ := newAdminService(t)

	ctx := context.Background()
	accountRepo.EXPECT().FindByID(ctx, int64(3)).
		Return(&entity.Account{ID: 3, Role: entity.RoleOwner, Status: entity.StatusActive}, nil)
	storeRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Store")).Return(nil)

	store, err := service.CreateStore(ctx, &usecase.AdminCreateStoreInput{Name: "Corner Bakery", OwnerID: 3})

	require.NoError(t, err)
	assert.Equal(t, int64(3), store.OwnerID)
}

func TestAdminService_DeleteRating_NotFound(t *testing.T) {
	service, _, _, _, ratingRepo, _ := newAdminService(t)

	ctx := context.Background()
	ratingRepo.EXPECT().Delete(ctx, int64(77)).Return(repository.ErrRatingNotFound)

	err := service.DeleteRating(ctx, 77)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrRatingNotFound)
}
