package impl

import (
	"context"
	"strings"
	"testing"

	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"
	mockRepo "ratehub/internal/mocks/repository"
	"ratehub/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStoreService(t *testing.T) (usecase.StoreUsecase, *mockRepo.MockTransactionManager, *mockRepo.MockAccountRepository, *mockRepo.MockStoreRepository, *mockRepo.MockRatingRepository) {
	txManager := mockRepo.NewMockTransactionManager(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	storeRepo := mockRepo.NewMockStoreRepository(t)
	ratingRepo := mockRepo.NewMockRatingRepository(t)

	service := NewStoreService(StoreServiceParams{
		TxManager:   txManager,
		AccountRepo: accountRepo,
		StoreRepo:   storeRepo,
		RatingRepo:  ratingRepo,
		Logger:      discardLogger(),
	})

	return service, txManager, accountRepo, storeRepo, ratingRepo
}

func TestStoreService_Browse_AttachesOwnRating(t *testing.T) {
	service, _, _, storeRepo, ratingRepo := newStoreService(t)

	ctx := context.Background()
	stores := []*entity.Store{
		{ID: 1, Name: "Corner Bakery", AverageRating: 4.5, RatingCount: 2},
		{ID: 2, Name: "Hardware Haven", AverageRating: 0, RatingCount: 0},
	}
	myRating := &entity.Rating{ID: 11, StoreID: 1, UserID: 8, Score: 5}

	storeRepo.EXPECT().List(ctx, repository.StoreFilter{Search: "a"}).Return(stores, nil)
	ratingRepo.EXPECT().List(ctx, repository.RatingFilter{UserID: int64(8)}).
		Return([]*entity.Rating{myRating}, nil)

	browsed, err := service.Browse(ctx, &usecase.BrowseStoresInput{Search: "a", UserID: 8})

	require.NoError(t, err)
	require.Len(t, browsed, 2)
	assert.Equal(t, myRating, browsed[0].MyRating)
	assert.Nil(t, browsed[1].MyRating)
}

func TestStoreService_Browse_AnonymousSkipsRatingLookup(t *testing.T) {
	service, _, _, storeRepo, _ := newStoreService(t)

	ctx := context.Background()
	storeRepo.EXPECT().List(ctx, repository.StoreFilter{}).
		Return([]*entity.Store{{ID: 1, Name: "Corner Bakery"}}, nil)

	browsed, err := service.Browse(ctx, &usecase.BrowseStoresInput{})

	require.NoError(t, err)
	require.Len(t, browsed, 1)
	assert.Nil(t, browsed[0].MyRating)
}

func TestStoreService_CreateStore_NameTooLong(t *testing.T) {
	service, _, accountRepo, _, _ := newStoreService(t)

	ctx := context.Background()
	accountRepo.EXPECT().FindByID(ctx, int64(3)).
		Return(&entity.Account{ID: 3, Role: entity.RoleOwner, Status: entity.StatusActive}, nil)

	// One character over the stores.name column width.
	_, err := service.CreateStore(ctx, 3, &usecase.CreateStoreInput{
		Name: strings.Repeat("b", usecase.StoreNameMaxLength+1),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	// No Create expectation on the store repo: the oversized name never lands.
}

func TestStoreService_CreateStore_Success(t *testing.T) {
	service, _, accountRepo, storeRepo, _ := newStoreService(t)

	ctx := context.Background()
	accountRepo.EXPECT().FindByID(ctx, int64(3)).
		Return(&entity.Account{ID: 3, Role: entity.RoleOwner, Status: entity.StatusActive}, nil)
	storeRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Store")).
		RunAndReturn(func(_ context.Context, store *entity.Store) error {
			store.ID = 21

			return nil
		})

	store, err := service.CreateStore(ctx, 3, &usecase.CreateStoreInput{
		Name:    "Corner Bakery",
		Email:   "hello@cornerbakery.example.com",
		Address: "5 Main Street",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(21), store.ID)
	assert.Equal(t, int64(3), store.OwnerID)
}

// A pending owner must not be able to list stores until an administrator
// activates the account, even though the session token is valid.
func TestStoreService_CreateStore_PendingOwnerRejected(t *testing.T) {
	service, _, accountRepo, _, _ := newStoreService(t)

	ctx := context.Background()
	accountRepo.EXPECT().FindByID(ctx, int64(3)).
		Return(&entity.Account{ID: 3, Role: entity.RoleOwner, Status: entity.StatusPending}, nil)

	store, err := service.CreateStore(ctx, 3, &usecase.CreateStoreInput{Name: "Corner Bakery"})

	require.Error(t, err)
	assert.Nil(t, store)
	assert.ErrorIs(t, err, domainerrors.ErrOwnerPending)
}

func TestStoreService_CreateStore_InactiveOwnerRejected(t *testing.T) {
	service, _, accountRepo, _, _ := newStoreService(t)

	ctx := context.Background()
	accountRepo.EXPECT().FindByID(ctx, int64(3)).
		Return(&entity.Account{ID: 3, Role: entity.RoleOwner, Status: entity.StatusInactive}, nil)

	store, err := service.CreateStore(ctx, 3, &usecase.CreateStoreInput{Name: "Corner Bakery"})

	require.Error(t, err)
	assert.Nil(t, store)
	assert.ErrorIs(t, err, domainerrors.ErrAccountInactive)
}

// A store belonging to someone else reads as nonexistent and is never
// mutated.
func TestStoreService_UpdateStore_CrossOwnerMaskedAsNotFound(t *testing.T) {
	service, txManager, accountRepo, _, _ := newStoreService(t)

	ctx := context.Background()
	accountRepo.EXPECT().FindByID(ctx, int64(3)).
		Return(&entity.Account{ID: 3, Role: entity.RoleOwner, Status: entity.StatusActive}, nil)

	txStoreRepo := mockRepo.NewMockStoreRepository(t)
	txStoreRepo.EXPECT().FindByID(ctx, int64(21)).
		Return(&entity.Store{ID: 21, OwnerID: 99}, nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().StoreRepo().Return(txStoreRepo)
	runInTransaction(txManager, ctx, factory)

	newName := "Hijacked"
	store, err := service.UpdateStore(ctx, 3, 21, &usecase.UpdateStoreInput{Name: &newName})

	require.Error(t, err)
	assert.Nil(t, store)
	assert.ErrorIs(t, err, domainerrors.ErrStoreNotFound)
}

func TestStoreService_UpdateStore_Success(t *testing.T) {
	service, txManager, accountRepo, _, _ := newStoreService(t)

	ctx := context.Background()
	accountRepo.EXPECT().FindByID(ctx, int64(3)).
		Return(&entity.Account{ID: 3, Role: entity.RoleOwner, Status: entity.StatusActive}, nil)

	txStoreRepo := mockRepo.NewMockStoreRepository(t)
	txStoreRepo.EXPECT().FindByID(ctx, int64(21)).
		Return(&entity.Store{ID: 21, OwnerID: 3, Name: "Corner Bakery", Address: "5 Main Street"}, nil)
	txStoreRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Store")).Return(nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().StoreRepo().Return(txStoreRepo)
	runInTransaction(txManager, ctx, factory)

	newAddress := "8 Harbor Road"
	store, err := service.UpdateStore(ctx, 3, 21, &usecase.UpdateStoreInput{Address: &newAddress})

	require.NoError(t, err)
	assert.Equal(t, "8 Harbor Road", store.Address)
	assert.Equal(t, "Corner Bakery", store.Name)
}

func TestStoreService_DeleteStore_CrossOwnerMaskedAsNotFound(t *testing.T) {
	service, txManager, accountRepo, _, _ := newStoreService(t)

	ctx := context.Background()
	accountRepo.EXPECT().FindByID(ctx, int64(3)).
		Return(&entity.Account{ID: 3, Role: entity.RoleOwner, Status: entity.StatusActive}, nil)

	txStoreRepo := mockRepo.NewMockStoreRepository(t)
	txStoreRepo.EXPECT().FindByID(ctx, int64(21)).
		Return(&entity.Store{ID: 21, OwnerID: 99}, nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().StoreRepo().Return(txStoreRepo)
	runInTransaction(txManager, ctx, factory)

	err := service.DeleteStore(ctx, 3, 21)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrStoreNotFound)
}

func TestStoreService_Dashboard_Success(t *testing.T) {
	service, _, _, storeRepo, ratingRepo := newStoreService(t)

	ctx := context.Background()
	store := &entity.Store{ID: 21, OwnerID: 3, AverageRating: 3.5, RatingCount: 2}
	distribution := entity.RatingDistribution{1: 0, 2: 1, 3: 0, 4: 0, 5: 1}
	ratings := []*entity.Rating{
		{ID: 1, StoreID: 21, Score: 5, UserName: "Alice"},
		{ID: 2, StoreID: 21, Score: 2, UserName: "Bob"},
	}

	storeRepo.EXPECT().FindByID(ctx, int64(21)).Return(store, nil)
	ratingRepo.EXPECT().DistributionByStore(ctx, int64(21)).Return(distribution, nil)
	ratingRepo.EXPECT().List(ctx, repository.RatingFilter{StoreID: int64(21)}).Return(ratings, nil)

	dashboard, err := service.Dashboard(ctx, 3, 21)

	require.NoError(t, err)
	assert.Equal(t, store, dashboard.Store)
	assert.Equal(t, distribution, dashboard.Distribution)
	assert.Len(t, dashboard.Ratings, 2)
}

func TestStoreService_Dashboard_CrossOwnerMaskedAsNotFound(t *testing.T) {
	service, _, _, storeRepo, _ := newStoreService(t)

	ctx := context.Background()
	storeRepo.EXPECT().FindByID(ctx, int64(21)).
		Return(&entity.Store{ID: 21, OwnerID: 99}, nil)

	dashboard, err := service.Dashboard(ctx, 3, 21)

	require.Error(t, err)
	assert.Nil(t, dashboard)
	assert.ErrorIs(t, err, domainerrors.ErrStoreNotFound)
}
