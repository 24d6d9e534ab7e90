package impl

import (
	"context"
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

func newRatingService(t *testing.T) (usecase.RatingUsecase, *mockRepo.MockTransactionManager, *mockRepo.MockAccountRepository, *mockRepo.MockStoreRepository, *mockRepo.MockRatingRepository) {
	txManager := mockRepo.NewMockTransactionManager(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	storeRepo := mockRepo.NewMockStoreRepository(t)
	ratingRepo := mockRepo.NewMockRatingRepository(t)

	service := NewRatingService(RatingServiceParams{
		TxManager:   txManager,
		AccountRepo: accountRepo,
		StoreRepo:   storeRepo,
		RatingRepo:  ratingRepo,
		Logger:      discardLogger(),
	})

	return service, txManager, accountRepo, storeRepo, ratingRepo
}

func TestRatingService_Submit_Success(t *testing.T) {
	service, _, _, _, ratingRepo := newRatingService(t)

	ctx := context.Background()
	ratingRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Rating")).
		RunAndReturn(func(_ context.Context, rating *entity.Rating) error {
			rating.ID = 31

			return nil
		})

	rating, err := service.Submit(ctx, 8, &usecase.SubmitRatingInput{StoreID: 21, Score: 4, Comment: "  solid bread  "})

	require.NoError(t, err)
	assert.Equal(t, int64(31), rating.ID)
	assert.Equal(t, int64(8), rating.UserID)
	assert.Equal(t, int64(21), rating.StoreID)
	assert.Equal(t, "solid bread", rating.Comment)
}

func TestRatingService_Submit_ScoreOutOfBounds(t *testing.T) {
	service, _, _, _, _ := newRatingService(t)

	ctx := context.Background()
	for _, score := range []int{0, 6, -1} {
		rating, err := service.Submit(ctx, 8, &usecase.SubmitRatingInput{StoreID: 21, Score: score})

		require.Error(t, err)
		assert.Nil(t, rating)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidScore)
	}
}

// The storage layer translates the (store_id, user_id) unique violation; the
// service passes it through unchanged.
func TestRatingService_Submit_DuplicatePassesThrough(t *testing.T) {
	service, _, _, _, ratingRepo := newRatingService(t)

	ctx := context.Background()
	ratingRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Rating")).
		Return(domainerrors.ErrDuplicateRating.WrapMessage("rating already exists for this user and store"))

	rating, err := service.Submit(ctx, 8, &usecase.SubmitRatingInput{StoreID: 21, Score: 4})

	require.Error(t, err)
	assert.Nil(t, rating)
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateRating)
}

func TestRatingService_Update_Success(t *testing.T) {
	service, txManager, _, _, _ := newRatingService(t)

	ctx := context.Background()
	txRatingRepo := mockRepo.NewMockRatingRepository(t)
	txRatingRepo.EXPECT().FindByID(ctx, int64(31)).
		Return(&entity.Rating{ID: 31, StoreID: 21, UserID: 8, Score: 4, Comment: "ok", OwnerReply: "thanks"}, nil)
	txRatingRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Rating")).Return(nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().RatingRepo().Return(txRatingRepo)
	runInTransaction(txManager, ctx, factory)

	newScore := 2
	rating, err := service.Update(ctx, 8, 31, &usecase.UpdateRatingInput{Score: &newScore})

	require.NoError(t, err)
	assert.Equal(t, 2, rating.Score)
	assert.Equal(t, "ok", rating.Comment)
	assert.Equal(t, "thanks", rating.OwnerReply)
}

// Another user's rating reads as nonexistent and is never mutated.
func TestRatingService_Update_ForeignAuthorMaskedAsNotFound(t *testing.T) {
	service, txManager, _, _, _ := newRatingService(t)

	ctx := context.Background()
	txRatingRepo := mockRepo.NewMockRatingRepository(t)
	txRatingRepo.EXPECT().FindByID(ctx, int64(31)).
		Return(&entity.Rating{ID: 31, StoreID: 21, UserID: 99, Score: 4}, nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().RatingRepo().Return(txRatingRepo)
	runInTransaction(txManager, ctx, factory)

	newScore := 1
	rating, err := service.Update(ctx, 8, 31, &usecase.UpdateRatingInput{Score: &newScore})

	require.Error(t, err)
	assert.Nil(t, rating)
	assert.ErrorIs(t, err, domainerrors.ErrRatingNotFound)
}

func TestRatingService_Delete_ForeignAuthorMaskedAsNotFound(t *testing.T) {
	service, txManager, _, _, _ := newRatingService(t)

	ctx := context.Background()
	txRatingRepo := mockRepo.NewMockRatingRepository(t)
	txRatingRepo.EXPECT().FindByID(ctx, int64(31)).
		Return(&entity.Rating{ID: 31, UserID: 99}, nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().RatingRepo().Return(txRatingRepo)
	runInTransaction(txManager, ctx, factory)

	err := service.Delete(ctx, 8, 31)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrRatingNotFound)
}

func TestRatingService_Delete_Success(t *testing.T) {
	service, txManager, _, _, _ := newRatingService(t)

	ctx := context.Background()
	txRatingRepo := mockRepo.NewMockRatingRepository(t)
	txRatingRepo.EXPECT().FindByID(ctx, int64(31)).
		Return(&entity.Rating{ID: 31, UserID: 8}, nil)
	txRatingRepo.EXPECT().Delete(ctx, int64(31)).Return(nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().RatingRepo().Return(txRatingRepo)
	runInTransaction(txManager, ctx, factory)

	require.NoError(t, service.Delete(ctx, 8, 31))
}

func TestRatingService_ListForStore_CrossOwnerMaskedAsNotFound(t *testing.T) {
	service, _, _, storeRepo, _ := newRatingService(t)

	ctx := context.Background()
	storeRepo.EXPECT().FindByID(ctx, int64(21)).
		Return(&entity.Store{ID: 21, OwnerID: 99}, nil)

	ratings, err := service.ListForStore(ctx, 3, 21)

	require.Error(t, err)
	assert.Nil(t, ratings)
	assert.ErrorIs(t, err, domainerrors.ErrStoreNotFound)
}

func TestRatingService_Reply_Success(t *testing.T) {
	service, txManager, accountRepo, _, _ := newRatingService(t)

	ctx := context.Background()
	accountRepo.EXPECT().FindByID(ctx, int64(3)).
		Return(&entity.Account{ID: 3, Role: entity.RoleOwner, Status: entity.StatusActive}, nil)

	txRatingRepo := mockRepo.NewMockRatingRepository(t)
	txRatingRepo.EXPECT().FindByID(ctx, int64(31)).
		Return(&entity.Rating{ID: 31, StoreID: 21, UserID: 8, Score: 4}, nil)
	txRatingRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Rating")).Return(nil)

	txStoreRepo := mockRepo.NewMockStoreRepository(t)
	txStoreRepo.EXPECT().FindByID(ctx, int64(21)).
		Return(&entity.Store{ID: 21, OwnerID: 3}, nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().RatingRepo().Return(txRatingRepo)
	factory.EXPECT().StoreRepo().Return(txStoreRepo)
	runInTransaction(txManager, ctx, factory)

	rating, err := service.Reply(ctx, 3, 31, "  thanks for visiting  ")

	require.NoError(t, err)
	assert.Equal(t, "thanks for visiting", rating.OwnerReply)
}

// Replying to a rating on someone else's store reads as a missing rating.
func TestRatingService_Reply_ForeignStoreMaskedAsNotFound(t *testing.T) {
	service, txManager, accountRepo, _, _ := newRatingService(t)

	ctx := context.Background()
	accountRepo.EXPECT().FindByID(ctx, int64(3)).
		Return(&entity.Account{ID: 3, Role: entity.RoleOwner, Status: entity.StatusActive}, nil)

	txRatingRepo := mockRepo.NewMockRatingRepository(t)
	txRatingRepo.EXPECT().FindByID(ctx, int64(31)).
		Return(&entity.Rating{ID: 31, StoreID: 21, UserID: 8}, nil)

	txStoreRepo := mockRepo.NewMockStoreRepository(t)
	txStoreRepo.EXPECT().FindByID(ctx, int64(21)).
		Return(&entity.Store{ID: 21, OwnerID: 99}, nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().RatingRepo().Return(txRatingRepo)
	factory.EXPECT().StoreRepo().Return(txStoreRepo)
	runInTransaction(txManager, ctx, factory)

	rating, err := service.Reply(ctx, 3, 31, "hello")

	require.Error(t, err)
	assert.Nil(t, rating)
	assert.ErrorIs(t, err, domainerrors.ErrRatingNotFound)
}

func TestRatingService_Reply_PendingOwnerRejected(t *testing.T) {
	service, _, accountRepo, _, _ := newRatingService(t)

	ctx := context.Background()
	accountRepo.EXPECT().FindByID(ctx, int64(3)).
		Return(&entity.Account{ID: 3, Role: entity.RoleOwner, Status: entity.StatusPending}, nil)

	rating, err := service.Reply(ctx, 3, 31, "hello")

	require.Error(t, err)
	assert.Nil(t, rating)
	assert.ErrorIs(t, err, domainerrors.ErrOwnerPending)
}

func TestRatingService_ListOwn_Success(t *testing.T) {
	service, _, _, _, ratingRepo := newRatingService(t)

	ctx := context.Background()
	ratings := []*entity.Rating{{ID: 1, UserID: 8, StoreName: "Corner Bakery"}}
	ratingRepo.EXPECT().List(ctx, repository.RatingFilter{UserID: int64(8)}).Return(ratings, nil)

	got, err := service.ListOwn(ctx, 8)

	require.NoError(t, err)
	assert.Equal(t, ratings, got)
}
