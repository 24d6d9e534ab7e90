package postgres

import (
	"context"

	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"
	"ratehub/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ratingRepository implements the repository.RatingRepository interface
// using GORM.
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository is the constructor for ratingRepository.
func NewRatingRepository(db *gorm.DB) repository.RatingRepository {
	return &ratingRepository{db: db}
}

const ratingNamesSelect = "ratings.*, accounts.name AS user_name, stores.name AS store_name"

// Create persists a new rating. The unique (store_id, user_id) index is the
// authoritative duplicate check; its violation maps to the Conflict domain
// error so two concurrent submissions cannot both land.
func (repo *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	ratingM := fromRatingDomain(rating)

	if err := repo.db.WithContext(ctx).Create(ratingM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateRating.WrapMessage("rating already exists for this store and user")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrStoreNotFound.WrapMessage("rated store does not exist")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidScore.WrapMessage("score outside allowed bounds")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create rating")
	}

	rating.ID = ratingM.ID
	rating.CreatedAt = ratingM.CreatedAt
	rating.UpdatedAt = ratingM.UpdatedAt

	return nil
}

// FindByID retrieves a single rating by its unique ID.
func (repo *ratingRepository) FindByID(ctx context.Context, id int64) (*entity.Rating, error) {
	var ratingM model.RatingModel
	if err := repo.db.WithContext(ctx).First(&ratingM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRatingNotFound
		}

		return nil, errors.Wrap(err, "failed to find rating by id")
	}

	return toRatingDomain(&ratingM), nil
}

// FindByStoreAndUser retrieves the rating a user left for a store.
func (repo *ratingRepository) FindByStoreAndUser(ctx context.Context, storeID, userID int64) (*entity.Rating, error) {
	var ratingM model.RatingModel
	err := repo.db.WithContext(ctx).
		Where("store_id = ? AND user_id = ?", storeID, userID).
		First(&ratingM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRatingNotFound
		}

		return nil, errors.Wrap(err, "failed to find rating by store and user")
	}

	return toRatingDomain(&ratingM), nil
}

// Update modifies an existing rating.
func (repo *ratingRepository) Update(ctx context.Context, rating *entity.Rating) error {
	ratingM := fromRatingDomain(rating)

	if err := repo.db.WithContext(ctx).Save(ratingM).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidScore.WrapMessage("score outside allowed bounds")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update rating")
	}

	rating.UpdatedAt = ratingM.UpdatedAt

	return nil
}

// Delete removes a rating by ID.
func (repo *ratingRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.RatingModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete rating")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRatingNotFound
	}

	return nil
}

// List returns ratings matching the filter with author and store display
// names populated, newest first.
func (repo *ratingRepository) List(ctx context.Context, filter repository.RatingFilter) ([]*entity.Rating, error) {
	var ratingModels []model.RatingWithNamesModel

	query := repo.db.WithContext(ctx).
		Table("ratings").
		Select(ratingNamesSelect).
		Joins("JOIN accounts ON accounts.id = ratings.user_id").
		Joins("JOIN stores ON stores.id = ratings.store_id").
		Order("ratings.created_at DESC")
	query = applyRatingFilter(query, filter)

	if err := query.Find(&ratingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list ratings")
	}

	ratings := make([]*entity.Rating, 0, len(ratingModels))
	for i := range ratingModels {
		ratings = append(ratings, toRatingDomainWithNames(&ratingModels[i]))
	}

	return ratings, nil
}

// Count returns the number of ratings matching the filter.
func (repo *ratingRepository) Count(ctx context.Context, filter repository.RatingFilter) (int64, error) {
	var count int64

	query := applyRatingFilter(repo.db.WithContext(ctx).Model(&model.RatingModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count ratings")
	}

	return count, nil
}

// DistributionByStore returns the score histogram for a store. Scores with
// no ratings are present with a zero count so dashboards always render the
// full 1..5 range.
func (repo *ratingRepository) DistributionByStore(ctx context.Context, storeID int64) (entity.RatingDistribution, error) {
	type bucket struct {
		Score int
		Count int64
	}

	var buckets []bucket
	err := repo.db.WithContext(ctx).
		Table("ratings").
		Select("score, COUNT(*) AS count").
		Where("store_id = ?", storeID).
		Group("score").
		Find(&buckets).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load rating distribution")
	}

	distribution := make(entity.RatingDistribution, entity.MaxScore)
	for score := entity.MinScore; score <= entity.MaxScore; score++ {
		distribution[score] = 0
	}
	for _, b := range buckets {
		distribution[b.Score] = b.Count
	}

	return distribution, nil
}

func applyRatingFilter(query *gorm.DB, filter repository.RatingFilter) *gorm.DB {
	if filter.StoreID != 0 {
		query = query.Where("ratings.store_id = ?", filter.StoreID)
	}
	if filter.UserID != 0 {
		query = query.Where("ratings.user_id = ?", filter.UserID)
	}

	return query
}

// --- Mapper functions ---

func toRatingDomainWithNames(data *model.RatingWithNamesModel) *entity.Rating {
	if data == nil {
		return nil
	}

	rating := toRatingDomain(&data.RatingModel)
	rating.UserName = data.UserName
	rating.StoreName = data.StoreName

	return rating
}

func toRatingDomain(data *model.RatingModel) *entity.Rating {
	if data == nil {
		return nil
	}

	return &entity.Rating{
		ID:         data.ID,
		StoreID:    data.StoreID,
		UserID:     data.UserID,
		Score:      data.Score,
		Comment:    data.Comment,
		OwnerReply: data.OwnerReply,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func fromRatingDomain(data *entity.Rating) *model.RatingModel {
	if data == nil {
		return nil
	}

	return &model.RatingModel{
		ID:         data.ID,
		StoreID:    data.StoreID,
		UserID:     data.UserID,
		Score:      data.Score,
		Comment:    data.Comment,
		OwnerReply: data.OwnerReply,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
