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

// storeRepository implements the repository.StoreRepository interface using
// GORM. Rating aggregates are computed in the listing queries via a LEFT JOIN
// so unrated stores still appear with a zero average.
type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository is the constructor for storeRepository.
func NewStoreRepository(db *gorm.DB) repository.StoreRepository {
	return &storeRepository{db: db}
}

const storeStatsSelect = "stores.*, COALESCE(AVG(ratings.score), 0) AS average_rating, COUNT(ratings.id) AS rating_count"

// Create persists a new store.
func (repo *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)

	if err := repo.db.WithContext(ctx).Create(storeM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAccountNotFound.WrapMessage("store owner does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create store")
	}

	store.ID = storeM.ID
	store.CreatedAt = storeM.CreatedAt
	store.UpdatedAt = storeM.UpdatedAt

	return nil
}

// FindByID retrieves a single store with its rating aggregates.
func (repo *storeRepository) FindByID(ctx context.Context, id int64) (*entity.Store, error) {
	var storeM model.StoreWithStatsModel

	err := repo.db.WithContext(ctx).
		Table("stores").
		Select(storeStatsSelect).
		Joins("LEFT JOIN ratings ON ratings.store_id = stores.id").
		Where("stores.id = ?", id).
		Group("stores.id").
		Take(&storeM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by id")
	}

	return toStoreDomainWithStats(&storeM), nil
}

// Update modifies an existing store.
func (repo *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)

	if err := repo.db.WithContext(ctx).Save(storeM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update store")
	}

	store.UpdatedAt = storeM.UpdatedAt

	return nil
}

// Delete removes a store. Ratings cascade at the schema level.
func (repo *storeRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.StoreModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete store")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStoreNotFound
	}

	return nil
}

// List returns stores matching the filter with rating aggregates, newest first.
func (repo *storeRepository) List(ctx context.Context, filter repository.StoreFilter) ([]*entity.Store, error) {
	var storeModels []model.StoreWithStatsModel

	query := repo.db.WithContext(ctx).
		Table("stores").
		Select(storeStatsSelect).
		Joins("LEFT JOIN ratings ON ratings.store_id = stores.id").
		Group("stores.id").
		Order("stores.created_at DESC")
	query = applyStoreFilter(query, filter)

	if err := query.Find(&storeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	stores := make([]*entity.Store, 0, len(storeModels))
	for i := range storeModels {
		stores = append(stores, toStoreDomainWithStats(&storeModels[i]))
	}

	return stores, nil
}

// Count returns the number of stores matching the filter.
func (repo *storeRepository) Count(ctx context.Context, filter repository.StoreFilter) (int64, error) {
	var count int64

	query := applyStoreFilter(repo.db.WithContext(ctx).Model(&model.StoreModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count stores")
	}

	return count, nil
}

func applyStoreFilter(query *gorm.DB, filter repository.StoreFilter) *gorm.DB {
	if filter.OwnerID != 0 {
		query = query.Where("stores.owner_id = ?", filter.OwnerID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("stores.name ILIKE ? OR stores.address ILIKE ?", pattern, pattern)
	}

	return query
}

// --- Mapper functions ---

func toStoreDomainWithStats(data *model.StoreWithStatsModel) *entity.Store {
	if data == nil {
		return nil
	}

	store := toStoreDomain(&data.StoreModel)
	store.AverageRating = data.AverageRating
	store.RatingCount = data.RatingCount

	return store
}

func toStoreDomain(data *model.StoreModel) *entity.Store {
	if data == nil {
		return nil
	}

	return &entity.Store{
		ID:        data.ID,
		Name:      data.Name,
		Email:     data.Email,
		Address:   data.Address,
		OwnerID:   data.OwnerID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromStoreDomain(data *entity.Store) *model.StoreModel {
	if data == nil {
		return nil
	}

	return &model.StoreModel{
		ID:        data.ID,
		Name:      data.Name,
		Email:     data.Email,
		Address:   data.Address,
		OwnerID:   data.OwnerID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
