package repository

import (
	"context"
	"fmt"
	"strings"

	"storehub/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoreFilter narrows and orders store listings. Zero values mean "no
// filtering" / default ordering by newest first.
type StoreFilter struct {
	Name    string
	Email   string
	Address string
	SortBy  string
	Order   string
}

type StoreRepository interface {
	Create(ctx context.Context, store *models.Store) error
	Update(ctx context.Context, store *models.Store) error
	GetByID(ctx context.Context, id string) (*models.Store, error)
	GetByEmail(ctx context.Context, email string) (*models.Store, error)
	GetByOwner(ctx context.Context, ownerID string) (*models.Store, error)
	List(ctx context.Context, filter StoreFilter) ([]models.Store, error)
	UpdateAggregate(ctx context.Context, storeID string, averageRating float64, totalRatings int64) error
	CountAll(ctx context.Context) (int64, error)
}

// storeRepository is the GORM implementation of StoreRepository.
type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(ctx context.Context, store *models.Store) error {
	if err := r.db.WithContext(ctx).Create(store).Error; err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	return nil
}

func (r *storeRepository) Update(ctx context.Context, store *models.Store) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(store).Error; err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	return nil
}

func (r *storeRepository) GetByID(ctx context.Context, id string) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).Preload("Owner").First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) GetByEmail(ctx context.Context, email string) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// GetByOwner retrieves the store owned by the given user, if any
func (r *storeRepository) GetByOwner(ctx context.Context, ownerID string) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// List retrieves stores matching the filter, with owner preloaded
func (r *storeRepository) List(ctx context.Context, filter StoreFilter) ([]models.Store, error) {
	query := r.db.WithContext(ctx).Model(&models.Store{}).Preload("Owner")

	if filter.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Email != "" {
		query = query.Where("email ILIKE ?", "%"+filter.Email+"%")
	}
	if filter.Address != "" {
		query = query.Where("address ILIKE ?", "%"+filter.Address+"%")
	}

	query = query.Order(sortClause(filter.SortBy, filter.Order))

	var stores []models.Store
	if err := query.Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// UpdateAggregate persists both aggregate fields in a single write. This is
// the only code path that mutates the cached aggregate.
func (r *storeRepository) UpdateAggregate(ctx context.Context, storeID string, averageRating float64, totalRatings int64) error {
	result := r.db.WithContext(ctx).Model(&models.Store{}).
		Where("id = ?", storeID).
		Updates(map[string]any{
			"average_rating": averageRating,
			"total_ratings":  totalRatings,
		})
	if result.Error != nil {
		return fmt.Errorf("update store aggregate: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *storeRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Store{}).Count(&count).Error
	return count, err
}

// sortClause maps user-supplied sort parameters onto a whitelisted ORDER BY
func sortClause(sortBy, order string) string {
	column := "created_at"
	switch sortBy {
	case "name", "email", "address", "average_rating", "created_at":
		column = sortBy
	}

	direction := "ASC"
	if strings.EqualFold(order, "desc") || (sortBy == "" && order == "") {
		direction = "DESC"
	}

	return column + " " + direction
}
