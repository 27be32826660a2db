package repository

import (
	"context"
	"errors"

	"storehub/internal/api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateRating is returned when a create loses the race on the
// (user_id, store_id) unique index. The index is the authoritative guard;
// callers fall back to an update.
var ErrDuplicateRating = errors.New("rating already exists for this user and store")

type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	Update(ctx context.Context, rating *models.Rating) error
	Delete(ctx context.Context, userID, storeID string) error
	GetByUserAndStore(ctx context.Context, userID, storeID string) (*models.Rating, error)
	ListByStore(ctx context.Context, storeID string) ([]models.Rating, error)
	ListByUser(ctx context.Context, userID string) ([]models.Rating, error)
	Aggregate(ctx context.Context, storeID string) (float64, int64, error)
	CountAll(ctx context.Context) (int64, error)
}

// ratingRepository is the GORM implementation of RatingRepository.
type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create inserts a new rating. A unique violation on (user_id, store_id) is
// mapped to ErrDuplicateRating.
func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(rating).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateRating
		}
		return err
	}
	return nil
}

// Update persists new score/review values on an existing rating
func (r *ratingRepository) Update(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(rating).Error
}

// Delete removes a user's rating for a store
func (r *ratingRepository) Delete(ctx context.Context, userID, storeID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		Delete(&models.Rating{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetByUserAndStore retrieves a user's rating for a specific store
func (r *ratingRepository) GetByUserAndStore(ctx context.Context, userID, storeID string) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListByStore retrieves all ratings for a store, most recent first
func (r *ratingRepository) ListByStore(ctx context.Context, storeID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Preload("User").
		Order("created_at DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// ListByUser retrieves all ratings submitted by a user
func (r *ratingRepository) ListByUser(ctx context.Context, userID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// Aggregate computes the mean score and record count for a store in one
// pass over its current ratings. An empty set yields (0, 0).
func (r *ratingRepository) Aggregate(ctx context.Context, storeID string) (float64, int64, error) {
	var agg struct {
		Average float64
		Total   int64
	}

	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Select("COALESCE(AVG(rating), 0) as average, COUNT(*) as total").
		Where("store_id = ?", storeID).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, err
	}

	return agg.Average, agg.Total, nil
}

// CountAll counts ratings across all stores (admin dashboard)
func (r *ratingRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Rating{}).Count(&count).Error
	return count, err
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
