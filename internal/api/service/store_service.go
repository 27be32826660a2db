package service

import (
	"context"
	"errors"

	"storehub/internal/api/dto"
	"storehub/internal/api/models"
	"storehub/internal/api/repository"

	"gorm.io/gorm"
)

type StoreService interface {
	// List returns stores matching the filter, each overlaid with the
	// calling user's own rating and review when one exists.
	List(ctx context.Context, userID string, filter repository.StoreFilter) ([]dto.StoreListItem, error)
	GetByID(ctx context.Context, storeID, userID string) (*dto.StoreDetailResponse, error)
}

type storeService struct {
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
}

func NewStoreService(storeRepo repository.StoreRepository, ratingRepo repository.RatingRepository) StoreService {
	return &storeService{
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
	}
}

func (s *storeService) List(ctx context.Context, userID string, filter repository.StoreFilter) ([]dto.StoreListItem, error) {
	stores, err := s.storeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	// One query for all of the caller's ratings instead of one per store
	userRatings := map[string]*models.Rating{}
	if userID != "" {
		ratings, err := s.ratingRepo.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		for i := range ratings {
			userRatings[ratings[i].StoreID] = &ratings[i]
		}
	}

	items := make([]dto.StoreListItem, 0, len(stores))
	for i := range stores {
		item := dto.FromModelToStoreListItem(&stores[i])
		if rating, ok := userRatings[stores[i].ID]; ok {
			score := rating.Score
			item.UserRating = &score
			item.UserReview = rating.Review
		}
		items = append(items, item)
	}

	return items, nil
}

func (s *storeService) GetByID(ctx context.Context, storeID, userID string) (*dto.StoreDetailResponse, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	detail := dto.FromModelToStoreDetail(store)

	if userID != "" {
		rating, err := s.ratingRepo.GetByUserAndStore(ctx, userID, storeID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if rating != nil {
			score := rating.Score
			detail.UserRating = &score
		}
	}

	return detail, nil
}
