package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"storehub/internal/api/dto"
	"storehub/internal/api/models"
	"storehub/internal/api/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrStoreNotFound  = errors.New("store not found")
	ErrRatingNotFound = errors.New("rating not found")
	ErrNoOwnedStore   = errors.New("no store found for this owner")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrReviewTooLong  = errors.New("review cannot exceed 500 characters")
)

type RatingService interface {
	// SubmitOrUpdate records a user's rating for a store, creating or
	// replacing their single rating record, then synchronously recalculates
	// the store aggregate. It reports whether a new record was created and
	// the fresh aggregate.
	SubmitOrUpdate(ctx context.Context, userID, storeID string, score int, review *string) (created bool, stats dto.RatingStats, err error)
	DeleteRating(ctx context.Context, userID, storeID string) (dto.RatingStats, error)
	GetStoreRatings(ctx context.Context, storeID string) (*dto.StoreRatingsResponse, error)
	GetOwnerStoreRatings(ctx context.Context, ownerID string) (*dto.StoreRatingsResponse, error)
	GetPublicStoreRatings(ctx context.Context, storeID string) (*dto.PublicRatingsResponse, error)
}

type ratingService struct {
	ratingRepo   repository.RatingRepository
	storeRepo    repository.StoreRepository
	recalculator *Recalculator
	logger       *zap.Logger
}

func NewRatingService(
	ratingRepo repository.RatingRepository,
	storeRepo repository.StoreRepository,
	recalculator *Recalculator,
	logger *zap.Logger,
) RatingService {
	return &ratingService{
		ratingRepo:   ratingRepo,
		storeRepo:    storeRepo,
		recalculator: recalculator,
		logger:       logger,
	}
}

// SubmitOrUpdate enforces one rating record per (user, store). The
// application-level existence check is only an optimization: the unique
// index on (user_id, store_id) is the authoritative guard, and a create
// that loses the race is retried exactly once as an update.
func (s *ratingService) SubmitOrUpdate(ctx context.Context, userID, storeID string, score int, review *string) (bool, dto.RatingStats, error) {
	// Enforced here as well as at the binding layer
	if score < 1 || score > 5 {
		return false, dto.RatingStats{}, ErrInvalidRating
	}
	// Oversized reviews are rejected, never truncated. The bound counts
	// characters, same as the binding tag and the varchar(500) column.
	if review != nil && utf8.RuneCountInString(*review) > models.MaxReviewLength {
		return false, dto.RatingStats{}, ErrReviewTooLong
	}

	if _, err := s.storeRepo.GetByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, dto.RatingStats{}, ErrStoreNotFound
		}
		return false, dto.RatingStats{}, err
	}

	existing, err := s.ratingRepo.GetByUserAndStore(ctx, userID, storeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, dto.RatingStats{}, err
	}

	created := false
	if existing != nil {
		if err := s.applyUpdate(ctx, existing, score, review); err != nil {
			return false, dto.RatingStats{}, err
		}
	} else {
		newRating := &models.Rating{
			UserID:  userID,
			StoreID: storeID,
			Score:   score,
		}
		if review != nil {
			newRating.Review = *review
		}

		switch err := s.ratingRepo.Create(ctx, newRating); {
		case err == nil:
			created = true
		case errors.Is(err, repository.ErrDuplicateRating):
			// A concurrent submission won the create race; fall back to
			// updating the record it left behind.
			raced, ferr := s.ratingRepo.GetByUserAndStore(ctx, userID, storeID)
			if ferr != nil {
				return false, dto.RatingStats{}, ferr
			}
			if uerr := s.applyUpdate(ctx, raced, score, review); uerr != nil {
				return false, dto.RatingStats{}, uerr
			}
		default:
			return false, dto.RatingStats{}, err
		}
	}

	// Recalculation runs synchronously as part of the same operation, so the
	// response never reports stale stats. If it fails after the record write
	// committed, retry once before surfacing the failure; the aggregate
	// self-heals on the next rating event either way.
	stats, err := s.recalculator.Recalculate(ctx, storeID)
	if err != nil {
		s.logger.Warn("aggregate recalculation failed, retrying",
			zap.String("store_id", storeID), zap.Error(err))
		stats, err = s.recalculator.Recalculate(ctx, storeID)
		if err != nil {
			return created, dto.RatingStats{}, err
		}
	}

	return created, stats, nil
}

// applyUpdate replaces the score and, only when the submission explicitly
// supplied a review value, the review text. A nil review preserves the
// existing text; an explicit empty string clears it.
func (s *ratingService) applyUpdate(ctx context.Context, rating *models.Rating, score int, review *string) error {
	rating.Score = score
	if review != nil {
		rating.Review = *review
	}
	return s.ratingRepo.Update(ctx, rating)
}

// DeleteRating removes the caller's rating and recalculates the aggregate
func (s *ratingService) DeleteRating(ctx context.Context, userID, storeID string) (dto.RatingStats, error) {
	if _, err := s.storeRepo.GetByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RatingStats{}, ErrStoreNotFound
		}
		return dto.RatingStats{}, err
	}

	if err := s.ratingRepo.Delete(ctx, userID, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RatingStats{}, ErrRatingNotFound
		}
		return dto.RatingStats{}, err
	}

	return s.recalculator.Recalculate(ctx, storeID)
}

// GetStoreRatings lists a store's ratings for admin and owner dashboards.
// The aggregate comes from the store row's current persisted state; reads
// never recompute it.
func (s *ratingService) GetStoreRatings(ctx context.Context, storeID string) (*dto.StoreRatingsResponse, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	return s.buildStoreRatings(ctx, store)
}

// GetOwnerStoreRatings resolves the caller's own store and lists its ratings
func (s *ratingService) GetOwnerStoreRatings(ctx context.Context, ownerID string) (*dto.StoreRatingsResponse, error) {
	store, err := s.storeRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoOwnedStore
		}
		return nil, err
	}

	return s.buildStoreRatings(ctx, store)
}

// GetPublicStoreRatings lists a store's ratings with reviewer names only
func (s *ratingService) GetPublicStoreRatings(ctx context.Context, storeID string) (*dto.PublicRatingsResponse, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	ratings, err := s.ratingRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.RatingEntry, 0, len(ratings))
	for i := range ratings {
		entries = append(entries, dto.FromModelToPublicRatingEntry(&ratings[i]))
	}

	return &dto.PublicRatingsResponse{
		Ratings:       entries,
		AverageRating: store.AverageRating,
		TotalRatings:  store.TotalRatings,
	}, nil
}

func (s *ratingService) buildStoreRatings(ctx context.Context, store *models.Store) (*dto.StoreRatingsResponse, error) {
	ratings, err := s.ratingRepo.ListByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.RatingEntry, 0, len(ratings))
	for i := range ratings {
		entries = append(entries, dto.FromModelToRatingEntry(&ratings[i]))
	}

	return &dto.StoreRatingsResponse{
		Store:        dto.FromModelToStoreSummary(store),
		Ratings:      entries,
		TotalRatings: store.TotalRatings,
	}, nil
}
