package service

import (
	"context"
	"math"

	"storehub/internal/api/dto"
	"storehub/internal/api/repository"
)

// Recalculator recomputes a store's cached aggregate (average rating, total
// ratings) from the full current set of its rating records and persists it
// onto the store row in a single write. The recompute is idempotent, so an
// aggregate left inconsistent by a partial failure is corrected by the next
// rating event.
type Recalculator struct {
	ratingRepo repository.RatingRepository
	storeRepo  repository.StoreRepository
}

func NewRecalculator(ratingRepo repository.RatingRepository, storeRepo repository.StoreRepository) *Recalculator {
	return &Recalculator{
		ratingRepo: ratingRepo,
		storeRepo:  storeRepo,
	}
}

// Recalculate derives the aggregate for one store, persists both fields in
// one write, and returns the computed pair so the caller can report it
// without a second read. A store with no ratings gets {0, 0}.
func (rc *Recalculator) Recalculate(ctx context.Context, storeID string) (dto.RatingStats, error) {
	average, total, err := rc.ratingRepo.Aggregate(ctx, storeID)
	if err != nil {
		return dto.RatingStats{}, err
	}

	stats := dto.RatingStats{
		AverageRating: RoundRating(average),
		TotalRatings:  total,
	}
	if total == 0 {
		stats.AverageRating = 0
	}

	if err := rc.storeRepo.UpdateAggregate(ctx, storeID, stats.AverageRating, stats.TotalRatings); err != nil {
		return dto.RatingStats{}, err
	}

	return stats, nil
}

// RoundRating rounds a mean score to one decimal place, half away from
// zero: 3.45 rounds to 3.5. Applied uniformly wherever an average is
// reported.
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}
