package dto

import (
	"time"

	"storehub/internal/api/models"
)

// SubmitRatingRequest for creating or updating a rating. Review is a pointer
// so an omitted field can be told apart from an explicit empty string: an
// omitted review leaves any existing text untouched on update.
type SubmitRatingRequest struct {
	Rating int     `json:"rating" binding:"required,min=1,max=5"`
	Review *string `json:"review" binding:"omitempty,max=500"`
}

// RatingStats is the aggregate cached on a store: mean score rounded to one
// decimal, and the number of rating records.
type RatingStats struct {
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
}

// SubmitRatingResponse echoes the freshly recalculated aggregate so callers
// never need a second read.
type SubmitRatingResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Stats   RatingStats `json:"stats"`
}

// RatingUser identifies the reviewer on authenticated listings
type RatingUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// RatingEntry is one rating in a store's listing
type RatingEntry struct {
	ID        string     `json:"_id"`
	User      RatingUser `json:"user"`
	Rating    int        `json:"rating"`
	Review    string     `json:"review"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// StoreSummary is the store header on ratings listings
type StoreSummary struct {
	ID            string  `json:"_id"`
	Name          string  `json:"name"`
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
}

// StoreRatingsResponse for admin / owner dashboards
type StoreRatingsResponse struct {
	Store        StoreSummary  `json:"store"`
	Ratings      []RatingEntry `json:"ratings"`
	TotalRatings int64         `json:"totalRatings"`
}

// PublicRatingsResponse exposes reviewer names only
type PublicRatingsResponse struct {
	Ratings       []RatingEntry `json:"ratings"`
	AverageRating float64       `json:"averageRating"`
	TotalRatings  int64         `json:"totalRatings"`
}

// FromModelToRatingEntry converts a Rating model to a listing entry
func FromModelToRatingEntry(rating *models.Rating) RatingEntry {
	return RatingEntry{
		ID: rating.ID,
		User: RatingUser{
			ID:    rating.User.ID,
			Name:  rating.User.Name,
			Email: rating.User.Email,
		},
		Rating:    rating.Score,
		Review:    rating.Review,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
}

// FromModelToPublicRatingEntry converts a Rating model to a public entry,
// dropping the reviewer's email
func FromModelToPublicRatingEntry(rating *models.Rating) RatingEntry {
	entry := FromModelToRatingEntry(rating)
	entry.User.Email = ""
	return entry
}

// FromModelToStoreSummary builds the store header from the persisted
// aggregate fields
func FromModelToStoreSummary(store *models.Store) StoreSummary {
	return StoreSummary{
		ID:            store.ID,
		Name:          store.Name,
		AverageRating: store.AverageRating,
		TotalRatings:  store.TotalRatings,
	}
}
