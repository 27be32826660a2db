package dto

import "storehub/internal/api/models"

// StoreListItem is one store in the browse listing, overlaid with the
// calling user's own rating when present.
type StoreListItem struct {
	ID            string  `json:"_id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
	UserRating    *int    `json:"userRating"`
	UserReview    string  `json:"userReview"`
}

// StoreDetailResponse is the full store record plus the caller's rating
type StoreDetailResponse struct {
	ID            string  `json:"_id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	Owner         *Owner  `json:"owner,omitempty"`
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
	UserRating    *int    `json:"userRating"`
}

// Owner names the store owner on detail views
type Owner struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FromModelToStoreListItem converts a Store model to a listing item; the
// user rating overlay is filled in by the service
func FromModelToStoreListItem(store *models.Store) StoreListItem {
	return StoreListItem{
		ID:            store.ID,
		Name:          store.Name,
		Email:         store.Email,
		Address:       store.Address,
		AverageRating: store.AverageRating,
		TotalRatings:  store.TotalRatings,
	}
}

// FromModelToStoreDetail converts a Store model to the detail response
func FromModelToStoreDetail(store *models.Store) *StoreDetailResponse {
	detail := &StoreDetailResponse{
		ID:            store.ID,
		Name:          store.Name,
		Email:         store.Email,
		Address:       store.Address,
		AverageRating: store.AverageRating,
		TotalRatings:  store.TotalRatings,
	}
	if store.Owner != nil {
		detail.Owner = &Owner{
			ID:    store.Owner.ID,
			Name:  store.Owner.Name,
			Email: store.Owner.Email,
		}
	}
	return detail
}
