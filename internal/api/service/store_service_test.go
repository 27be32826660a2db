package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"storehub/internal/api/models"
	"storehub/internal/api/repository"
)

func TestStoreList_OverlaysCallerRatings(t *testing.T) {
	storeRepo := new(MockStoreRepository)
	ratingRepo := new(MockRatingRepository)
	svc := NewStoreService(storeRepo, ratingRepo)

	stores := []models.Store{
		{ID: "store-1", Name: "Corner Grocery", AverageRating: 4.2, TotalRatings: 5},
		{ID: "store-2", Name: "Book Nook", AverageRating: 3.5, TotalRatings: 2},
	}
	storeRepo.On("List", mock.Anything, repository.StoreFilter{}).Return(stores, nil).Once()

	// Caller has rated only store-2
	ratingRepo.On("ListByUser", mock.Anything, "user-1").Return([]models.Rating{
		{ID: "rating-1", UserID: "user-1", StoreID: "store-2", Score: 4, Review: "Cozy place"},
	}, nil).Once()

	items, err := svc.List(context.Background(), "user-1", repository.StoreFilter{})

	assert.NoError(t, err)
	assert.Len(t, items, 2)

	assert.Nil(t, items[0].UserRating)
	assert.Empty(t, items[0].UserReview)
	assert.Equal(t, 4.2, items[0].AverageRating)

	if assert.NotNil(t, items[1].UserRating) {
		assert.Equal(t, 4, *items[1].UserRating)
	}
	assert.Equal(t, "Cozy place", items[1].UserReview)

	ratingRepo.AssertNumberOfCalls(t, "ListByUser", 1)
}

func TestStoreList_AnonymousSkipsRatingLookup(t *testing.T) {
	storeRepo := new(MockStoreRepository)
	ratingRepo := new(MockRatingRepository)
	svc := NewStoreService(storeRepo, ratingRepo)

	stores := []models.Store{{ID: "store-1", Name: "Corner Grocery"}}
	storeRepo.On("List", mock.Anything, repository.StoreFilter{}).Return(stores, nil).Once()

	items, err := svc.List(context.Background(), "", repository.StoreFilter{})

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Nil(t, items[0].UserRating)
	ratingRepo.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
}

func TestStoreGetByID_IncludesCallerRating(t *testing.T) {
	storeRepo := new(MockStoreRepository)
	ratingRepo := new(MockRatingRepository)
	svc := NewStoreService(storeRepo, ratingRepo)

	store := &models.Store{
		ID:            "store-1",
		Name:          "Corner Grocery",
		AverageRating: 4.2,
		TotalRatings:  5,
		Owner:         &models.User{ID: "owner-1", Name: "Store Owner", Email: "owner@example.com"},
	}
	storeRepo.On("GetByID", mock.Anything, "store-1").Return(store, nil).Once()
	ratingRepo.On("GetByUserAndStore", mock.Anything, "user-1", "store-1").
		Return(&models.Rating{Score: 5}, nil).Once()

	detail, err := svc.GetByID(context.Background(), "store-1", "user-1")

	assert.NoError(t, err)
	if assert.NotNil(t, detail.UserRating) {
		assert.Equal(t, 5, *detail.UserRating)
	}
	if assert.NotNil(t, detail.Owner) {
		assert.Equal(t, "Store Owner", detail.Owner.Name)
	}
}

func TestStoreGetByID_NoRatingYet(t *testing.T) {
	storeRepo := new(MockStoreRepository)
	ratingRepo := new(MockRatingRepository)
	svc := NewStoreService(storeRepo, ratingRepo)

	store := &models.Store{ID: "store-1", Name: "Corner Grocery"}
	storeRepo.On("GetByID", mock.Anything, "store-1").Return(store, nil).Once()
	ratingRepo.On("GetByUserAndStore", mock.Anything, "user-1", "store-1").
		Return(nil, gorm.ErrRecordNotFound).Once()

	detail, err := svc.GetByID(context.Background(), "store-1", "user-1")

	assert.NoError(t, err)
	assert.Nil(t, detail.UserRating)
}

func TestStoreGetByID_UnknownStore(t *testing.T) {
	storeRepo := new(MockStoreRepository)
	ratingRepo := new(MockRatingRepository)
	svc := NewStoreService(storeRepo, ratingRepo)

	storeRepo.On("GetByID", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := svc.GetByID(context.Background(), "missing", "user-1")

	assert.ErrorIs(t, err, ErrStoreNotFound)
	ratingRepo.AssertNotCalled(t, "GetByUserAndStore", mock.Anything, mock.Anything, mock.Anything)
}
