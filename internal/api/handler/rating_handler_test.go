package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storehub/internal/api/dto"
	"storehub/internal/api/models"
	"storehub/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRatingService mocks the RatingService interface
type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) SubmitOrUpdate(ctx context.Context, userID, storeID string, score int, review *string) (bool, dto.RatingStats, error) {
	args := m.Called(ctx, userID, storeID, score, review)
	return args.Bool(0), args.Get(1).(dto.RatingStats), args.Error(2)
}

func (m *MockRatingService) DeleteRating(ctx context.Context, userID, storeID string) (dto.RatingStats, error) {
	args := m.Called(ctx, userID, storeID)
	return args.Get(0).(dto.RatingStats), args.Error(1)
}

func (m *MockRatingService) GetStoreRatings(ctx context.Context, storeID string) (*dto.StoreRatingsResponse, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StoreRatingsResponse), args.Error(1)
}

func (m *MockRatingService) GetOwnerStoreRatings(ctx context.Context, ownerID string) (*dto.StoreRatingsResponse, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StoreRatingsResponse), args.Error(1)
}

func (m *MockRatingService) GetPublicStoreRatings(ctx context.Context, storeID string) (*dto.PublicRatingsResponse, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PublicRatingsResponse), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// identityAs stands in for the auth middleware in tests
func identityAs(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("name", "Test User")
		c.Set("role", role)
		c.Next()
	}
}

func passThrough(c *gin.Context) {
	c.Next()
}

func registerRatingRoutes(router *gin.Engine, h *RatingHandler, userID, role string) {
	api := router.Group("/api")
	h.RegisterRoutes(api, identityAs(userID, role), passThrough)
}

func TestSubmitRating_Created(t *testing.T) {
	mockRatingService := new(MockRatingService)
	handler := NewRatingHandler(mockRatingService)
	router := setupRouter()
	registerRatingRoutes(router, handler, "user-1", models.RoleUser)

	stats := dto.RatingStats{AverageRating: 4.5, TotalRatings: 2}
	mockRatingService.On("SubmitOrUpdate", mock.Anything, "user-1", "store-1", 5, (*string)(nil)).
		Return(true, stats, nil)

	body, _ := json.Marshal(dto.SubmitRatingRequest{Rating: 5})
	req, _ := http.NewRequest("POST", "/api/ratings/store-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.SubmitRatingResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.True(t, response.Success)
	assert.Equal(t, "Rating submitted successfully", response.Message)
	assert.Equal(t, 4.5, response.Stats.AverageRating)
	assert.Equal(t, int64(2), response.Stats.TotalRatings)

	mockRatingService.AssertExpectations(t)
}

func TestSubmitRating_UpdatedMessage(t *testing.T) {
	mockRatingService := new(MockRatingService)
	handler := NewRatingHandler(mockRatingService)
	router := setupRouter()
	registerRatingRoutes(router, handler, "user-1", models.RoleUser)

	review := "Better on a second visit"
	stats := dto.RatingStats{AverageRating: 3.7, TotalRatings: 3}
	mockRatingService.On("SubmitOrUpdate", mock.Anything, "user-1", "store-1", 4, &review).
		Return(false, stats, nil)

	body, _ := json.Marshal(dto.SubmitRatingRequest{Rating: 4, Review: &review})
	req, _ := http.NewRequest("POST", "/api/ratings/store-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.SubmitRatingResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Rating updated successfully", response.Message)

	mockRatingService.AssertExpectations(t)
}

func TestSubmitRating_ScoreOutOfRange(t *testing.T) {
	mockRatingService := new(MockRatingService)
	handler := NewRatingHandler(mockRatingService)
	router := setupRouter()
	registerRatingRoutes(router, handler, "user-1", models.RoleUser)

	for _, score := range []int{0, 6} {
		body, _ := json.Marshal(map[string]int{"rating": score})
		req, _ := http.NewRequest("POST", "/api/ratings/store-1", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "rating %d", score)

		var response map[string]string
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "Rating must be between 1 and 5", response["message"])
	}

	mockRatingService.AssertNotCalled(t, "SubmitOrUpdate",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitRating_OversizedReviewMessage(t *testing.T) {
	mockRatingService := new(MockRatingService)
	handler := NewRatingHandler(mockRatingService)
	router := setupRouter()
	registerRatingRoutes(router, handler, "user-1", models.RoleUser)

	review := strings.Repeat("a", 501)
	body, _ := json.Marshal(dto.SubmitRatingRequest{Rating: 4, Review: &review})
	req, _ := http.NewRequest("POST", "/api/ratings/store-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Review cannot exceed 500 characters", response["message"])
	mockRatingService.AssertNotCalled(t, "SubmitOrUpdate",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitRating_StoreNotFound(t *testing.T) {
	mockRatingService := new(MockRatingService)
	handler := NewRatingHandler(mockRatingService)
	router := setupRouter()
	registerRatingRoutes(router, handler, "user-1", models.RoleUser)

	mockRatingService.On("SubmitOrUpdate", mock.Anything, "user-1", "missing-store", 3, (*string)(nil)).
		Return(false, dto.RatingStats{}, service.ErrStoreNotFound)

	body, _ := json.Marshal(dto.SubmitRatingRequest{Rating: 3})
	req, _ := http.NewRequest("POST", "/api/ratings/missing-store", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Store not found", response["message"])
}

func TestSubmitRating_ForbiddenForNonUserRole(t *testing.T) {
	mockRatingService := new(MockRatingService)
	handler := NewRatingHandler(mockRatingService)
	router := setupRouter()
	registerRatingRoutes(router, handler, "owner-1", models.RoleOwner)

	body, _ := json.Marshal(dto.SubmitRatingRequest{Rating: 5})
	req, _ := http.NewRequest("POST", "/api/ratings/store-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockRatingService.AssertNotCalled(t, "SubmitOrUpdate",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteRating_Success(t *testing.T) {
	mockRatingService := new(MockRatingService)
	handler := NewRatingHandler(mockRatingService)
	router := setupRouter()
	registerRatingRoutes(router, handler, "user-1", models.RoleUser)

	stats := dto.RatingStats{AverageRating: 4.0, TotalRatings: 1}
	mockRatingService.On("DeleteRating", mock.Anything, "user-1", "store-1").Return(stats, nil)

	req, _ := http.NewRequest("DELETE", "/api/ratings/store-1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Rating deleted successfully", response["message"])

	mockRatingService.AssertExpectations(t)
}

func TestDeleteRating_NotFound(t *testing.T) {
	mockRatingService := new(MockRatingService)
	handler := NewRatingHandler(mockRatingService)
	router := setupRouter()
	registerRatingRoutes(router, handler, "user-1", models.RoleUser)

	mockRatingService.On("DeleteRating", mock.Anything, "user-1", "store-1").
		Return(dto.RatingStats{}, service.ErrRatingNotFound)

	req, _ := http.NewRequest("DELETE", "/api/ratings/store-1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMyStoreRatings_Success(t *testing.T) {
	mockRatingService := new(MockRatingService)
	handler := NewRatingHandler(mockRatingService)
	router := setupRouter()
	registerRatingRoutes(router, handler, "owner-1", models.RoleOwner)

	response := &dto.StoreRatingsResponse{
		Store: dto.StoreSummary{
			ID:            "store-1",
			Name:          "Corner Grocery",
			AverageRating: 4.2,
			TotalRatings:  5,
		},
		Ratings:      []dto.RatingEntry{},
		TotalRatings: 5,
	}
	mockRatingService.On("GetOwnerStoreRatings", mock.Anything, "owner-1").Return(response, nil)

	req, _ := http.NewRequest("GET", "/api/ratings/my-store", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got dto.StoreRatingsResponse
	json.Unmarshal(w.Body.Bytes(), &got)
	assert.Equal(t, "Corner Grocery", got.Store.Name)
	assert.Equal(t, 4.2, got.Store.AverageRating)

	mockRatingService.AssertExpectations(t)
}

func TestGetMyStoreRatings_ForbiddenForUserRole(t *testing.T) {
	mockRatingService := new(MockRatingService)
	handler := NewRatingHandler(mockRatingService)
	router := setupRouter()
	registerRatingRoutes(router, handler, "user-1", models.RoleUser)

	req, _ := http.NewRequest("GET", "/api/ratings/my-store", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockRatingService.AssertNotCalled(t, "GetOwnerStoreRatings", mock.Anything, mock.Anything)
}

func TestGetMyStoreRatings_NoOwnedStore(t *testing.T) {
	mockRatingService := new(MockRatingService)
	handler := NewRatingHandler(mockRatingService)
	router := setupRouter()
	registerRatingRoutes(router, handler, "owner-1", models.RoleOwner)

	mockRatingService.On("GetOwnerStoreRatings", mock.Anything, "owner-1").
		Return(nil, service.ErrNoOwnedStore)

	req, _ := http.NewRequest("GET", "/api/ratings/my-store", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "No store found for this owner", response["message"])
}

func TestGetPublicStoreRatings_NoAuthNeeded(t *testing.T) {
	mockRatingService := new(MockRatingService)
	handler := NewRatingHandler(mockRatingService)
	router := setupRouter()

	// Auth middleware that rejects everything: the public route must not
	// pass through it
	api := router.Group("/api")
	handler.RegisterRoutes(api, func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	}, passThrough)

	response := &dto.PublicRatingsResponse{
		Ratings: []dto.RatingEntry{
			{
				ID:     "rating-1",
				User:   dto.RatingUser{ID: "user-1", Name: "Reviewer"},
				Rating: 5,
				Review: "Great prices",
			},
		},
		AverageRating: 5.0,
		TotalRatings:  1,
	}
	mockRatingService.On("GetPublicStoreRatings", mock.Anything, "store-1").Return(response, nil)

	req, _ := http.NewRequest("GET", "/api/ratings/public/store-1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got dto.PublicRatingsResponse
	json.Unmarshal(w.Body.Bytes(), &got)
	assert.Len(t, got.Ratings, 1)
	assert.Empty(t, got.Ratings[0].User.Email)
	assert.Equal(t, 5.0, got.AverageRating)

	mockRatingService.AssertExpectations(t)
}

func TestGetStoreRatings_StoreNotFound(t *testing.T) {
	mockRatingService := new(MockRatingService)
	handler := NewRatingHandler(mockRatingService)
	router := setupRouter()
	registerRatingRoutes(router, handler, "admin-1", models.RoleAdmin)

	mockRatingService.On("GetStoreRatings", mock.Anything, "missing-store").
		Return(nil, service.ErrStoreNotFound)

	req, _ := http.NewRequest("GET", "/api/ratings/store/missing-store", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
