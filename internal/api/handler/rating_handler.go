package handler

import (
	"errors"
	"net/http"

	"storehub/internal/api/dto"
	"storehub/internal/api/middleware"
	"storehub/internal/api/models"
	"storehub/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	msgRatingSubmitted = "Rating submitted successfully"
	msgRatingUpdated   = "Rating updated successfully"
)

// submitBindMessage tells an oversized review apart from a bad score, so
// the client sees the bound it actually violated.
func submitBindMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "Review" {
				return "Review cannot exceed 500 characters"
			}
		}
	}
	return "Rating must be between 1 and 5"
}

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// RegisterRoutes registers rating-related routes
func (h *RatingHandler) RegisterRoutes(router *gin.RouterGroup, authRequired, submitLimit gin.HandlerFunc) {
	ratings := router.Group("/ratings")
	{
		// Public route, reviewer identity limited to name
		ratings.GET("/public/:storeId", h.GetPublicStoreRatings)

		authed := ratings.Group("", authRequired)
		{
			authed.POST("/:storeId", middleware.RequireRole(models.RoleUser), submitLimit, h.SubmitOrUpdate)
			authed.DELETE("/:storeId", middleware.RequireRole(models.RoleUser), h.Delete)
			authed.GET("/my-store", middleware.RequireRole(models.RoleOwner), h.GetMyStoreRatings)
			authed.GET("/store/:storeId", h.GetStoreRatings)
		}
	}
}

// SubmitOrUpdate records the caller's rating for a store
// POST /api/ratings/:storeId
func (h *RatingHandler) SubmitOrUpdate(c *gin.Context) {
	storeID := c.Param("storeId")
	userID := c.GetString("userID")

	var req dto.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": submitBindMessage(err)})
		return
	}

	created, stats, err := h.ratingService.SubmitOrUpdate(c.Request.Context(), userID, storeID, req.Rating, req.Review)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating), errors.Is(err, service.ErrReviewTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		case errors.Is(err, service.ErrStoreNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Store not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		}
		return
	}

	message := msgRatingUpdated
	if created {
		message = msgRatingSubmitted
	}

	c.JSON(http.StatusOK, dto.SubmitRatingResponse{
		Success: true,
		Message: message,
		Stats:   stats,
	})
}

// Delete removes the caller's rating for a store
// DELETE /api/ratings/:storeId
func (h *RatingHandler) Delete(c *gin.Context) {
	storeID := c.Param("storeId")
	userID := c.GetString("userID")

	stats, err := h.ratingService.DeleteRating(c.Request.Context(), userID, storeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Store not found"})
		case errors.Is(err, service.ErrRatingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Rating not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Rating deleted successfully",
		"stats":   stats,
	})
}

// GetStoreRatings lists a store's ratings for dashboards
// GET /api/ratings/store/:storeId
func (h *RatingHandler) GetStoreRatings(c *gin.Context) {
	storeID := c.Param("storeId")

	response, err := h.ratingService.GetStoreRatings(c.Request.Context(), storeID)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Store not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetMyStoreRatings lists ratings for the store the caller owns
// GET /api/ratings/my-store
func (h *RatingHandler) GetMyStoreRatings(c *gin.Context) {
	userID := c.GetString("userID")

	response, err := h.ratingService.GetOwnerStoreRatings(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoOwnedStore) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No store found for this owner"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetPublicStoreRatings lists a store's ratings without authentication
// GET /api/ratings/public/:storeId
func (h *RatingHandler) GetPublicStoreRatings(c *gin.Context) {
	storeID := c.Param("storeId")

	response, err := h.ratingService.GetPublicStoreRatings(c.Request.Context(), storeID)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Store not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, response)
}
