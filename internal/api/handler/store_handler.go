package handler

import (
	"errors"
	"net/http"

	"storehub/internal/api/repository"
	"storehub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type StoreHandler struct {
	storeService service.StoreService
}

func NewStoreHandler(storeService service.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// RegisterRoutes registers store browsing routes
func (h *StoreHandler) RegisterRoutes(router *gin.RouterGroup, authRequired gin.HandlerFunc) {
	stores := router.Group("/stores", authRequired)
	{
		stores.GET("", h.List)
		stores.GET("/:id", h.Get)
	}
}

// List returns stores with the caller's rating overlaid
// GET /api/stores?name=&address=&sortBy=&order=
func (h *StoreHandler) List(c *gin.Context) {
	userID := c.GetString("userID")

	filter := repository.StoreFilter{
		Name:    c.Query("name"),
		Address: c.Query("address"),
		SortBy:  c.Query("sortBy"),
		Order:   c.Query("order"),
	}

	stores, err := h.storeService.List(c.Request.Context(), userID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, stores)
}

// Get returns a single store with the caller's rating
// GET /api/stores/:id
func (h *StoreHandler) Get(c *gin.Context) {
	userID := c.GetString("userID")

	store, err := h.storeService.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Store not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, store)
}
