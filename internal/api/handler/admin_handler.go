package handler

import (
	"errors"
	"net/http"

	"storehub/internal/api/dto"
	"storehub/internal/api/middleware"
	"storehub/internal/api/models"
	"storehub/internal/api/repository"
	"storehub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// RegisterRoutes registers admin routes; everything requires the ADMIN role
func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup, authRequired gin.HandlerFunc) {
	admin := router.Group("/admin", authRequired, middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/dashboard", h.Dashboard)
		admin.GET("/users", h.ListUsers)
		admin.GET("/users/:id", h.GetUser)
		admin.POST("/users", h.CreateUser)
		admin.PUT("/users/:id", h.UpdateUser)
		admin.GET("/stores", h.ListStores)
		admin.POST("/stores", h.CreateStore)
		admin.PUT("/stores/:id", h.UpdateStore)
	}
}

// Dashboard returns platform-wide counters
// GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListUsers returns accounts matching the filter
// GET /api/admin/users?name=&email=&address=&role=&sortBy=&order=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	filter := repository.UserFilter{
		Name:    c.Query("name"),
		Email:   c.Query("email"),
		Address: c.Query("address"),
		Role:    c.Query("role"),
		SortBy:  c.Query("sortBy"),
		Order:   c.Query("order"),
	}

	users, err := h.adminService.ListUsers(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUser returns one account, with the owned store for OWNER accounts
// GET /api/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.adminService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateUser creates an account with any role
// POST /api/admin/users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.adminService.CreateUser(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailInUse):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered"})
		case errors.Is(err, service.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUser applies a partial update to an account
// PUT /api/admin/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.adminService.UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case errors.Is(err, service.ErrEmailInUse):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already in use"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListStores returns stores matching the filter, owner preloaded
// GET /api/admin/stores?name=&email=&address=&sortBy=&order=
func (h *AdminHandler) ListStores(c *gin.Context) {
	filter := repository.StoreFilter{
		Name:    c.Query("name"),
		Email:   c.Query("email"),
		Address: c.Query("address"),
		SortBy:  c.Query("sortBy"),
		Order:   c.Query("order"),
	}

	stores, err := h.adminService.ListStores(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, stores)
}

// CreateStore registers a new store
// POST /api/admin/stores
func (h *AdminHandler) CreateStore(c *gin.Context) {
	var req dto.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	store, err := h.adminService.CreateStore(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrStoreEmailInUse) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "A store with this email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, store)
}

// UpdateStore applies a partial update to a store
// PUT /api/admin/stores/:id
func (h *AdminHandler) UpdateStore(c *gin.Context) {
	var req dto.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	store, err := h.adminService.UpdateStore(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Store not found"})
		case errors.Is(err, service.ErrStoreEmailInUse):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already in use"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		}
		return
	}

	c.JSON(http.StatusOK, store)
}
