package dto

import (
	"time"

	"storehub/internal/api/models"
)

// DashboardStats are the admin landing counters
type DashboardStats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

// CreateUserRequest lets an admin create an account with any role
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=20,max=60"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=16"`
	Address  string `json:"address" binding:"omitempty,max=400"`
	Role     string `json:"role" binding:"omitempty,oneof=USER ADMIN OWNER"`
}

// UpdateUserRequest carries partial updates; nil fields are left untouched
type UpdateUserRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=20,max=60"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address" binding:"omitempty,max=400"`
	Role    *string `json:"role" binding:"omitempty,oneof=USER ADMIN OWNER"`
}

// CreateStoreRequest registers a new store, optionally bound to an owner
type CreateStoreRequest struct {
	Name    string  `json:"name" binding:"required,min=20,max=60"`
	Email   string  `json:"email" binding:"required,email"`
	Address string  `json:"address" binding:"omitempty,max=400"`
	Owner   *string `json:"owner"`
}

// UpdateStoreRequest carries partial updates; nil fields are left untouched
type UpdateStoreRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=20,max=60"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address" binding:"omitempty,max=400"`
	Owner   *string `json:"owner"`
}

// UserResponse is the admin view of an account. OwnedStore is attached for
// OWNER accounts that have a store.
type UserResponse struct {
	ID         string        `json:"_id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Address    string        `json:"address"`
	Role       string        `json:"role"`
	CreatedAt  time.Time     `json:"createdAt"`
	OwnedStore *StoreSummary `json:"store,omitempty"`
}

// FromModelToUserResponse converts a User model to the admin view
func FromModelToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Address:   user.Address,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
