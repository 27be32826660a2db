package service

import (
	"context"
	"errors"

	"storehub/internal/api/dto"
	"storehub/internal/api/models"
	"storehub/internal/api/repository"
	"storehub/internal/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrStoreEmailInUse = errors.New("a store with this email already exists")

type AdminService interface {
	GetDashboard(ctx context.Context) (dto.DashboardStats, error)
	ListUsers(ctx context.Context, filter repository.UserFilter) ([]dto.UserResponse, error)
	GetUserByID(ctx context.Context, userID string) (*dto.UserResponse, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	ListStores(ctx context.Context, filter repository.StoreFilter) ([]models.Store, error)
	CreateStore(ctx context.Context, req dto.CreateStoreRequest) (*models.Store, error)
	UpdateStore(ctx context.Context, storeID string, req dto.UpdateStoreRequest) (*models.Store, error)
}

type adminService struct {
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
	authSvc    AuthService
	dashboard  *cache.DashboardCache
	logger     *zap.Logger
}

func NewAdminService(
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	ratingRepo repository.RatingRepository,
	authSvc AuthService,
	dashboard *cache.DashboardCache,
	logger *zap.Logger,
) AdminService {
	return &adminService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		authSvc:    authSvc,
		dashboard:  dashboard,
		logger:     logger,
	}
}

// GetDashboard serves the landing counters from the Redis cache when fresh,
// falling back to three COUNT queries.
func (s *adminService) GetDashboard(ctx context.Context) (dto.DashboardStats, error) {
	if cached, err := s.dashboard.Get(ctx); err != nil {
		s.logger.Warn("dashboard cache read failed", zap.Error(err))
	} else if cached != nil {
		return *cached, nil
	}

	totalUsers, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return dto.DashboardStats{}, err
	}
	totalStores, err := s.storeRepo.CountAll(ctx)
	if err != nil {
		return dto.DashboardStats{}, err
	}
	totalRatings, err := s.ratingRepo.CountAll(ctx)
	if err != nil {
		return dto.DashboardStats{}, err
	}

	stats := dto.DashboardStats{
		TotalUsers:   totalUsers,
		TotalStores:  totalStores,
		TotalRatings: totalRatings,
	}

	if err := s.dashboard.Set(ctx, stats); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.Error(err))
	}

	return stats, nil
}

func (s *adminService) ListUsers(ctx context.Context, filter repository.UserFilter) ([]dto.UserResponse, error) {
	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.FromModelToUserResponse(&users[i]))
	}
	return responses, nil
}

// GetUserByID returns the account; for OWNER accounts the owned store's
// aggregate is attached.
func (s *adminService) GetUserByID(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	response := dto.FromModelToUserResponse(user)

	if user.Role == models.RoleOwner {
		store, err := s.storeRepo.GetByOwner(ctx, user.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if store != nil {
			summary := dto.FromModelToStoreSummary(store)
			response.OwnedStore = &summary
		}
	}

	return &response, nil
}

func (s *adminService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	user, err := s.authSvc.Register(ctx, req.Name, req.Email, req.Password, req.Address, req.Role)
	if err != nil {
		return nil, err
	}

	if err := s.dashboard.Invalidate(ctx); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}

	response := dto.FromModelToUserResponse(user)
	return &response, nil
}

func (s *adminService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(ctx, *req.Email); err == nil {
			return nil, ErrEmailInUse
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	response := dto.FromModelToUserResponse(user)
	return &response, nil
}

func (s *adminService) ListStores(ctx context.Context, filter repository.StoreFilter) ([]models.Store, error) {
	return s.storeRepo.List(ctx, filter)
}

func (s *adminService) CreateStore(ctx context.Context, req dto.CreateStoreRequest) (*models.Store, error) {
	if _, err := s.storeRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrStoreEmailInUse
	}

	store := &models.Store{
		ID:      uuid.New().String(),
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.Owner,
	}

	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, err
	}

	if err := s.dashboard.Invalidate(ctx); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}

	return store, nil
}

func (s *adminService) UpdateStore(ctx context.Context, storeID string, req dto.UpdateStoreRequest) (*models.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	if req.Email != nil && *req.Email != store.Email {
		if _, err := s.storeRepo.GetByEmail(ctx, *req.Email); err == nil {
			return nil, ErrStoreEmailInUse
		}
		store.Email = *req.Email
	}
	if req.Name != nil {
		store.Name = *req.Name
	}
	if req.Address != nil {
		store.Address = *req.Address
	}
	if req.Owner != nil {
		if *req.Owner == "" {
			store.OwnerID = nil
		} else {
			store.OwnerID = req.Owner
		}
	}

	if err := s.storeRepo.Update(ctx, store); err != nil {
		return nil, err
	}

	return store, nil
}
