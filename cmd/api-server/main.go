package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storehub/database"
	"storehub/internal/api/handler"
	"storehub/internal/api/middleware"
	"storehub/internal/api/repository"
	"storehub/internal/api/service"
	"storehub/internal/cache"
	"storehub/internal/config"
	"storehub/internal/logging"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer database.Close(db)

	// The dashboard cache is optional: with no Redis the admin dashboard
	// just falls back to live counts.
	dashboard, err := cache.NewDashboardCache(cfg.RedisURL, cfg.RedisPassword, cfg.CacheTTL)
	if err != nil {
		logger.Warn("redis unavailable, dashboard caching disabled", zap.Error(err))
		dashboard = nil
	} else {
		defer dashboard.Close()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	recalculator := service.NewRecalculator(ratingRepo, storeRepo)
	ratingService := service.NewRatingService(ratingRepo, storeRepo, recalculator, logger)
	storeService := service.NewStoreService(storeRepo, ratingRepo)
	adminService := service.NewAdminService(userRepo, storeRepo, ratingRepo, authService, dashboard, logger)

	// Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	authRequired := middleware.AuthMiddleware(authService)
	submitLimiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Store Rating API is running"})
		})

		handler.NewAuthHandler(authService).RegisterRoutes(api, authRequired)
		handler.NewStoreHandler(storeService).RegisterRoutes(api, authRequired)
		handler.NewRatingHandler(ratingService).RegisterRoutes(api, authRequired, submitLimiter.Middleware())
		handler.NewAdminHandler(adminService).RegisterRoutes(api, authRequired)
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
