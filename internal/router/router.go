package router

import (
	"context"

	"github.com/hirebridge/backend/internal/cache"
	"github.com/hirebridge/backend/internal/handlers"
	"github.com/hirebridge/backend/internal/middleware"
	"github.com/hirebridge/backend/internal/models"
	"github.com/hirebridge/backend/internal/notify"
	"github.com/hirebridge/backend/internal/repositories"
	"github.com/hirebridge/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies.
// It returns a shutdown func releasing the resources it started.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, cfg *config.Config, log *zap.Logger) (func(), error) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Business{},
		&models.Job{},
		&models.JobApplication{},
		&models.Message{},
		&models.Notification{},
	)
	if err != nil {
		return nil, err
	}
	log.Info("auto-migrations completed")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Access cache: Redis when configured, otherwise per-instance ---
	var accessCache cache.ConversationAccessCache
	shutdown := func() {}
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisAccessCache(context.Background(), cfg.RedisURL, cfg.AccessCacheTTL, log)
		if err != nil {
			return nil, err
		}
		accessCache = redisCache
		shutdown = func() { redisCache.Close() }
		log.Info("using redis access cache", zap.Duration("ttl", cfg.AccessCacheTTL))
	} else {
		localCache := cache.NewAccessCache(cfg.AccessCacheTTL, log)
		accessCache = localCache
		shutdown = localCache.Close
		log.Info("using in-process access cache", zap.Duration("ttl", cfg.AccessCacheTTL))
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	jobRepo := repositories.NewPostgresJobRepository(pgdb)
	applicationRepo := repositories.NewPostgresApplicationRepository(pgdb)
	messageRepo := repositories.NewPostgresMessageRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	notifier := notify.New(notificationRepo, log)
	accessChecker := middleware.NewAccessChecker(applicationRepo, accessCache, log)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())

	messageHandler := handlers.NewMessageHandler(messageRepo, applicationRepo, userRepo, jobRepo, notifier, log)
	messageHandler.RegisterMessageRoutes(api, accessChecker)
	log.Info("message routes configured")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, log)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Info("notification routes configured")

	return shutdown, nil
}
