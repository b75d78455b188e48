package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobscape_backend/database"
	"jobscape_backend/internal/auth"
	"jobscape_backend/internal/config"
	"jobscape_backend/internal/email"
	"jobscape_backend/internal/handlers"
	"jobscape_backend/internal/logger"
	"jobscape_backend/internal/middleware"
	"jobscape_backend/internal/models"
	"jobscape_backend/internal/ratelimit"
	"jobscape_backend/internal/repositories"
	"jobscape_backend/internal/routes"
	"jobscape_backend/internal/services"
	"jobscape_backend/internal/storage"
	"jobscape_backend/internal/validator"
	"jobscape_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}
	logger.Info("Database connected and migrated")

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter, _ := SetupRouter(cfg, gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startWorkers(ctx, cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full gin engine with all routes wired. Exposed for
// integration tests.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *services.ServiceContainer) {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	serviceContainer := initializeServices(cfg, gormDB, storageInstance)
	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New())

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter, serviceContainer
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, storageInstance storage.Storage) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository(gormDB)
	employerRepo := repositories.NewEmployerRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)

	var notifier email.Notifier
	if cfg.Email.SMTPHost != "" && cfg.Email.SMTPUsername != "" {
		notifier = email.NewSMTPNotifier(cfg)
		logger.Info("SMTP notifier initialized", "host", cfg.Email.SMTPHost)
	} else {
		logger.Warn("SMTP is not configured, notifications are logged only")
		notifier = email.NewLogNotifier()
	}

	var limiter ratelimit.ResendLimiter
	if cfg.Redis.Addr != "" {
		redisLimiter := ratelimit.NewRedisLimiter(ratelimit.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisLimiter.Ping(context.Background()); err != nil {
			logger.Warn("Redis unavailable, using in-process resend limiter", "error", err)
			limiter = ratelimit.NewLocalLimiter()
		} else {
			limiter = redisLimiter
			logger.Info("Redis resend limiter initialized", "addr", cfg.Redis.Addr)
		}
	} else {
		limiter = ratelimit.NewLocalLimiter()
	}

	return services.NewServiceContainer(userRepo, employerRepo, jobRepo, notifier, limiter, storageInstance)
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

func startWorkers(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) {
	jobRepo := repositories.NewJobRepository(gormDB)
	employerRepo := repositories.NewEmployerRepository(gormDB)

	sweepInterval := time.Duration(cfg.Sweep.IntervalMinutes) * time.Minute
	workers.NewJobClosureWorker(jobRepo, employerRepo, sweepInterval).Start(ctx)
	workers.NewSubscriptionWorker(gormDB).Start(ctx)
	logger.Info("Background workers started", "sweep_interval", sweepInterval.String())
}

// seedFirstAdmin creates the bootstrap admin account when the configured
// address does not exist yet.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Admin.Email
	adminPassword := cfg.Admin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: hash,
		FullName:     "Administrator",
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
