package container

import (
	"context"
	"fmt"
	"time"

	"kennel-backend/internal/config"
	infraCache "kennel-backend/internal/infrastructure/cache"
	"kennel-backend/internal/infrastructure/database"
	"kennel-backend/internal/infrastructure/email"
	"kennel-backend/internal/infrastructure/storage"
	"kennel-backend/pkg/cache"
	"kennel-backend/pkg/jwt"
	"kennel-backend/pkg/logger"

	"kennel-backend/internal/domains/admin"
	adminHandler "kennel-backend/internal/domains/admin/handler"
	adminRepo "kennel-backend/internal/domains/admin/repository"
	adminService "kennel-backend/internal/domains/admin/service"
	"kennel-backend/internal/domains/dog"
	dogHandler "kennel-backend/internal/domains/dog/handler"
	dogRepo "kennel-backend/internal/domains/dog/repository"
	dogService "kennel-backend/internal/domains/dog/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the application and is the root
// of the dependency graph. All members are singletons for the app
// lifetime.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================

	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    *storage.MinIOStorage
	Processor  *storage.ImageProcessor
	Mailer     email.EmailService
	JWTManager *jwt.Manager

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================

	DogRepo   dog.Repository
	AdminRepo admin.Repository

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================

	DogService   dog.Service
	AdminService admin.Service

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================

	DogHandler   *dogHandler.DogHandler
	AdminHandler *adminHandler.AdminHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer initializes the whole dependency graph, strictly in
// order: config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	logger.Info("🔧 Initializing DI container...", nil)

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("✅ Config loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	logger.Info("✅ Database connected", nil)

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)

	// Connect is not part of the cache.Cache interface; type-assert to
	// reach it. Redis carries sessions and invites, so unlike a pure
	// read-through cache a failure here is fatal.
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
	}
	c.Cache = redisCache
	logger.Info("✅ Redis connected", nil)

	// ========================================
	// STEP 4: INITIALIZE STORAGE + EMAIL
	// ========================================
	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = minioStorage
	c.Processor = storage.NewImageProcessor()
	logger.Info("✅ Object storage ready", map[string]interface{}{
		"bucket": cfg.MinIO.Bucket,
	})

	c.Mailer = email.NewSMTPEmailService(cfg.SMTP)

	// ========================================
	// STEP 5: INITIALIZE JWT MANAGER
	// ========================================
	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Hour,
	)

	// ========================================
	// STEP 6: REPOSITORIES → SERVICES → HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("🎉 DI container initialized", nil)
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.DogRepo = dogRepo.NewPostgresRepository(pool)
	c.AdminRepo = adminRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.DogService = dogService.NewDogService(c.DogRepo, c.Storage, c.Processor)
	c.AdminService = adminService.NewAdminService(
		c.AdminRepo,
		c.Cache,
		c.JWTManager,
		c.Mailer,
		c.Config.App.PublicURL,
	)
}

func (c *Container) initHandlers() {
	c.DogHandler = dogHandler.NewDogHandler(c.DogService)
	c.AdminHandler = adminHandler.NewAdminHandler(c.AdminService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases long-lived resources on shutdown. Call order is the
// reverse of initialization.
func (c *Container) Cleanup() {
	logger.Info("🧹 Cleaning up container resources...", nil)

	if c.DB != nil {
		c.DB.Close()
	}

	logger.Info("✅ Container cleanup completed", nil)
}
