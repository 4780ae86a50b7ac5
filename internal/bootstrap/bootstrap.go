package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/campusreuse/restore/internal/app/controllers"
	appMigrations "github.com/campusreuse/restore/internal/app/migrations"
	appRepos "github.com/campusreuse/restore/internal/app/repositories"
	appRoutes "github.com/campusreuse/restore/internal/app/routes"
	appServices "github.com/campusreuse/restore/internal/app/services"
	"github.com/campusreuse/restore/internal/config"
	"github.com/campusreuse/restore/internal/db"
	appMiddleware "github.com/campusreuse/restore/internal/middleware"
	"github.com/campusreuse/restore/internal/pkg/filestorage"
	"github.com/campusreuse/restore/internal/pkg/logger"
	"github.com/campusreuse/restore/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	DonorService        *appServices.DonorService
	CategoryService     *appServices.CategoryService
	ProductService      *appServices.ProductService
	FridgeService       *appServices.FridgeService
	VerificationService *appServices.VerificationService
	ImportService       *appServices.ImportService

	FridgeController       *appControllers.FridgeController
	VerificationController *appControllers.VerificationController
	DonorController        *appControllers.DonorController
	CategoryController     *appControllers.CategoryController
	ProductController      *appControllers.ProductController
	ImportController       *appControllers.ImportController

	Repos       *appRepos.Repositories
	Logger      zerolog.Logger
	FileStorage *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Create default data after migrations
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seeding failures never block startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// The file storage base URL must match the static file serving path
	var err error
	baseURL := strings.TrimRight(cfg.Server.BaseURL, "/")
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	// Initialize services
	deps.DonorService = appServices.NewDonorService(deps.Repos.DonorRepository)
	deps.CategoryService = appServices.NewCategoryService(deps.Repos.CategoryRepository)
	deps.ProductService = appServices.NewProductService(
		deps.Repos.ProductRepository,
		deps.DonorService,
		deps.CategoryService,
	)
	deps.FridgeService = appServices.NewFridgeService(deps.Repos.FridgeRepository)
	deps.VerificationService = appServices.NewVerificationService(deps.Repos.CheckoutRepository)
	deps.ImportService = appServices.NewImportService(deps.DonorService, deps.Repos.DonorRepository)

	// Initialize controllers
	deps.FridgeController = appControllers.NewFridgeController(deps.FridgeService)
	deps.VerificationController = appControllers.NewVerificationController(deps.VerificationService)
	deps.DonorController = appControllers.NewDonorController(deps.DonorService)
	deps.CategoryController = appControllers.NewCategoryController(deps.CategoryService)
	deps.ProductController = appControllers.NewProductController(deps.ProductService, deps.FileStorage)
	deps.ImportController = appControllers.NewImportController(deps.ImportService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	appRoutes.SetupSwagger(router)

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.FridgeController,
		deps.VerificationController,
		deps.DonorController,
		deps.CategoryController,
		deps.ProductController,
		deps.ImportController,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
