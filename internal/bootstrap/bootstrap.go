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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/mkaplan/schoolpanel/docs" // Import generated swagger docs
	appControllers "github.com/mkaplan/schoolpanel/internal/app/controllers"
	appMigrations "github.com/mkaplan/schoolpanel/internal/app/migrations"
	appRepos "github.com/mkaplan/schoolpanel/internal/app/repositories"
	appRoutes "github.com/mkaplan/schoolpanel/internal/app/routes"
	appServices "github.com/mkaplan/schoolpanel/internal/app/services"
	"github.com/mkaplan/schoolpanel/internal/config"
	"github.com/mkaplan/schoolpanel/internal/db"
	appMiddleware "github.com/mkaplan/schoolpanel/internal/middleware"
	pkgAuth "github.com/mkaplan/schoolpanel/internal/pkg/auth"
	"github.com/mkaplan/schoolpanel/internal/pkg/filestorage"
	"github.com/mkaplan/schoolpanel/internal/pkg/helpers"
	"github.com/mkaplan/schoolpanel/internal/pkg/logger"
	"github.com/mkaplan/schoolpanel/internal/seed"
	"github.com/mkaplan/schoolpanel/internal/session"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService        appServices.AuthService
	AccountService     appServices.AccountService
	RosterService      appServices.RosterService
	TransferService    appServices.TransferService
	AuthController     *appControllers.AuthController
	AccountController  *appControllers.AccountController
	StudentController  *appControllers.StudentController
	TransferController *appControllers.TransferController
	AuthMiddleware     *appMiddleware.AuthMiddleware
	Repos              *appRepos.Repositories
	TokenService       *pkgAuth.TokenService
	SessionStore       session.Store
	Logger             zerolog.Logger
	FileStorage        *filestorage.LocalStorage
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

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the bootstrap admin.
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

	// Seed the protected admin account after migrations. The application
	// cannot be administered without it, so a seed failure is fatal.
	if err := seed.CreateBootstrapAdmin(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed bootstrap admin")
		dbPool.Close()
		return nil, fmt.Errorf("bootstrap admin seed failed: %w", err)
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.SessionStore = session.NewMemoryStore()

	deps.TokenService = pkgAuth.NewTokenService(pkgAuth.TokenConfig{
		SecretKey:  cfg.Session.Secret,
		Expiration: helpers.ParseDuration(cfg.Session.Expiration, 12*time.Hour),
		Issuer:     cfg.Session.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.AccountRepository,
		deps.SessionStore,
		deps.TokenService,
		lgr,
	)
	deps.AccountService = appServices.NewAccountService(deps.Repos.AccountRepository)
	deps.RosterService = appServices.NewRosterService(deps.Repos.StudentRepository, deps.FileStorage)
	deps.TransferService = appServices.NewTransferService(deps.Repos.StudentRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.TokenService, deps.SessionStore)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.Logger)
	deps.AccountController = appControllers.NewAccountController(deps.AccountService)
	deps.StudentController = appControllers.NewStudentController(deps.RosterService)
	deps.TransferController = appControllers.NewTransferController(deps.TransferService)

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

	router := gin.Default()

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.AccountController,
		deps.StudentController,
		deps.TransferController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
