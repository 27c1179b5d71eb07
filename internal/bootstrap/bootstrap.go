package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/omniafit/omnia-backend/internal/app/controllers"
	appMigrations "github.com/omniafit/omnia-backend/internal/app/migrations"
	appRepos "github.com/omniafit/omnia-backend/internal/app/repositories"
	appRoutes "github.com/omniafit/omnia-backend/internal/app/routes"
	appServices "github.com/omniafit/omnia-backend/internal/app/services"
	"github.com/omniafit/omnia-backend/internal/config"
	"github.com/omniafit/omnia-backend/internal/db"
	appMiddleware "github.com/omniafit/omnia-backend/internal/middleware"
	pkgAuth "github.com/omniafit/omnia-backend/internal/pkg/auth"
	"github.com/omniafit/omnia-backend/internal/pkg/filestorage"
	"github.com/omniafit/omnia-backend/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          appServices.AuthService
	ScheduleService      appServices.ScheduleService
	ClassService         appServices.ClassService
	InstructorService    appServices.InstructorService
	AuthController       *appControllers.AuthController
	ScheduleController   *appControllers.ScheduleController
	ClassController      *appControllers.ClassController
	InstructorController *appControllers.InstructorController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	FileStorage          *filestorage.LocalStorage
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  strings.ToLower(cfg.Logging.Level),
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
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
	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// Photo URLs must match the static uploads route configured on the router.
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize photo storage")
		return nil, fmt.Errorf("failed to initialize photo storage: %w", err)
	}

	sessionExp, err := time.ParseDuration(cfg.JWT.SessionExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid session expiration: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:  cfg.JWT.Secret,
		SessionExp: sessionExp,
		Issuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(cfg.Admin.Username, cfg.Admin.PasswordHash, deps.JWTService, lgr)
	deps.ScheduleService = appServices.NewScheduleService(
		deps.Repos.Slots,
		deps.Repos.Instructors,
		deps.Repos.TxManager,
		lgr,
	)
	deps.ClassService = appServices.NewClassService(
		deps.Repos.Classes,
		deps.Repos.TxManager,
		deps.FileStorage,
		lgr,
	)
	deps.InstructorService = appServices.NewInstructorService(
		deps.Repos.Instructors,
		deps.Repos.TxManager,
		deps.FileStorage,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	secureCookie := strings.ToLower(cfg.Server.Mode) == "production"
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.JWTService, secureCookie)
	deps.ScheduleController = appControllers.NewScheduleController(deps.ScheduleService)
	deps.ClassController = appControllers.NewClassController(deps.ClassService)
	deps.InstructorController = appControllers.NewInstructorController(deps.InstructorService)

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

	// Cookie auth requires credentialed CORS against an explicit origin list.
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ScheduleController,
		deps.ClassController,
		deps.InstructorController,
		deps.AuthMiddleware,
	)

	return router
}
