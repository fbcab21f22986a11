package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/hakif/knowforum/internal/app/auth"
	appControllers "github.com/hakif/knowforum/internal/app/controllers"
	appMigrations "github.com/hakif/knowforum/internal/app/migrations"
	appRepos "github.com/hakif/knowforum/internal/app/repositories"
	appRoutes "github.com/hakif/knowforum/internal/app/routes"
	appServices "github.com/hakif/knowforum/internal/app/services"
	"github.com/hakif/knowforum/internal/config"
	"github.com/hakif/knowforum/internal/db"
	appMiddleware "github.com/hakif/knowforum/internal/middleware"
	"github.com/hakif/knowforum/internal/pkg/ai"
	pkgAuth "github.com/hakif/knowforum/internal/pkg/auth"
	"github.com/hakif/knowforum/internal/pkg/helpers"
	"github.com/hakif/knowforum/internal/pkg/logger"
	"github.com/hakif/knowforum/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            *appServices.AuthService
	CourseService          *appServices.CourseService
	NoteService            *appServices.NoteService
	ViewService            *appServices.ViewService
	GroupService           *appServices.GroupService
	ScaffoldService        *appServices.ScaffoldService
	NotificationService    *appServices.NotificationService
	AdminService           *appServices.AdminService
	AnalysisService        *appServices.AnalysisService
	AuthController         *appControllers.AuthController
	CourseController       *appControllers.CourseController
	NoteController         *appControllers.NoteController
	ViewController         *appControllers.ViewController
	GroupController        *appControllers.GroupController
	ScaffoldController     *appControllers.ScaffoldController
	NotificationController *appControllers.NotificationController
	AdminController        *appControllers.AdminController
	AnalysisController     *appControllers.AnalysisController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	AuthzService           *appAuth.AuthorizationService
	AnalysisClient         *ai.Client
	Logger                 zerolog.Logger
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
// seeds default data.
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

	if err := seed.CreateDefaultData(context.Background(), cfg, dbPool, lgr); err != nil {
		// Log but keep booting; a missing admin is recoverable
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.ProfileRepository,
		deps.Repos.CourseRepository,
		deps.Repos.CourseMemberRepository,
		deps.Repos.NoteRepository,
	)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AnalysisClient = ai.NewClient(ai.Config{
		BaseURL: cfg.Analysis.ServiceURL,
		APIKey:  cfg.Analysis.APIKey,
		Timeout: helpers.ParseDuration(cfg.Analysis.Timeout, 30*time.Second),
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.ProfileRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.CourseMemberRepository,
		deps.AuthzService,
		lgr,
	)
	deps.NoteService = appServices.NewNoteService(
		deps.Repos.NoteRepository,
		deps.Repos.CourseRepository,
		deps.Repos.CourseMemberRepository,
		deps.Repos.NotificationRepository,
		deps.AuthzService,
		lgr,
	)
	deps.ViewService = appServices.NewViewService(
		deps.Repos.ViewRepository,
		deps.Repos.CourseRepository,
		deps.Repos.CourseMemberRepository,
		deps.AuthzService,
		lgr,
	)
	deps.GroupService = appServices.NewGroupService(
		deps.Repos.GroupRepository,
		deps.Repos.CourseRepository,
		deps.Repos.CourseMemberRepository,
		deps.AuthzService,
		lgr,
	)
	deps.ScaffoldService = appServices.NewScaffoldService(
		deps.Repos.ScaffoldRepository,
		deps.Repos.CourseRepository,
		deps.Repos.CourseMemberRepository,
		deps.AuthzService,
		lgr,
	)
	deps.NotificationService = appServices.NewNotificationService(deps.Repos.NotificationRepository, lgr)
	deps.AdminService = appServices.NewAdminService(
		deps.Repos.TeacherApplicationRepository,
		deps.Repos.ProfileRepository,
		deps.Repos.NotificationRepository,
		deps.AuthzService,
		lgr,
	)
	deps.AnalysisService = appServices.NewAnalysisService(
		deps.AnalysisClient,
		deps.Repos.AIInteractionRepository,
		deps.AuthzService,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.NoteController = appControllers.NewNoteController(deps.NoteService)
	deps.ViewController = appControllers.NewViewController(deps.ViewService)
	deps.GroupController = appControllers.NewGroupController(deps.GroupService)
	deps.ScaffoldController = appControllers.NewScaffoldController(deps.ScaffoldService)
	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService)
	deps.AnalysisController = appControllers.NewAnalysisController(deps.AnalysisService)

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
	router.Use(appMiddleware.CORS(cfg.CORS.AllowedOrigins))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.NoteController,
		deps.ViewController,
		deps.GroupController,
		deps.ScaffoldController,
		deps.NotificationController,
		deps.AdminController,
		deps.AnalysisController,
		deps.AuthMiddleware,
	)

	return router
}
