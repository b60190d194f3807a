package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/mentorium/internal/app/auth"
	appControllers "github.com/yigit/mentorium/internal/app/controllers"
	appMigrations "github.com/yigit/mentorium/internal/app/migrations"
	appRepos "github.com/yigit/mentorium/internal/app/repositories"
	appRoutes "github.com/yigit/mentorium/internal/app/routes"
	appServices "github.com/yigit/mentorium/internal/app/services"
	"github.com/yigit/mentorium/internal/config"
	"github.com/yigit/mentorium/internal/db"
	appMiddleware "github.com/yigit/mentorium/internal/middleware"
	pkgAuth "github.com/yigit/mentorium/internal/pkg/auth"
	"github.com/yigit/mentorium/internal/pkg/helpers"
	"github.com/yigit/mentorium/internal/pkg/logger"
	"github.com/yigit/mentorium/internal/pkg/payment"
	"github.com/yigit/mentorium/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos *appRepos.Repositories

	AuthzService      *appAuth.AuthorizationService
	UserService       appServices.UserService
	ClassService      appServices.ClassService
	EnrollmentService appServices.EnrollmentService
	CourseworkService appServices.CourseworkService
	FeedbackService   appServices.FeedbackService
	StatsService      appServices.StatsService

	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Verifier       pkgAuth.TokenVerifier
	Payments       payment.Provider
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.FromSettings(cfg.Logging.Level, cfg.Logging.Format))
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	admin := seed.AdminAccount{Email: cfg.Seed.AdminEmail, Name: cfg.Seed.AdminName}
	if err := seed.CreateDefaultData(ctx, appRepos.NewUserRepository(database), admin, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// NewTokenVerifier builds the verifier selected by auth.provider.
func NewTokenVerifier(ctx context.Context, cfg *config.Config) (pkgAuth.TokenVerifier, error) {
	switch strings.ToLower(cfg.Auth.Provider) {
	case config.AuthProviderFirebase:
		return pkgAuth.NewFirebaseVerifier(ctx, cfg.Auth.FirebaseServiceKey)
	case config.AuthProviderJWT:
		return NewJWTService(cfg), nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.Auth.Provider)
	}
}

// NewJWTService builds the local HS256 token service from configuration.
func NewJWTService(cfg *config.Config) *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.Auth.JWTSecret,
		AccessTokenExp: helpers.ParseDuration(cfg.Auth.JWTExpiration, 24*time.Hour),
		TokenIssuer:    cfg.Auth.JWTIssuer,
	})
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	verifier, err := NewTokenVerifier(context.Background(), cfg)
	if err != nil {
		lgr.Error().Err(err).Str("provider", cfg.Auth.Provider).Msg("Failed to initialize token verifier")
		return nil, fmt.Errorf("failed to initialize token verifier: %w", err)
	}

	return Wire(database, verifier, payment.NewStripeProvider(cfg.Payment.StripeSecretKey), cfg.Payment.Currency, lgr), nil
}

// Wire connects repositories, services, middleware and controllers.
func Wire(
	database *db.PostgresDB,
	verifier pkgAuth.TokenVerifier,
	payments payment.Provider,
	currency string,
	lgr zerolog.Logger,
) *Dependencies {
	deps := &Dependencies{
		Verifier: verifier,
		Payments: payments,
		Logger:   lgr,
	}

	deps.Repos = appRepos.NewRepositories(database)
	repos := deps.Repos

	deps.AuthzService = appAuth.NewAuthorizationService(repos.UserRepository, repos.ClassRepository)

	deps.UserService = appServices.NewUserService(repos.UserRepository, lgr)
	deps.ClassService = appServices.NewClassService(repos.ClassRepository, repos.UserRepository, deps.AuthzService, lgr)
	deps.EnrollmentService = appServices.NewEnrollmentService(
		database,
		repos.ClassRepository,
		repos.UserRepository,
		repos.EnrollmentRepository,
		payments,
		currency,
		lgr,
	)
	deps.CourseworkService = appServices.NewCourseworkService(
		database,
		repos.ClassRepository,
		repos.AssignmentRepository,
		repos.SubmissionRepository,
		deps.AuthzService,
		lgr,
	)
	deps.FeedbackService = appServices.NewFeedbackService(repos.FeedbackRepository, repos.UserRepository, lgr)
	deps.StatsService = appServices.NewStatsService(repos.UserRepository, repos.ClassRepository, repos.EnrollmentRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(verifier, deps.AuthzService)

	deps.Controllers = appRoutes.Controllers{
		User:       appControllers.NewUserController(deps.UserService, lgr),
		Class:      appControllers.NewClassController(deps.ClassService),
		Enrollment: appControllers.NewEnrollmentController(deps.EnrollmentService),
		Coursework: appControllers.NewCourseworkController(deps.CourseworkService),
		Feedback:   appControllers.NewFeedbackController(deps.FeedbackService, deps.StatsService),
		Health:     appControllers.NewHealthController(database),
	}

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.CORS(cfg.Server.CORSOrigins))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
