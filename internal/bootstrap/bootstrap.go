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
	"github.com/rs/zerolog/log"

	appControllers "github.com/stellarion/backend/internal/app/controllers"
	appMigrations "github.com/stellarion/backend/internal/app/migrations"
	appRepos "github.com/stellarion/backend/internal/app/repositories"
	appRoutes "github.com/stellarion/backend/internal/app/routes"
	appServices "github.com/stellarion/backend/internal/app/services"
	"github.com/stellarion/backend/internal/app/models"
	"github.com/stellarion/backend/internal/config"
	"github.com/stellarion/backend/internal/db"
	appMiddleware "github.com/stellarion/backend/internal/middleware"
	"github.com/stellarion/backend/internal/pkg/apperrors"
	pkgAuth "github.com/stellarion/backend/internal/pkg/auth"
	"github.com/stellarion/backend/internal/pkg/filestore"
	"github.com/stellarion/backend/internal/pkg/gemini"
	"github.com/stellarion/backend/internal/pkg/helpers"
	"github.com/stellarion/backend/internal/pkg/logger"
	"github.com/stellarion/backend/internal/pkg/payhere"
	"github.com/stellarion/backend/internal/seed"
)

// Dependencies holds all the application dependencies.
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	TokenService   *pkgAuth.TokenService
	Gemini         *gemini.Client
	Logger         zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations,
// and seeds the plan catalog.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services, controllers,
// and middleware.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.TokenService = pkgAuth.NewTokenService(pkgAuth.TokenConfig{
		Secret:     cfg.Auth.Secret,
		Expiration: helpers.ParseDuration(cfg.Auth.TokenExpiration, 24*time.Hour),
		Issuer:     cfg.Auth.Issuer,
	}, deps.Repos.Credentials)

	verifier, err := payhere.NewVerifier(cfg.PayHere.MerchantID, cfg.PayHere.MerchantSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize payment verifier: %w", err)
	}

	documents := filestore.NewDocumentStore(cfg.Storage, lgr)

	generator, geminiClient, err := setupGenerator(cfg, lgr)
	if err != nil {
		return nil, err
	}
	deps.Gemini = geminiClient

	deps.Services = appServices.NewServices(database, deps.Repos, deps.TokenService,
		verifier, documents, generator, cfg, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(
		deps.TokenService,
		deps.Services.Auth,
		deps.Repos.Users,
		cfg.Auth.DevSubject,
		cfg.Auth.DevEmail,
		lgr,
	)

	deps.Controllers = appRoutes.Controllers{
		Auth:          appControllers.NewAuthController(deps.Services.Auth, deps.Services.Users),
		Users:         appControllers.NewUserController(deps.Services.Users),
		Blogs:         appControllers.NewBlogController(deps.Services.Blogs),
		Guide:         appControllers.NewApplicationController(models.ApplicationGuide, deps.Services.Applications),
		Mentor:        appControllers.NewApplicationController(models.ApplicationMentor, deps.Services.Applications),
		Influencer:    appControllers.NewApplicationController(models.ApplicationInfluencer, deps.Services.Applications),
		NightCamps:    appControllers.NewNightCampController(deps.Services.NightCamps),
		Payments:      appControllers.NewPaymentController(deps.Services.Payments, lgr),
		Subscriptions: appControllers.NewSubscriptionController(deps.Services.Subscriptions),
		Chatbot:       appControllers.NewChatbotController(deps.Services.Chatbot),
		NASA:          appControllers.NewNASAController(deps.Services.NASA),
	}

	return deps, nil
}

// setupGenerator builds the chatbot backend. A missing API key keeps
// the server runnable; the chatbot then answers 502 until configured.
func setupGenerator(cfg *config.Config, lgr zerolog.Logger) (appServices.TextGenerator, *gemini.Client, error) {
	if cfg.Gemini.APIKey == "" {
		lgr.Warn().Msg("Gemini API key not configured, chatbot replies disabled")
		return unavailableGenerator{}, nil, nil
	}

	client, err := gemini.NewClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}
	return client, client, nil
}

type unavailableGenerator struct{}

func (unavailableGenerator) GenerateReply(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: chat backend not configured", apperrors.ErrUpstreamFailure)
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

	router := gin.Default()

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
