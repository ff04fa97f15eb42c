package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appCatalog "github.com/yigit/uniadvisor/internal/app/catalog"
	appControllers "github.com/yigit/uniadvisor/internal/app/controllers"
	appMigrations "github.com/yigit/uniadvisor/internal/app/migrations"
	appRepos "github.com/yigit/uniadvisor/internal/app/repositories"
	appRoutes "github.com/yigit/uniadvisor/internal/app/routes"
	appServices "github.com/yigit/uniadvisor/internal/app/services"
	"github.com/yigit/uniadvisor/internal/config"
	"github.com/yigit/uniadvisor/internal/db"
	"github.com/yigit/uniadvisor/internal/llm"
	appMiddleware "github.com/yigit/uniadvisor/internal/middleware"
	"github.com/yigit/uniadvisor/internal/pkg/apperrors"
	pkgAuth "github.com/yigit/uniadvisor/internal/pkg/auth"
	"github.com/yigit/uniadvisor/internal/pkg/helpers"
	"github.com/yigit/uniadvisor/internal/pkg/logger"
	"github.com/yigit/uniadvisor/internal/pkg/ratelimit"
	"github.com/yigit/uniadvisor/internal/pkg/websocket"
	"github.com/yigit/uniadvisor/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                   *appRepos.Repositories
	Catalogs                *appCatalog.Registry
	Provider                llm.Provider
	JWTService              *pkgAuth.JWTService
	Hub                     *websocket.Hub
	LoginLimiter            ratelimit.Limiter
	AuthService             *appServices.AuthService
	ProfileService          *appServices.ProfileService
	ChatService             appServices.ChatService
	AuthController          *appControllers.AuthController
	ChatController          *appControllers.ChatController
	ProfileController       *appControllers.ProfileController
	CatalogController       *appControllers.CatalogController
	VisualizationController *appControllers.VisualizationController
	WebSocketHandler        *websocket.Handler
	AuthMiddleware          *appMiddleware.AuthMiddleware
	Logger                  zerolog.Logger
}

// Database is the selected store plus its cleanup
type Database struct {
	Repos *appRepos.Repositories
	Close func()
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// CONFIG_PATH overrides configs/config.yaml.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the configured store and prepares its schema
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*Database, error) {
	switch strings.ToLower(cfg.Database.Driver) {
	case "sqlite":
		lgr.Info().Str("path", cfg.Database.SQLitePath).Msg("Opening SQLite database...")
		database, err := db.NewSQLiteDB(cfg.Database.SQLitePath)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to open SQLite database")
			return nil, err
		}
		return &Database{
			Repos: appRepos.NewSQLiteRepositories(database.DB),
			Close: func() { _ = database.Close() },
		}, nil

	default:
		return setupPostgres(cfg, lgr)
	}
}

func setupPostgres(cfg *config.Config, lgr zerolog.Logger) (*Database, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool, lgr).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return &Database{
		Repos: appRepos.NewPostgresRepositories(database.Pool),
		Close: database.Close,
	}, nil
}

// SetupProvider builds the LLM provider. A missing key runs the chat in
// degraded mode instead of failing startup.
func SetupProvider(cfg *config.Config, lgr zerolog.Logger) (llm.Provider, error) {
	provider, err := llm.NewProvider(llm.Config{
		Provider:  cfg.LLM.Provider,
		APIKey:    cfg.LLM.APIKey,
		BaseURL:   cfg.LLM.BaseURL,
		Model:     cfg.LLM.Model,
		Timeout:   helpers.ParseDuration(cfg.LLM.Timeout, llm.DefaultTimeout),
		MaxTokens: cfg.LLM.MaxTokens,
	})
	if errors.Is(err, llm.ErrNotConfigured) {
		lgr.Warn().Str("provider", cfg.LLM.Provider).Msg("LLM provider not configured, chat runs in degraded mode")
		return nil, nil
	}
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to create LLM provider")
		return nil, err
	}

	lgr.Info().Str("provider", provider.Name()).Msg("LLM provider configured")
	return provider, nil
}

// SetupRateLimiter returns the login limiter: Redis when configured and
// reachable, in-memory otherwise, nil when disabled
func SetupRateLimiter(cfg *config.Config, lgr zerolog.Logger) ratelimit.Limiter {
	if !cfg.RateLimit.Enabled {
		lgr.Info().Msg("Rate limiting disabled")
		return nil
	}
	window := helpers.ParseDuration(cfg.RateLimit.Window, time.Minute)

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		err := rdb.Ping(ctx).Err()
		if err == nil {
			lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Using Redis rate limiter")
			return ratelimit.NewRedisLimiter(rdb, cfg.RateLimit.Requests, window)
		}
		lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, falling back to in-memory rate limiter")
		_ = rdb.Close()
	}

	return ratelimit.NewMemoryLimiter(cfg.RateLimit.Requests, window)
}

// BuildDependencies initializes application services and controllers
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Repos: repos, Logger: lgr}

	var err error
	deps.Catalogs, err = appCatalog.LoadRegistry(cfg.Catalog.Dir, cfg.Catalog.DefaultUniversity, lgr)
	if err != nil {
		lgr.Error().Err(err).Str("dir", cfg.Catalog.Dir).Msg("Failed to load catalogs")
		return nil, fmt.Errorf("failed to load catalogs: %w", err)
	}

	deps.Provider, err = SetupProvider(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to set up llm provider: %w", err)
	}

	password, err := pkgAuth.NewSharedPassword(cfg.Auth.SharedPassword, cfg.Auth.SharedPasswordHash)
	if err != nil {
		lgr.Error().Err(err).Msg("Invalid shared password configuration")
		return nil, err
	}
	if !password.Configured() {
		lgr.Warn().Msg("No shared password configured, login is disabled")
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 168*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.LoginLimiter = SetupRateLimiter(cfg, lgr)
	deps.Hub = websocket.NewHub(lgr)

	deps.AuthService = appServices.NewAuthService(
		repos.Profiles,
		deps.JWTService,
		password,
		lgr,
	)
	deps.ProfileService = appServices.NewProfileService(
		repos.Profiles,
		repos.Transcripts,
		deps.Hub,
		lgr,
	)
	deps.ChatService = appServices.NewChatService(
		repos.Profiles,
		repos.Transcripts,
		deps.Catalogs,
		deps.Provider,
		deps.Hub,
		appServices.ChatConfig{
			HistoryLimit: cfg.LLM.HistoryLimit,
			MaxTokens:    cfg.LLM.MaxTokens,
		},
		lgr,
	)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.ChatController = appControllers.NewChatController(deps.ChatService, lgr)
	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService, lgr)
	deps.CatalogController = appControllers.NewCatalogController(deps.Catalogs, lgr)
	deps.VisualizationController = appControllers.NewVisualizationController(lgr)

	messages := websocket.NewMessageHandler(deps.ChatController.Responder(), deps.Hub, lgr)
	deps.WebSocketHandler = websocket.NewHandler(deps.Hub, messages, cfg.Server.CORSOrigins, lgr)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := seed.CreateDefaultData(ctx, seed.Options{
		DemoUserID: cfg.Seed.DemoUserID,
		Production: cfg.IsProduction(),
	}, repos.Profiles, deps.Catalogs, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.CORS(cfg.Server.CORSOrigins),
	)

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ChatController,
		deps.ProfileController,
		deps.CatalogController,
		deps.VisualizationController,
		deps.WebSocketHandler,
		deps.AuthMiddleware,
		deps.LoginLimiter,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	// Readiness includes the profile store
	router.GET("/ready", func(c *gin.Context) {
		if err := deps.Repos.Profiles.Ping(c.Request.Context()); err != nil {
			lgr.Warn().Err(err).Msg("Readiness check failed")
			appMiddleware.HandleAPIError(c, apperrors.NewUnavailableError("Database unavailable"))
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":             "ready",
			"websocket_sessions": deps.Hub.ClientCount(),
		})
	})

	return router
}
