package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/meetp/facultyfinder/internal/app/controllers"
	appMigrations "github.com/meetp/facultyfinder/internal/app/migrations"
	appRepos "github.com/meetp/facultyfinder/internal/app/repositories"
	appRoutes "github.com/meetp/facultyfinder/internal/app/routes"
	appServices "github.com/meetp/facultyfinder/internal/app/services"
	"github.com/meetp/facultyfinder/internal/config"
	"github.com/meetp/facultyfinder/internal/db"
	"github.com/meetp/facultyfinder/internal/embedding"
	"github.com/meetp/facultyfinder/internal/index"
	appMiddleware "github.com/meetp/facultyfinder/internal/middleware"
	"github.com/meetp/facultyfinder/internal/pkg/apperrors"
	"github.com/meetp/facultyfinder/internal/pkg/logger"
	"github.com/meetp/facultyfinder/internal/search"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	FacultyService    appServices.FacultyService
	SearchService     appServices.SearchService
	FacultyController *appControllers.FacultyController
	SearchController  *appControllers.SearchController
	Repos             *appRepos.Repositories
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}
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

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)
	if err := migrator.MigrateFromDirectory("migrations"); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database ready.")
	return dbPool, nil
}

// BuildDependencies initializes repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.FacultyService = appServices.NewFacultyService(deps.Repos.FacultyRepository)

	// Semantic search degrades to "unavailable" rather than blocking
	// startup: the read API stays useful while operators run ingest/embed.
	deps.SearchService = buildSearchService(cfg, deps.Repos, lgr)

	deps.FacultyController = appControllers.NewFacultyController(deps.FacultyService)
	deps.SearchController = appControllers.NewSearchController(deps.SearchService)

	return deps, nil
}

// buildSearchService loads the embedding index and table snapshot once and
// wires them into a search engine held for the process lifetime.
func buildSearchService(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) appServices.SearchService {
	embedder, err := embedding.NewOpenAIEmbedder(embedding.OpenAIConfig{
		BaseURL: cfg.Embedding.BaseURL,
		APIKey:  cfg.Embedding.APIKey,
		Model:   cfg.Embedding.Model,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Embedding model failed to load; semantic search disabled")
		return appServices.NewUnavailableSearchService(
			fmt.Errorf("%w: %v", apperrors.ErrEmbedderUnavailable, err))
	}

	artifact, err := index.Load(cfg.Search.IndexPath)
	if err != nil {
		lgr.Warn().Err(err).Str("path", cfg.Search.IndexPath).
			Msg("Embedding index unavailable; semantic search disabled until ingest and embed run")
		return appServices.NewUnavailableSearchService(
			fmt.Errorf("%w: %v", apperrors.ErrIndexNotReady, err))
	}

	if artifact.Model != cfg.Embedding.Model {
		lgr.Error().Str("indexModel", artifact.Model).Str("configuredModel", cfg.Embedding.Model).
			Msg("Index was built with a different embedding model; semantic search disabled")
		return appServices.NewUnavailableSearchService(
			fmt.Errorf("%w: index built with model %q but %q is configured, rerun the embed command",
				apperrors.ErrIndexNotReady, artifact.Model, cfg.Embedding.Model))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	snapshot, err := repos.FacultyRepository.Snapshot(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to snapshot faculty table; semantic search disabled")
		return appServices.NewUnavailableSearchService(
			fmt.Errorf("%w: %v", apperrors.ErrIndexNotReady, err))
	}

	engine, err := search.NewEngine(snapshot, artifact, embedder, cfg.Search.Threshold)
	if err != nil {
		lgr.Error().Err(err).Msg("Embedding index rejected; semantic search disabled")
		return appServices.NewUnavailableSearchService(err)
	}

	lgr.Info().Int("records", engine.Size()).Str("model", artifact.Model).Msg("Semantic search ready")
	return appServices.NewSearchService(engine)
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
	router.Use(appMiddleware.RequestLogger(lgr), gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.FacultyController,
		deps.SearchController,
		deps.SearchService,
	)

	return router
}
