package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	migrate "github.com/rubenv/sql-migrate"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/johnquangdev/interview-coach/docs"
	"github.com/johnquangdev/interview-coach/internal/adapter/handler"
	"github.com/johnquangdev/interview-coach/internal/adapter/repository"
	"github.com/johnquangdev/interview-coach/internal/domain/repositories"
	"github.com/johnquangdev/interview-coach/internal/infrastructure/cache"
	"github.com/johnquangdev/interview-coach/internal/infrastructure/database"
	"github.com/johnquangdev/interview-coach/internal/usecase/assessment"
	"github.com/johnquangdev/interview-coach/internal/usecase/scoring"
	pkgai "github.com/johnquangdev/interview-coach/pkg/ai"
	"github.com/johnquangdev/interview-coach/pkg/config"
	pkgvalidator "github.com/johnquangdev/interview-coach/pkg/validator"
)

// @title           Interview Coach Assessment API
// @version         1.0
// @description     Scores transcribed interview answers on six communication dimensions.

// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))

	logger.Info("🔧 Initializing dependencies...", zap.String("storage", cfg.Storage.Driver))

	// Storage
	repo, health, closeStore := openStore(ctx, cfg, logger)
	defer closeStore()

	// Averages cache
	var store repositories.CacheStore
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		store = cache.NewRedisStore(redisClient, "interview-coach:")
	} else {
		memory := cache.NewMemoryStore(time.Minute)
		defer memory.Close()
		store = memory
		logger.Info("📦 Using in-memory averages cache")
	}

	// Scoring tables
	lexicon := scoring.DefaultLexicon()
	if cfg.Scoring.LexiconPath != "" {
		lexicon, err = scoring.LoadLexiconFile(cfg.Scoring.LexiconPath)
		if err != nil {
			logger.Fatal("Failed to load lexicon", zap.String("path", cfg.Scoring.LexiconPath), zap.Error(err))
		}
		logger.Info("📖 Lexicon loaded", zap.String("locale", lexicon.Locale))
	}

	// AI provider chain
	providers := pkgai.NewCompleters(&cfg.AI, logger)
	if len(providers) == 0 {
		logger.Warn("⚠️ No AI provider configured, using rule-based scoring only")
	}
	evaluator := assessment.NewEvaluator(providers, pkgai.CompletionOptions{
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
	}, logger)

	assessmentService := assessment.NewAssessmentService(repo, evaluator, store, assessment.Options{
		Lexicon:     lexicon,
		AveragesTTL: cfg.Cache.AveragesTTL,
		JobTimeout:  cfg.Scoring.JobTimeout,
		RetryDelay:  cfg.Scoring.SaveRetryDelay,
	}, logger)

	assessmentHandler := handler.NewAssessmentHandler(assessmentService, logger)
	router := handler.NewRouter(cfg, assessmentHandler, health)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// openStore connects the configured assessment store and returns it with a
// health probe and a close func
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.AssessmentRepository, handler.HealthChecker, func()) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMongo:
		client, db, err := database.NewMongoDB(ctx, cfg, logger)
		if err != nil {
			logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		repo := repository.NewMongoAssessmentRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Fatal("Failed to create indexes", zap.Error(err))
		}
		return repo, mongoHealth(client), func() { _ = client.Disconnect(context.Background()) }

	default:
		db, err := database.NewPostgresDB(ctx, cfg, logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		// Production deployments manage the schema with cmd/migrate
		if cfg.Database.AutoMigrate {
			if cfg.IsProduction() {
				logger.Fatal("DB_AUTO_MIGRATE is enabled in production; run cmd/migrate instead")
			}
			if _, err := database.Migrate(db, database.MigrationsDir, migrate.Up, 0, logger); err != nil {
				logger.Fatal("Failed to apply migrations", zap.Error(err))
			}
		}
		return repository.NewAssessmentRepository(db), postgresHealth(db), func() { _ = database.CloseDB(db) }
	}
}

func postgresHealth(db *gorm.DB) handler.HealthChecker {
	return func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return sqlDB.PingContext(ctx)
	}
}

func mongoHealth(client *mongo.Client) handler.HealthChecker {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return client.Ping(ctx, nil)
	}
}
