// Package setup bootstraps the application dependencies.
package setup

import (
	"context"
	"log"

	"github.com/nearwave/nearwave/internal/database"
	"github.com/nearwave/nearwave/internal/redis"
	"github.com/nearwave/nearwave/internal/setup/config"
	"github.com/nearwave/nearwave/internal/setup/logger"
	"go.uber.org/zap"
)

// App bundles all core dependencies and services needed by the application.
// Each field represents a major subsystem that needs initialization and cleanup.
type App struct {
	Config       *config.Config  // Application configuration
	Logger       *zap.Logger     // Main application logger
	DBLogger     *zap.Logger     // Database-specific logger
	DB           database.Client // Database connection pool
	RedisManager *redis.Manager  // Redis connection manager
	LogManager   *logger.Manager // Log management system
}

// InitializeApp bootstraps all application dependencies in the correct order,
// ensuring each component has its required dependencies available.
func InitializeApp(ctx context.Context, logDir string) (*App, error) {
	// Load app configuration
	cfg, configDir, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Logging system is initialized next to capture setup issues
	logManager := logger.NewManager(logDir, &cfg.Debug)

	mainLogger, dbLogger, err := logManager.GetLoggers()
	if err != nil {
		return nil, err
	}

	mainLogger.Info("Loaded configuration", zap.String("configDir", configDir))

	// Redis manager provides connection pools for the lock and status subsystems
	redisManager := redis.NewManager(&cfg.Redis, mainLogger)

	// Initialize database with automatic migrations
	db, err := database.NewConnection(ctx, &cfg.PostgreSQL, dbLogger.Named("database"), true)
	if err != nil {
		return nil, err
	}

	// Bundle all initialized components
	return &App{
		Config:       cfg,
		Logger:       mainLogger,
		DBLogger:     dbLogger,
		DB:           db,
		RedisManager: redisManager,
		LogManager:   logManager,
	}, nil
}

// Cleanup ensures graceful shutdown of all components in reverse initialization order.
// Logs but does not fail on cleanup errors to ensure all components get cleanup attempts.
func (a *App) Cleanup(_ context.Context) {
	// Sync buffered logs before shutdown
	if err := a.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := a.DBLogger.Sync(); err != nil {
		log.Printf("Failed to sync DB logger: %v", err)
	}

	// Close database connections
	if err := a.DB.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}

	// Close Redis connections last as other components might need it during cleanup
	a.RedisManager.Close()
}
