package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hugh/cardlink/internal/api"
	"github.com/hugh/cardlink/internal/auth"
	"github.com/hugh/cardlink/internal/cardnet"
	"github.com/hugh/cardlink/internal/database"
	"github.com/hugh/cardlink/internal/inbox"
	"github.com/hugh/cardlink/internal/store"
	"github.com/hugh/cardlink/internal/tasks"
	"github.com/hugh/cardlink/pkg/config"
	"github.com/hugh/cardlink/pkg/idgen"
	"github.com/hugh/cardlink/pkg/queue"
	"github.com/hugh/cardlink/pkg/util"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := util.NewLogger(cfg.Server.Env, cfg.Server.LogLevel)
	slog.SetDefault(logger)

	logger.Info("starting cardlink server",
		"env", cfg.Server.Env,
		"addr", cfg.Server.Addr(),
		"store", cfg.Store.Backend,
	)

	if cfg.Server.IsDevelopment() && cfg.JWT.Secret == "change-me-in-production" {
		logger.Warn("JWT_SECRET is the default value - set it before deploying")
	}

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		if cfg.Store.Backend == "redis" {
			logger.Error("failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		logger.Warn("failed to connect to Redis, notifications disabled", "error", err)
		redisClient.Close()
		redisClient = nil
	}

	// Connect to database when it backs the store
	var db *gorm.DB
	if cfg.Store.Backend == "database" {
		db, err = database.Connect(&cfg.Database, logger)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		if cfg.Database.AutoMigrate {
			if err := database.AutoMigrate(db); err != nil {
				logger.Error("failed to run migrations", "error", err)
				os.Exit(1)
			}
		}
	}

	st, err := openStore(cfg.Store.Backend, db, redisClient, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}

	ids, err := idgen.NewSnowflake(cfg.IDs.Node)
	if err != nil {
		logger.Error("failed to create id generator", "error", err)
		os.Exit(1)
	}

	// Initialize Asynq client for job-update fan-out
	var (
		asynqClient *asynq.Client
		notifier    cardnet.Notifier = cardnet.NopNotifier{}
		ib          *inbox.Inbox
	)
	if redisClient != nil {
		asynqClient = queue.NewClient(&cfg.Redis)
		notifier = tasks.NewNotifier(asynqClient, logger)
		ib = inbox.New(redisClient, cfg.Inbox.MaxEntries)
	}

	service, err := cardnet.NewService(context.Background(), cardnet.Config{
		Store:           st,
		IDs:             ids,
		Notifier:        notifier,
		Logger:          logger,
		MaxCodeAttempts: cfg.ShareCode.MaxAttempts,
	})
	if err != nil {
		logger.Error("failed to load card network", "error", err)
		os.Exit(1)
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())

	done := make(chan struct{})

	// Create router
	router := api.NewRouter(api.RouterConfig{
		Service:        service,
		DB:             db,
		Redis:          redisClient,
		Inbox:          ib,
		Logger:         logger,
		JWTService:     jwtService,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimitReqs:  cfg.RateLimit.Requests,
		RateLimitSecs:  cfg.RateLimit.WindowSeconds,
		Done:           done,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	close(done)

	// Close Asynq client
	if asynqClient != nil {
		asynqClient.Close()
	}

	// Close Redis connection
	if redisClient != nil {
		redisClient.Close()
	}

	// Close database connection
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	logger.Info("server stopped")
}

func openStore(backend string, db *gorm.DB, rdb *redis.Client, logger *slog.Logger) (store.Store, error) {
	switch backend {
	case "database":
		return store.NewGormStore(db, logger), nil
	case "redis":
		return store.NewRedisStore(rdb), nil
	case "memory":
		logger.Warn("using in-memory store - data is lost on restart")
		return store.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unsupported store backend %q", backend)
}
