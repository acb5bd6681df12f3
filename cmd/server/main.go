package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/grade-analytics-service/internal/cache"
	"github.com/SAP-F-2025/grade-analytics-service/internal/config"
	"github.com/SAP-F-2025/grade-analytics-service/internal/events"
	"github.com/SAP-F-2025/grade-analytics-service/internal/handlers"
	"github.com/SAP-F-2025/grade-analytics-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/grade-analytics-service/internal/services"
	"github.com/SAP-F-2025/grade-analytics-service/internal/utils"
	"github.com/SAP-F-2025/grade-analytics-service/internal/validator"
	"github.com/SAP-F-2025/grade-analytics-service/pkg"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewDefaultLogger().LogError(err, "Failed to load configuration")
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.IsProduction())
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.LogError(err, "Failed to connect to database")
		os.Exit(1)
	}
	if err := pkg.MigrateDatabase(db); err != nil {
		logger.LogError(err, "Failed to migrate database")
		os.Exit(1)
	}

	ctx := context.Background()

	var cacheService cache.CacheService = cache.NoopCache{}
	redisClient, err := pkg.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, chart caching disabled", "error", err)
	} else {
		defer redisClient.Close()
		cacheService = cache.NewRedisCache(redisClient, slogger)
	}

	eventPublisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.LogError(err, "Failed to create event publisher, falling back to mock")
		eventPublisher = events.NewMockEventPublisher(slogger)
	}
	defer eventPublisher.Close()

	serviceManager := services.NewServiceManager(
		postgres.NewRepository(db),
		eventPublisher,
		cacheService,
		cfg.ChartCacheTTL,
		slogger,
		validator.New(),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		gin.Recovery(),
		utils.RequestID(),
		utils.LoggerMiddleware(logger),
		utils.ContextLogger(logger),
	)

	auth := handlers.NewAuthenticator(cfg.Auth, logger)
	handlers.NewHandlerManager(serviceManager, auth, logger).SetupRoutes(router)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  90 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting grade analytics service", "port", cfg.Port, "environment", cfg.Environment)
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.LogError(err, "Server error")
		}
	case sig := <-quit:
		logger.Info("Shutting down", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.LogError(err, "Could not stop server gracefully")
			_ = server.Close()
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
