package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/turtacn/apiecho/internal/config"
	"github.com/turtacn/apiecho/internal/infrastructure/monitoring"
	"github.com/turtacn/apiecho/internal/interfaces/http"
	"github.com/turtacn/apiecho/internal/interfaces/http/handlers"
	"github.com/turtacn/apiecho/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load config
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}
	loader := config.NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	if file := loader.ConfigFile(); file != "" {
		appLogger.Info(ctx, "Loaded config file", logger.Fields{"path": file})
	}
	loader.Watch(func(next *config.Config) {
		if next.Log.Level == appLogger.Level() {
			return
		}
		if err := appLogger.SetLevel(next.Log.Level); err != nil {
			appLogger.Warn(ctx, "Ignoring invalid log level", logger.Fields{"level": next.Log.Level})
			return
		}
		appLogger.Info(ctx, "Log level changed", logger.Fields{"level": next.Log.Level})
	}, func(err error) {
		appLogger.Error(ctx, "Config reload rejected", err)
	})

	// Initialize tracing
	tracing, err := monitoring.NewTracingManager(&cfg.Tracing, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize tracer", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tracing.Shutdown(shutdownCtx)
	}()

	metrics := monitoring.NewMetrics(&cfg.Metrics)

	router := http.NewRouter(http.RouterDependencies{
		Config:         cfg,
		Logger:         appLogger,
		Tracing:        tracing,
		APIHandler:     handlers.NewAPIHandler(metrics, cfg.API.ServiceTier(), appLogger),
		MetricsHandler: handlers.NewMetricsHandler(metrics, appLogger),
		HealthHandler:  handlers.NewHealthHandler(),
	})

	appLogger.Info(ctx, "Starting API service", logger.Fields{
		"port": cfg.Server.Port,
		"tier": cfg.API.Tier,
	})
	if err := router.Run(ctx); err != nil {
		appLogger.Fatal(ctx, "HTTP server failed", err)
	}
}
