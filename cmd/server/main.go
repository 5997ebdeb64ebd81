package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/marcuskbra/skeleton-challenge/internal/api"
	"github.com/marcuskbra/skeleton-challenge/internal/clock"
	"github.com/marcuskbra/skeleton-challenge/internal/config"
	"github.com/marcuskbra/skeleton-challenge/internal/observability"
	"github.com/marcuskbra/skeleton-challenge/internal/repository/memory"
	"github.com/marcuskbra/skeleton-challenge/internal/service"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional external dependencies participate in readiness only; the
	// entity store itself is in memory.
	var checkers []observability.Checker

	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		checkers = append(checkers, observability.CheckerFunc{
			CheckName: "database",
			Fn:        pool.Ping,
		})
		logger.Info("database readiness check enabled")
	}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("failed to parse redis url", "error", err)
			os.Exit(1)
		}
		client := redis.NewClient(opts)
		defer client.Close()
		checkers = append(checkers, observability.CheckerFunc{
			CheckName: "cache",
			Fn: func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			},
		})
		logger.Info("redis readiness check enabled")
	}

	metrics := observability.NewMetrics("skeleton")
	store := memory.NewEntityStore().NotifyCount(func(count int) {
		metrics.EntitiesActive.Set(float64(count))
	})
	healthHandler := observability.NewHealthHandler(version, cfg.Environment, checkers...)

	entities := service.NewEntityService(store, clock.RealClock{}, logger).WithMetrics(metrics)
	handler := api.NewHandler(entities, logger)
	router := api.NewRouter(api.RouterConfig{
		Handler:       handler,
		HealthHandler: healthHandler,
		Metrics:       metrics,
		Logger:        logger,
	})

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", cfg.Addr, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	healthHandler.SetReady(true)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")
	healthHandler.SetReady(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown HTTP server", "error", err)
	}

	logger.Info("shutdown complete")
}
