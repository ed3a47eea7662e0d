package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatemaakther1/Social-Media-App/internal/app"
	"github.com/fatemaakther1/Social-Media-App/internal/config"
	"github.com/fatemaakther1/Social-Media-App/internal/database"
	"github.com/fatemaakther1/Social-Media-App/internal/events"
	"github.com/fatemaakther1/Social-Media-App/internal/logging"
	"github.com/fatemaakther1/Social-Media-App/internal/metrics"
	"github.com/fatemaakther1/Social-Media-App/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Env)
	slog.SetDefault(logger)

	// --- Database ---
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, logger)
		if err != nil {
			logger.Warn("RabbitMQ unavailable, feed events disabled", "error", err)
			mqClient = nil
		} else if err := mqClient.ConsumeFeedEvents(events.LogHandler(logger)); err != nil {
			logger.Error("failed to start feed event consumer", "error", err)
		}
	}

	// --- Metrics ---
	var provider *metrics.Provider
	if cfg.MetricsEnabled {
		provider, err = metrics.Init("social-media-app")
		if err != nil {
			logger.Error("failed to initialize metrics", "error", err)
			os.Exit(1)
		}
	}

	server := app.New(app.Deps{
		Config:  cfg,
		DB:      db,
		Logger:  logger,
		Broker:  mqClient,
		Metrics: provider,
	})

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("starting server", "addr", cfg.AppPort, "env", cfg.Env)
		if err := server.Listen(cfg.AppPort); err != nil {
			logger.Error("server failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	logger.Info("shutting down server")

	if err := server.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("error during Fiber shutdown", "error", err)
	}
	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			logger.Error("error closing RabbitMQ connection", "error", err)
		}
	}
	if provider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			logger.Error("error shutting down metrics", "error", err)
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("server gracefully stopped")
}
