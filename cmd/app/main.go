package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wanderinggate/merchant-service/internal/config"
	"github.com/wanderinggate/merchant-service/internal/database"
	"github.com/wanderinggate/merchant-service/internal/database/postgres"
	"github.com/wanderinggate/merchant-service/internal/inventory"
	"github.com/wanderinggate/merchant-service/internal/merchant"
	"github.com/wanderinggate/merchant-service/internal/profile"
	"github.com/wanderinggate/merchant-service/internal/server"
)

const (
	dbMaxConnections    = 25
	dbMaxConnIdleTime   = 5 * time.Minute
	dbMaxConnLifetime   = 30 * time.Minute
	shutdownGracePeriod = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)
	slog.Info("Starting merchant service", "version", cfg.Version, "environment", cfg.Environment)

	connString := cfg.GetDBConnString()

	dbPool, err := database.NewPool(connString, dbMaxConnections, dbMaxConnIdleTime, dbMaxConnLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.Migrate(context.Background(), connString); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	merchantRepo := postgres.NewMerchantRepository(dbPool)
	inventoryRepo := postgres.NewInventoryRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)

	inventoryService := inventory.NewService(inventoryRepo)
	profileService := profile.NewService(profileRepo)

	merchantCache := merchant.NewCache(cfg.MerchantCacheSize, cfg.MerchantCacheTTL)
	merchantService := merchant.NewService(merchantRepo, profileRepo, inventoryService, merchantCache)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool,
		merchantService, inventoryService, profileService)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Port)
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-quit:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		slog.Error("Server forced to shut down", "error", err)
	}

	slog.Info("Server exited")
}
