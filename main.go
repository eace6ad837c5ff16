package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nft-auction/internal/config"
	contract "nft-auction/internal/contractRuntime"
	"nft-auction/internal/events"
	"nft-auction/internal/repository"
	"nft-auction/internal/server"
	"nft-auction/utils"
)

func main() {
	cfg := config.Load()
	utils.SetLevel(cfg.LogLevel)

	store, closeStore, err := openStore(cfg)
	if err != nil {
		utils.Fatal("Failed to open storage", map[string]any{"driver": cfg.StorageDriver, "error": err.Error()})
	}
	defer closeStore()

	publisher, closePublisher := openPublisher(cfg)
	defer closePublisher()

	runtime, err := contract.NewContractRuntime(context.Background(), store, publisher, contract.Options{
		Fee:               cfg.TransactionFee,
		Grant:             cfg.InitialGrant,
		OperatorAddress:   cfg.ShieldedAddress,
		UnshieldedAddress: cfg.UnshieldedAddress,
		ContractAddress:   cfg.ContractAddress,
	})
	if err != nil {
		utils.Fatal("Failed to initialize contract runtime", map[string]any{"error": err.Error()})
	}

	router := server.SetupRouter(runtime)

	srv := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		utils.Info("Starting contract server", map[string]any{
			"addr":             srv.Addr,
			"storage":          cfg.StorageDriver,
			"operator":         cfg.ShieldedAddress,
			"contract_address": cfg.ContractAddress,
			"status":           runtime.Status().Name(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("Failed to start server", map[string]any{"error": err.Error()})
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}
	utils.Info("Server stopped gracefully", nil)
}

// openStore builds the storage backend selected by STORAGE_DRIVER
func openStore(cfg *config.Config) (repository.Store, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverMemory, "":
		return repository.NewMemoryStore(), func() {}, nil
	case config.DriverFile:
		s, err := repository.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	case config.DriverRedis:
		s, err := repository.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, "nft-auction:")
		if err != nil {
			return nil, nil, err
		}
		return s, closer(s), nil
	case config.DriverPostgres:
		s, err := repository.NewSQLStore(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, closer(s), nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// openPublisher connects to NATS when NATS_URL is set; events are dropped otherwise
func openPublisher(cfg *config.Config) (events.Publisher, func()) {
	if cfg.NATSURL == "" {
		return events.NopPublisher{}, func() {}
	}
	p, err := events.NewNATSPublisher(cfg.NATSURL)
	if err != nil {
		utils.Warn("NATS unavailable, events disabled", map[string]any{"url": cfg.NATSURL, "error": err.Error()})
		return events.NopPublisher{}, func() {}
	}
	return p, closer(p)
}

func closer(c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			utils.Warn("close failed", map[string]any{"error": err.Error()})
		}
	}
}
