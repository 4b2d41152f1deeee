package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"inventory-manager/internal/app"
	"inventory-manager/internal/config"
	"inventory-manager/internal/logger"

	"go.uber.org/zap"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log := logger.NewWithDefaults()
		log.Error("Failed to load configuration", zap.Error(err))
		log.Sync()
		return exitFailure
	}

	// Initialize logger
	log, err := logger.New(cfg.App.Env, cfg.Log.Level, cfg.Log.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return exitFailure
	}
	defer log.Sync()

	log.Info("Starting inventory manager",
		zap.String("env", cfg.App.Env),
		zap.String("store", cfg.Store.Driver),
		zap.String("import_file", cfg.Files.Import),
	)

	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log, os.Stdin, os.Stdout)
	if err != nil {
		log.Error("Failed to start", zap.Error(err))
		fmt.Fprintf(os.Stderr, "inventory: %v\n", err)
		return exitFailure
	}
	defer a.Close()

	err = a.Run(ctx)
	switch {
	case err == nil:
		log.Info("Inventory manager exiting")
		return exitOK
	case errors.Is(err, context.Canceled) && ctx.Err() != nil:
		log.Info("Interrupted, shutting down")
		return exitInterrupted
	default:
		log.Error("Inventory manager failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "inventory: %v\n", err)
		return exitFailure
	}
}
