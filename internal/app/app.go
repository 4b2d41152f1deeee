// Package app wires the store, the inventory service and the console together.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"inventory-manager/internal/backup"
	"inventory-manager/internal/config"
	"inventory-manager/internal/console"
	"inventory-manager/internal/database"
	"inventory-manager/internal/importer"
	"inventory-manager/internal/repository"
	"inventory-manager/internal/service"

	"go.uber.org/zap"
)

type App struct {
	config   *config.Config
	logger   *zap.Logger
	store    *database.Service
	importer *importer.Importer
	prompt   *console.Prompter
	menu     *console.Menu
}

// New opens the configured store and builds the menu on top of it. The
// caller owns the returned App and must Close it.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, in io.Reader, out io.Writer) (*App, error) {
	repo, store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// Initialize services
	svc := service.NewInventoryService(repo, logger)
	exporter := backup.NewExporter(svc, logger)
	prompt := console.NewPrompter(in, out)

	return &App{
		config:   cfg,
		logger:   logger,
		store:    store,
		importer: importer.New(svc, logger, importer.Policy(cfg.Files.ImportPolicy)),
		prompt:   prompt,
		menu:     console.NewMenu(prompt, svc, exporter, cfg.Files.Backup, logger),
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.ProductRepository, *database.Service, error) {
	if cfg.Store.Driver == config.DriverMemory {
		logger.Info("Using in-memory store, products are lost on exit")
		return repository.NewMemoryProductRepository(), nil, nil
	}

	store, err := database.New(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	// Check database health
	logger.Info("Database health check", zap.Any("health", store.Health(ctx)))

	if err := database.RunMigrations(store.DB(), logger); err != nil {
		store.Close()
		return nil, nil, err
	}
	if err := database.GetMigrationStatus(store.DB(), logger); err != nil {
		logger.Warn("Could not read migration status", zap.Error(err))
	}

	return repository.NewProductRepository(store.DB()), store, nil
}

// Run imports the configured CSV once and then hands control to the menu
// until the user quits.
func (a *App) Run(ctx context.Context) error {
	if err := a.importInventory(ctx); err != nil {
		return err
	}
	return a.menu.Run(ctx)
}

func (a *App) importInventory(ctx context.Context) error {
	path := a.config.Files.Import

	result, err := a.importer.ImportFile(ctx, path)
	if errors.Is(err, fs.ErrNotExist) {
		a.logger.Warn("Import file not found, starting with the current inventory", zap.String("path", path))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}

	if len(result.Skipped) > 0 {
		a.prompt.Printf("Skipped %d malformed rows in %s, see the log for details.\n", len(result.Skipped), path)
	}
	return nil
}

// Close releases the store and flushes the logger.
func (a *App) Close() error {
	a.logger.Info("Closing application resources")
	a.prompt.Close()

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Error("Failed to close database connection", zap.Error(err))
			return err
		}
	}

	a.logger.Sync()
	return nil
}
