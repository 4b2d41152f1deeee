package database

import (
	"database/sql"
	"fmt"

	"inventory-manager/migrations"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// gooseLogger routes goose output into zap instead of stdout, which the menu owns.
type gooseLogger struct {
	sugar *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.sugar.Fatalf(format, v...)
}

func prepareGoose(logger *zap.Logger) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{sugar: logger.Sugar()})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// RunMigrations creates the products table if needed. It is safe to run on
// every start.
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	if err := prepareGoose(logger); err != nil {
		return err
	}

	logger.Info("Checking for pending migrations...")

	if err := goose.Up(db, "."); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations completed successfully")
	return nil
}

// GetMigrationStatus logs the current migration status
func GetMigrationStatus(db *sql.DB, logger *zap.Logger) error {
	if err := prepareGoose(logger); err != nil {
		return err
	}

	return goose.Status(db, ".")
}
