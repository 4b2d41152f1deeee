package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	PolicyAbort = "abort"
	PolicySkip  = "skip"
)

type Config struct {
	App      AppConfig
	Log      LogConfig
	Store    StoreConfig
	Database DatabaseConfig
	Files    FilesConfig
}

type AppConfig struct {
	Env string `validate:"oneof=development production"`
}

type LogConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Output string `validate:"required"`
}

type StoreConfig struct {
	Driver string `validate:"oneof=postgres memory"`
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
	SSLMode  string
}

type FilesConfig struct {
	Import       string `validate:"required"`
	Backup       string `validate:"required"`
	ImportPolicy string `validate:"oneof=abort skip"`
}

var validate = validator.New()

// Load reads an optional .env file, an optional inventory.{yaml,toml,json}
// file and the environment, in increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("inventory")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_OUTPUT", "inventory.log")
	v.SetDefault("STORE_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "inventory")
	v.SetDefault("DB_PASSWORD", "inventory")
	v.SetDefault("DB_DATABASE", "inventory")
	v.SetDefault("DB_SCHEMA", "public")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("IMPORT_FILE", "inventory.csv")
	v.SetDefault("BACKUP_FILE", "back_up.csv")
	v.SetDefault("IMPORT_POLICY", PolicyAbort)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("Warning: Could not read config file: %v", err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Env: v.GetString("APP_ENV"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Output: v.GetString("LOG_OUTPUT"),
		},
		Store: StoreConfig{
			Driver: v.GetString("STORE_DRIVER"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Database: v.GetString("DB_DATABASE"),
			Schema:   v.GetString("DB_SCHEMA"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Files: FilesConfig{
			Import:       v.GetString("IMPORT_FILE"),
			Backup:       v.GetString("BACKUP_FILE"),
			ImportPolicy: v.GetString("IMPORT_POLICY"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every section against its validation tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Store.Driver == DriverPostgres && c.Database.Host == "" {
		return errors.New("invalid configuration: DB_HOST is required for the postgres driver")
	}
	return nil
}
