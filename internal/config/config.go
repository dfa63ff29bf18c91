// Package config handles loading and parsing application configuration.
// Values are read, in priority order, from:
//  1. The process environment (optionally seeded from a .env file).
//  2. A YAML file named by CONFIG_PATH or the --config flag, if any.
//  3. The env-default tags below.
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Supported values of Storage.Driver. They are the database/sql driver
// names registered by github.com/mattn/go-sqlite3 and
// github.com/jackc/pgx/v5/stdlib.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity: "dev", "staging" or "prod".
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// LogLevel is any level understood by zapcore ("debug", "info", ...).
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	Storage    Storage    `yaml:"storage"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Metrics    Metrics    `yaml:"metrics"`
}

// Storage holds the database connection settings.
type Storage struct {
	// Driver selects the database/sql driver: "sqlite3" or "pgx".
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite3"`

	// DSN is the connection string: a file path for SQLite, a
	// postgres:// URL for PostgreSQL.
	DSN string `yaml:"dsn" env:"DATABASE_URL" env-required:"true"`

	MaxOpenConns    int           `yaml:"max_open_conns" env:"STORAGE_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"STORAGE_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"STORAGE_CONN_MAX_LIFETIME" env-default:"5m"`
}

// HTTPServer holds settings specific to the HTTP server.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:8082"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_SERVER_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_SERVER_IDLE_TIMEOUT" env-default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env:"HTTP_SERVER_REQUEST_TIMEOUT" env-default:"5s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Metrics controls the Prometheus endpoint.
type Metrics struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path" env:"METRICS_PATH" env-default:"/metrics"`
}

// Load builds the configuration from the sources listed in the package
// doc. args are the command-line arguments without the program name.
func Load(args []string) (*Config, error) {
	// A missing .env file is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config.Load: read .env: %w", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		fset := flag.NewFlagSet("library-api", flag.ContinueOnError)
		path := fset.String("config", "", "Path to the configuration YAML file")
		if err := fset.Parse(args); err != nil {
			return nil, fmt.Errorf("config.Load: parse flags: %w", err)
		}
		configPath = *path
	}

	var cfg Config
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config.Load: config file %s: %w", configPath, err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read %s: %w", configPath, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: read env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return errors.New("metrics path must not be empty")
	}
	return nil
}
