package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Supported database drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort       string        `envconfig:"SERVER_PORT" default:"8080"`
	DBDriver         string        `envconfig:"DB_DRIVER" default:"mysql"`
	MySQLDSN         string        `envconfig:"MYSQL_DSN" default:"user:password@tcp(localhost:3306)/timetrack?charset=utf8mb4&parseTime=True&loc=UTC"`
	SQLitePath       string        `envconfig:"SQLITE_PATH" default:"timetrack.db"`
	DBConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"30s"`
	ResetDB          bool          `envconfig:"RESET_DB" default:"false"`
	RedisAddr        string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB          int           `envconfig:"REDIS_DB" default:"0"`
	RedisPass        string        `envconfig:"REDIS_PASSWORD"`
	JWTSecret        string        `envconfig:"JWT_SECRET" default:"change-me"`
	SwaggerHost      string        `envconfig:"SWAGGER_HOST"`
	DefaultPageSize  int           `envconfig:"DEFAULT_PAGE_SIZE" default:"25"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
	CORSOrigins      []string      `envconfig:"CORS_ORIGINS" default:"*"`
}

// Load builds Config from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("port", cfg.ServerPort).
		Str("db_driver", cfg.DBDriver).
		Bool("reset_db", cfg.ResetDB).
		Str("redis_addr", cfg.RedisAddr).
		Int("default_page_size", cfg.DefaultPageSize).
		Str("log_level", cfg.LogLevel).
		Msg("Configuration loaded")

	return &cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.DefaultPageSize <= 0 {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be positive, got %d", c.DefaultPageSize)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return c.SQLitePath
	}
	return c.MySQLDSN
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return ":" + c.ServerPort
}
