package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application's configuration values.
// Tags like `envconfig:"APP_ENV"` name the environment variable and
// `default:""` supplies the value when it is unset.
type Config struct {
	AppEnv     string `envconfig:"APP_ENV" default:"development"` // development, staging, production
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`      // debug, info, warn, error
	HttpServer ServerConfig
	GrpcServer GrpcServerConfig
	Postgres   PostgresConfig
	Catalog    CatalogConfig
}

// ServerConfig holds HTTP server-specific configurations.
type ServerConfig struct {
	Port            string        `envconfig:"HTTP_SERVER_PORT" default:"8080"`
	TimeoutRead     time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_READ" default:"15s"`
	TimeoutWrite    time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_WRITE" default:"15s"`
	TimeoutIdle     time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_IDLE" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

// GrpcServerConfig holds the health-check gRPC server settings.
type GrpcServerConfig struct {
	Port           string        `envconfig:"GRPC_SERVER_PORT" default:"9090"`
	HealthInterval time.Duration `envconfig:"GRPC_HEALTH_INTERVAL" default:"15s"`
}

// PostgresConfig holds PostgreSQL connection details and pool sizing.
type PostgresConfig struct {
	Host            string        `envconfig:"POSTGRES_HOST" required:"true"`
	Port            string        `envconfig:"POSTGRES_PORT" default:"5432"`
	User            string        `envconfig:"POSTGRES_USER" required:"true"`
	Password        string        `envconfig:"POSTGRES_PASSWORD" required:"true"`
	DBName          string        `envconfig:"POSTGRES_DBNAME" required:"true"`
	SSLMode         string        `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"POSTGRES_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"POSTGRES_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"POSTGRES_CONN_MAX_LIFETIME" default:"30m"`
	ConnMaxIdleTime time.Duration `envconfig:"POSTGRES_CONN_MAX_IDLE_TIME" default:"5m"`
}

// CatalogConfig tunes the catalog service.
type CatalogConfig struct {
	BulkConcurrency int `envconfig:"CATALOG_BULK_CONCURRENCY" default:"8"`
}

// DSN builds a lib/pq URL connection string. User and password are escaped.
func (pc *PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(pc.User, pc.Password),
		Host:     pc.Host + ":" + pc.Port,
		Path:     "/" + pc.DBName,
		RawQuery: url.Values{"sslmode": []string{pc.SSLMode}}.Encode(),
	}
	return u.String()
}

// Load reads an optional .env file and then the process environment. A
// missing .env file is not an error; variables already set in the
// environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	if cfg.Catalog.BulkConcurrency < 1 {
		return nil, fmt.Errorf("CATALOG_BULK_CONCURRENCY must be positive, got %d", cfg.Catalog.BulkConcurrency)
	}
	return &cfg, nil
}
