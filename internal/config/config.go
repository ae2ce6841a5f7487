// Package config loads the process configuration from environment
// variables once at startup. Business logic never reads ambient state;
// everything receives the Config by reference.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store backends selectable through STORE_BACKEND.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config holds every setting the service consumes.
type Config struct {
	// Server settings
	Port    string `env:"PORT" envDefault:"3000"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`

	// CORS settings (comma separated origin list)
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	// Token signing. A zero TTL means tokens never expire, which is the
	// default contract of this service.
	Secret          string `env:"SECRET"`
	TokenTTLSeconds int    `env:"TOKEN_TTL_SECONDS" envDefault:"0"`

	// Credential store
	StoreBackend string `env:"STORE_BACKEND" envDefault:"memory"`
	DBUser       string `env:"DB_USER"`
	DBPass       string `env:"DB_PASS"`
	DatabaseDSN  string `env:"DATABASE_DSN"`
	RedisURL     string `env:"REDIS_URL" envDefault:"redis://127.0.0.1:6379/0"`
}

// Load reads the configuration from the environment. A .env file is
// loaded first when present.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnvFile() {
	if err := godotenv.Load(".env"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env"))
}

// Validate checks the settings that must be present in release mode.
// In debug mode a missing SECRET is tolerated here and surfaces when a
// token is signed or verified.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreMemory, StoreRedis, StorePostgres:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if c.GinMode == "release" {
		if c.Secret == "" {
			return fmt.Errorf("SECRET is required in release mode")
		}
		if c.StoreBackend == StoreRedis && c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required in release mode")
		}
		if c.StoreBackend == StorePostgres && c.DSN() == "" {
			return fmt.Errorf("DATABASE_DSN or DB_USER/DB_PASS are required in release mode")
		}
	}

	return nil
}

// DSN returns the postgres connection string. When DATABASE_DSN is not
// set it is assembled from the DB_USER/DB_PASS credential pair.
func (c *Config) DSN() string {
	if c.DatabaseDSN != "" {
		return c.DatabaseDSN
	}
	if c.DBUser == "" && c.DBPass == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@localhost:5432/authgate?sslmode=disable", c.DBUser, c.DBPass)
}

// TokenTTL converts the configured TTL to a duration. Zero disables
// expiry.
func (c *Config) TokenTTL() time.Duration {
	if c.TokenTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TokenTTLSeconds) * time.Second
}
