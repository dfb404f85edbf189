package config

import (
	"os"
	"strconv"
	"time"
)

const (
	databaseURLEnv          = "DATABASE_URL"
	databaseMaxOpenConnsEnv = "DATABASE_MAX_OPEN_CONNS"
	databaseMaxIdleConnsEnv = "DATABASE_MAX_IDLE_CONNS"
	databaseConnMaxLifeEnv  = "DATABASE_CONN_MAX_LIFETIME_SECONDS"

	defaultDatabaseMaxOpenConns = 10
	defaultDatabaseMaxIdleConns = 5
	defaultDatabaseConnMaxLife  = 30 * time.Minute
)

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func LoadDatabaseConfig() *DatabaseConfig {
	maxOpen := defaultDatabaseMaxOpenConns
	if v := os.Getenv(databaseMaxOpenConnsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxOpen = parsed
		}
	}

	maxIdle := defaultDatabaseMaxIdleConns
	if v := os.Getenv(databaseMaxIdleConnsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			maxIdle = parsed
		}
	}

	connMaxLife := defaultDatabaseConnMaxLife
	if v := os.Getenv(databaseConnMaxLifeEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			connMaxLife = time.Duration(parsed) * time.Second
		}
	}

	return &DatabaseConfig{
		URL:             os.Getenv(databaseURLEnv),
		MaxOpenConns:    maxOpen,
		MaxIdleConns:    maxIdle,
		ConnMaxLifetime: connMaxLife,
	}
}

func (c *DatabaseConfig) Validate() error {
	if c == nil || c.URL == "" {
		return ErrDatabaseURLMissing
	}
	return nil
}
