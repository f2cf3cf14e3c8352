// Package db opens the optional GORM database used for solve attempt records.
package db

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultConnectTimeout = 60 * time.Second
	defaultRetryInterval  = 3 * time.Second
)

// Config holds database connection settings.
type Config struct {
	Driver         string // "postgres", "sqlite" or "" (disabled)
	DSN            string
	Migrate        bool
	ConnectTimeout time.Duration
	RetryInterval  time.Duration
}

// Enabled reports whether a database was configured.
func (c Config) Enabled() bool {
	return c.Driver != ""
}

// LoadConfig loads database configuration from environment variables.
func LoadConfig() Config {
	return Config{
		Driver:         os.Getenv("DB_DRIVER"),
		DSN:            os.Getenv("DB_DSN"),
		Migrate:        os.Getenv("RUN_MIGRATIONS") != "false",
		ConnectTimeout: defaultConnectTimeout,
		RetryInterval:  defaultRetryInterval,
	}
}

// Dialector returns the GORM dialector for cfg.Driver.
func Dialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("DB_DSN is required for driver %q", cfg.Driver)
		}
		return postgres.Open(cfg.DSN), nil
	case DriverSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "math_solver.db"
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// openFunc matches gorm.Open without options; swapped out in tests.
type openFunc func(gorm.Dialector) (*gorm.DB, error)

func gormOpen(d gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(d, &gorm.Config{})
}

// Open connects with retries until cfg.ConnectTimeout elapses, then runs
// AutoMigrate for models when cfg.Migrate is set.
func Open(cfg Config, models ...any) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := connectWithRetry(gormOpen, dialector, cfg.ConnectTimeout, cfg.RetryInterval, time.Sleep)
	if err != nil {
		return nil, err
	}

	if cfg.Migrate && len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return db, nil
}

func connectWithRetry(open openFunc, d gorm.Dialector, timeout, interval time.Duration, sleep func(time.Duration)) (*gorm.DB, error) {
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	if interval <= 0 {
		interval = defaultRetryInterval
	}

	var waited time.Duration
	for {
		db, err := open(d)
		if err == nil {
			return db, nil
		}
		if waited >= timeout {
			return nil, fmt.Errorf("DB connect failed after %v: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "interval", interval)
		sleep(interval)
		waited += interval
	}
}
