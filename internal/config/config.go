package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"

	"github.com/rl1809/console-cart/internal/core/domain"
)

const (
	StockBackendMemory = "memory"
	StockBackendRedis  = "redis"
)

// Config holds all configuration for the console cart.
type Config struct {
	LogLevel     string `env:"LOG_LEVEL" envDefault:"error"`
	ErrorLogPath string `env:"ERROR_LOG_PATH" envDefault:"log/errors.log"`

	// Stock store: memory or redis
	StockBackend string `env:"STOCK_BACKEND" envDefault:"memory"`
	RedisAddr    string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass    string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB      int    `env:"REDIS_DB" envDefault:"0"`

	// permissive or reserve
	ReservationPolicy string `env:"RESERVATION_POLICY" envDefault:"permissive"`

	// Receipt archive, disabled when the DSN is empty
	ReceiptDSN       string `env:"RECEIPT_MYSQL_DSN" envDefault:""`
	ReceiptWorkers   int    `env:"RECEIPT_WORKERS" envDefault:"2"`
	ReceiptQueueSize int    `env:"RECEIPT_QUEUE_SIZE" envDefault:"100"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration invariants. It is exported so command-line
// overrides can be re-checked after they are applied.
func (c *Config) Validate() error {
	if c.ErrorLogPath == "" {
		return fmt.Errorf("ERROR_LOG_PATH must not be empty")
	}
	switch c.StockBackend {
	case StockBackendMemory, StockBackendRedis:
	default:
		return fmt.Errorf("invalid stock backend: %q", c.StockBackend)
	}
	if _, ok := domain.ParseReservationPolicy(c.ReservationPolicy); !ok {
		return fmt.Errorf("invalid reservation policy: %q", c.ReservationPolicy)
	}
	if c.ReceiptWorkers < 1 {
		return fmt.Errorf("RECEIPT_WORKERS must be at least 1, got %d", c.ReceiptWorkers)
	}
	if c.ReceiptQueueSize < 1 {
		return fmt.Errorf("RECEIPT_QUEUE_SIZE must be at least 1, got %d", c.ReceiptQueueSize)
	}
	return nil
}

// Policy returns the parsed reservation policy. Call after Validate.
func (c *Config) Policy() domain.ReservationPolicy {
	p, _ := domain.ParseReservationPolicy(c.ReservationPolicy)
	return p
}
