package api

import (
	"errors"
	"fmt"
	"time"
)

// Config is read once from the environment at startup and never mutated.
type Config struct {
	Port            int           `envconfig:"PORT" default:"8081"`
	Version         string        `envconfig:"VERSION" default:"1.0.0"`
	MetricsAddr     string        `envconfig:"METRICS_ADDR" default:"0.0.0.0:9091"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	MaxBodyBytes    int64         `envconfig:"MAX_BODY_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// ListenAddr is the API listener address on all interfaces.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout))
	}
	return errors.Join(errs...)
}
