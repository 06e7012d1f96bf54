// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New returns a Config filled with defaults.
// - Load layers defaults, the legacy PORT variable, an optional YAML file
//   and CHILDCARE_* environment variables.
// - Validation errors wrap ErrInvalidConfig, loader errors wrap ErrLoadConfig.
package config

import (
	"fmt"
	"time"

	// Embedded zone database so Asia/Seoul resolves on minimal images.
	_ "time/tzdata"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. "0.0.0.0:5000".
	Addr string `koanf:"addr"`

	// Timezone is the IANA zone in which "today" is evaluated.
	Timezone string `koanf:"timezone"`

	// MaxMonths is the statutory total of benefit months.
	MaxMonths int `koanf:"max_months"`

	// DaysPerMonth converts non-continuous usage days into months.
	DaysPerMonth int `koanf:"days_per_month"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		Addr:         "0.0.0.0:5000",
		Timezone:     "Asia/Seoul",
		MaxMonths:    36,
		DaysPerMonth: 20,
	}
}

// Location loads the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %q: %v", ErrInvalidConfig, ErrTimezone, c.Timezone, err)
	}
	return loc, nil
}

// Validate checks the invariants the service relies on.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxMonths <= 0:
		return fmt.Errorf("%w: max_months must be positive", ErrInvalidConfig)
	case c.DaysPerMonth <= 0:
		return fmt.Errorf("%w: days_per_month must be positive", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json", ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}
