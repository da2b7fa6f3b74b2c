package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// AuthSettings configures token issuing and the virtual bankroll of new accounts
type AuthSettings struct {
	JWTSecret    string        `yaml:"jwt_secret" validate:"required,min=16"`
	TokenTTL     time.Duration `yaml:"token_ttl" validate:"required"`
	StartingCash float64       `yaml:"starting_cash" validate:"gt=0"`
}

// Validate checks that all fields in AuthSettings are valid
func (s *AuthSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for AuthSettings: %w", err)
	}
	return nil
}

// SimulatorSettings configures the synthetic price generator
type SimulatorSettings struct {
	Enabled    bool          `yaml:"enabled"`
	Interval   time.Duration `yaml:"interval" validate:"required"`
	Volatility float64       `yaml:"volatility" validate:"gt=0,lt=1"`
	MaxCatchUp int           `yaml:"max_catch_up" validate:"min=1"`
	Timezone   string        `yaml:"timezone" validate:"required"`
}

// Validate checks that all fields in SimulatorSettings are valid
func (s *SimulatorSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for SimulatorSettings: %w", err)
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("unknown simulator timezone %q: %w", s.Timezone, err)
	}
	return nil
}

// Location returns the market timezone used when formatting quote dates
func (s *SimulatorSettings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// MetricsSettings toggles the Prometheus scrape endpoint
type MetricsSettings struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"required_if=Enabled true"`
}

// TracingSettings toggles OpenTelemetry tracing to stdout
type TracingSettings struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name" validate:"required_if=Enabled true"`
}
