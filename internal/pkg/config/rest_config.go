package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// RestConfig holds every setting the REST API process needs
type RestConfig struct {
	Port      string            `yaml:"port" validate:"required,numeric"`
	Database  DatabaseSettings  `yaml:"database"`
	Logger    LoggerSettings    `yaml:"logger"`
	Auth      AuthSettings      `yaml:"auth"`
	Simulator SimulatorSettings `yaml:"simulator"`
	Metrics   MetricsSettings   `yaml:"metrics"`
	Tracing   TracingSettings   `yaml:"tracing"`
}

// DefaultRestConfig returns the configuration used when a key is absent from the YAML file
func DefaultRestConfig() *RestConfig {
	return &RestConfig{
		Port: "8000",
		Database: DatabaseSettings{
			Type: SqliteDbType,
			DSN:  "trade-floor.db",
		},
		Logger: LoggerSettings{
			LogLevel: LogLevelInfo,
			LogType:  LogTypeConsole,
		},
		Auth: AuthSettings{
			TokenTTL:     24 * time.Hour,
			StartingCash: 10000,
		},
		Simulator: SimulatorSettings{
			Enabled:    true,
			Interval:   time.Second,
			Volatility: 0.002,
			MaxCatchUp: 300,
			Timezone:   "America/New_York",
		},
		Metrics: MetricsSettings{
			Enabled: true,
			Path:    "/metrics",
		},
		Tracing: TracingSettings{
			Enabled:     false,
			ServiceName: "trade-floor-rest-api",
		},
	}
}

// Validate checks the configuration tree
func (c *RestConfig) Validate() error {
	if err := validator.New().StructPartial(c, "Port"); err != nil {
		return fmt.Errorf("validation failed for RestConfig: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Simulator.Validate(); err != nil {
		return err
	}
	if err := validator.New().Struct(&c.Metrics); err != nil {
		return fmt.Errorf("validation failed for MetricsSettings: %w", err)
	}
	if err := validator.New().Struct(&c.Tracing); err != nil {
		return fmt.Errorf("validation failed for TracingSettings: %w", err)
	}
	return nil
}

// InitializeRestConfig loads the YAML file at path on top of the defaults, applies
// environment overrides and validates the result. A missing file is not an error.
func InitializeRestConfig(path string) (*RestConfig, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := DefaultRestConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *RestConfig) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DB_TYPE"); v != "" {
		cfg.Database.Type = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logger.LogLevel = v
	}
}
