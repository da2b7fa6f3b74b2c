package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Supported database types
const (
	SqliteDbType   = "sqlite"
	PostgresDbType = "postgres"
)

// DatabaseSettings holds the connection settings of the relational store
type DatabaseSettings struct {
	Type string `yaml:"type" validate:"required,oneof=sqlite postgres"`
	DSN  string `yaml:"dsn" validate:"required"`
	// Name is the PostgreSQL database created on demand; unused for SQLite
	Name string `yaml:"name" validate:"required_if=Type postgres"`
}

// Validate checks that all fields in DatabaseSettings are valid
func (s *DatabaseSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}
	return nil
}
