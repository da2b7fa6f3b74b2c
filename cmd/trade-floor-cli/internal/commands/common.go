package commands

import (
	"fmt"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/infrastructure/persistence"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/config"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// ConfigFlag names the persistent flag pointing at the YAML configuration
const ConfigFlag = "config"

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: "info",
		LogType:  "console",
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// environment is the configuration and migrated database a command runs against
type environment struct {
	cfg    *config.RestConfig
	db     *gorm.DB
	logger logger.Logger
}

// openEnvironment loads the configuration named by the config flag and opens its database.
func openEnvironment(cmd *cobra.Command) (*environment, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	configPath, err := cmd.Flags().GetString(ConfigFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid %s flag: %w", ConfigFlag, err)
	}
	cfg, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}
	if err := persistence.Migrate(db); err != nil {
		_ = persistence.CloseDB(db)
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &environment{cfg: cfg, db: db, logger: loggerInstance}, nil
}

func (env *environment) close() {
	if err := persistence.CloseDB(env.db); err != nil {
		env.logger.Warn("failed to close database: ", err)
	}
}
