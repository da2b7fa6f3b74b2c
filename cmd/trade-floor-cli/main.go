// Package main is the entry point for the trade-floor-cli application.
// It registers the market and maintenance sub-commands and executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/ryanchowdev/Stock-Market-Imitation/cmd/trade-floor-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "trade-floor-cli",
		Short: "Maintenance CLI for the trade floor",
		Long: `trade-floor-cli runs maintenance tasks against the trade floor database.
It seeds the preset companies, records simulated price ticks, seeds the demo
forum thread, resets trading and creates admin accounts.

The database is read from the REST API configuration file (--config, or the
CONFIG_PATH environment variable). Environment overrides such as DB_DSN and
JWT_SECRET apply as they do for the server.`,
		SilenceUsage: true,
	}

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = "configs/rest-app.yaml"
	}
	rootCmd.PersistentFlags().String(commands.ConfigFlag, defaultConfig, "Path to the YAML configuration")

	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitMarketCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize market commands: %w", err)
	}

	if err := commands.InitAdminCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize admin commands: %w", err)
	}

	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
