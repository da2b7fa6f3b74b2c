package commands

import (
	"fmt"
	"time"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/app"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/market"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/infrastructure/persistence"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/infrastructure/simulation"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/logger"
	"github.com/spf13/cobra"
)

// MarketCommandHandler encapsulates the price simulator commands.
type MarketCommandHandler struct{}

// NewMarketCommandHandler returns a MarketCommandHandler
func NewMarketCommandHandler() *MarketCommandHandler {
	return &MarketCommandHandler{}
}

func (commandHandler *MarketCommandHandler) simulator(env *environment) (market.Simulator, error) {
	companyRepo, err := persistence.NewGormCompanyRepository(env.db, env.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create company repository: %w", err)
	}
	generator, err := simulation.NewRandomWalk(env.cfg.Simulator.Volatility, time.Now().UnixNano())
	if err != nil {
		return nil, fmt.Errorf("failed to create price generator: %w", err)
	}
	return app.NewStockSimulator(companyRepo, generator, env.cfg.Simulator, logger.Component(env.logger, "simulator"))
}

// SeedCompaniesCmd inserts the preset companies that are missing from the database
func (commandHandler *MarketCommandHandler) SeedCompaniesCmd(cmd *cobra.Command, _ []string) error {
	env, err := openEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	simulator, err := commandHandler.simulator(env)
	if err != nil {
		return err
	}

	created, err := simulator.InitializeDatabase(cmd.Context(), market.PresetCompanies())
	if err != nil {
		return err
	}
	env.logger.Info(fmt.Sprintf("Seeded %d of %d preset companies", created, len(market.PresetCompanies())))
	return nil
}

// SimulateCmd advances every company by the requested number of ticks
func (commandHandler *MarketCommandHandler) SimulateCmd(cmd *cobra.Command, _ []string) error {
	ticks, err := cmd.Flags().GetInt("ticks")
	if err != nil {
		return fmt.Errorf("invalid ticks flag: %w", err)
	}
	if ticks < 1 {
		return fmt.Errorf("ticks must be positive, got %d", ticks)
	}
	pause, err := cmd.Flags().GetDuration("pause")
	if err != nil {
		return fmt.Errorf("invalid pause flag: %w", err)
	}

	env, err := openEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	simulator, err := commandHandler.simulator(env)
	if err != nil {
		return err
	}
	if _, err := simulator.InitializeDatabase(cmd.Context(), market.PresetCompanies()); err != nil {
		return err
	}

	for i := 0; i < ticks; i++ {
		if i > 0 && pause > 0 {
			time.Sleep(pause)
		}
		if err := simulator.Step(cmd.Context()); err != nil {
			return err
		}
	}
	env.logger.Info(fmt.Sprintf("Simulated %d ticks", ticks))
	return nil
}

// InitMarketCommands registers market-related commands
func InitMarketCommands(rootCmd *cobra.Command) error {
	handler := NewMarketCommandHandler()

	var seedCompaniesCmd = &cobra.Command{
		Use:   "seed-companies",
		Short: "Insert the preset companies into the database",
		RunE:  handler.SeedCompaniesCmd,
	}
	rootCmd.AddCommand(seedCompaniesCmd)

	var simulateCmd = &cobra.Command{
		Use:   "simulate",
		Short: "Record simulated price ticks for every company",
		RunE:  handler.SimulateCmd,
	}
	simulateCmd.Flags().IntP("ticks", "n", 1, "Number of ticks to simulate")
	simulateCmd.Flags().DurationP("pause", "", 0, "Pause between ticks so that they carry distinct timestamps")
	rootCmd.AddCommand(simulateCmd)

	return nil
}
