package commands

import (
	"fmt"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/app"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/forum"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/infrastructure/cryptography"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// AdminCommandHandler encapsulates the maintenance commands.
type AdminCommandHandler struct{}

// NewAdminCommandHandler returns an AdminCommandHandler
func NewAdminCommandHandler() *AdminCommandHandler {
	return &AdminCommandHandler{}
}

// SeedForumCmd replaces the forum content with the demo thread
func (commandHandler *AdminCommandHandler) SeedForumCmd(cmd *cobra.Command, _ []string) error {
	env, err := openEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	seeder, err := newDemoSeeder(env)
	if err != nil {
		return err
	}
	if err := seeder.SeedDemo(cmd.Context()); err != nil {
		return err
	}
	env.logger.Info("Demo forum thread seeded")
	return nil
}

func newDemoSeeder(env *environment) (forum.DemoSeeder, error) {
	topicRepo, err := persistence.NewGormTopicRepository(env.db, env.logger)
	if err != nil {
		return nil, err
	}
	postRepo, err := persistence.NewGormPostRepository(env.db, env.logger)
	if err != nil {
		return nil, err
	}
	commentRepo, err := persistence.NewGormCommentRepository(env.db, env.logger)
	if err != nil {
		return nil, err
	}
	reactionRepo, err := persistence.NewGormReactionRepository(env.db, env.logger)
	if err != nil {
		return nil, err
	}
	userRepo, err := persistence.NewGormUserRepository(env.db, env.logger)
	if err != nil {
		return nil, err
	}
	hasher, err := cryptography.NewBcryptHasher(0, env.logger)
	if err != nil {
		return nil, err
	}
	return app.NewDemoSeeder(topicRepo, postRepo, commentRepo, reactionRepo, userRepo, hasher,
		decimal.NewFromFloat(env.cfg.Auth.StartingCash), env.logger)
}

// DumpTransactionsCmd deletes every transaction and resets all balances
func (commandHandler *AdminCommandHandler) DumpTransactionsCmd(cmd *cobra.Command, _ []string) error {
	env, err := openEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	tradeRepo, err := persistence.NewGormTradeRepository(env.db, env.logger)
	if err != nil {
		return err
	}
	userRepo, err := persistence.NewGormUserRepository(env.db, env.logger)
	if err != nil {
		return err
	}
	historyRepo, err := persistence.NewGormPriceHistoryRepository(env.db, env.logger)
	if err != nil {
		return err
	}
	simulator, err := NewMarketCommandHandler().simulator(env)
	if err != nil {
		return err
	}
	portfolioService, err := app.NewPortfolioService(tradeRepo, userRepo, historyRepo, simulator,
		decimal.NewFromFloat(env.cfg.Auth.StartingCash), env.cfg.Simulator.Location(), env.logger)
	if err != nil {
		return err
	}
	return portfolioService.DumpTransactions(cmd.Context())
}

// CreateAdminCmd registers an account with the admin role
func (commandHandler *AdminCommandHandler) CreateAdminCmd(cmd *cobra.Command, _ []string) error {
	var reg users.Registration
	for flag, target := range map[string]*string{
		"email":      &reg.Email,
		"password":   &reg.Password,
		"first-name": &reg.FirstName,
		"last-name":  &reg.LastName,
	} {
		value, err := cmd.Flags().GetString(flag)
		if err != nil {
			return fmt.Errorf("invalid %s flag: %w", flag, err)
		}
		*target = value
	}

	env, err := openEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	userRepo, err := persistence.NewGormUserRepository(env.db, env.logger)
	if err != nil {
		return err
	}
	hasher, err := cryptography.NewBcryptHasher(0, env.logger)
	if err != nil {
		return err
	}
	tokens, err := cryptography.NewJWTIssuer(env.cfg.Auth.JWTSecret, env.cfg.Auth.TokenTTL, env.logger)
	if err != nil {
		return err
	}
	userService, err := app.NewUserService(userRepo, hasher, tokens,
		decimal.NewFromFloat(env.cfg.Auth.StartingCash), env.logger)
	if err != nil {
		return err
	}

	admin, err := userService.RegisterAdmin(cmd.Context(), reg)
	if err != nil {
		return err
	}
	env.logger.Info("Created admin ", admin.Email, " with id ", admin.ID)
	return nil
}

// InitAdminCommands registers maintenance commands
func InitAdminCommands(rootCmd *cobra.Command) error {
	handler := NewAdminCommandHandler()

	var seedForumCmd = &cobra.Command{
		Use:   "seed-forum",
		Short: "Replace the forum content with the demo thread",
		RunE:  handler.SeedForumCmd,
	}
	rootCmd.AddCommand(seedForumCmd)

	var dumpTransactionsCmd = &cobra.Command{
		Use:   "dump-transactions",
		Short: "Delete every transaction and reset all balances to the starting cash",
		RunE:  handler.DumpTransactionsCmd,
	}
	rootCmd.AddCommand(dumpTransactionsCmd)

	var createAdminCmd = &cobra.Command{
		Use:   "create-admin",
		Short: "Register an account with the admin role",
		RunE:  handler.CreateAdminCmd,
	}
	createAdminCmd.Flags().StringP("email", "", "", "Email of the admin account")
	createAdminCmd.Flags().StringP("password", "", "", "Password of the admin account (min 8 characters)")
	createAdminCmd.Flags().StringP("first-name", "", "", "First name")
	createAdminCmd.Flags().StringP("last-name", "", "", "Last name")
	for _, flag := range []string{"email", "password", "first-name", "last-name"} {
		if err := createAdminCmd.MarkFlagRequired(flag); err != nil {
			return fmt.Errorf("failed to mark %s required: %w", flag, err)
		}
	}
	rootCmd.AddCommand(createAdminCmd)

	return nil
}
