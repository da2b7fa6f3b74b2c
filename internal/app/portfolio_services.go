package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/market"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/portfolio"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/logger"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/tracing"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// portfolioService implements the PortfolioService interface
type portfolioService struct {
	trades       portfolio.TradeRepository
	users        users.UserRepository
	history      market.PriceHistoryRepository
	simulator    market.Simulator
	startingCash decimal.Decimal
	location     *time.Location
	now          func() time.Time
	logger       logger.Logger
}

// NewPortfolioService creates a new instance of PortfolioService.
// Net worth days are cut at midnight in location.
func NewPortfolioService(
	trades portfolio.TradeRepository,
	userRepo users.UserRepository,
	history market.PriceHistoryRepository,
	simulator market.Simulator,
	startingCash decimal.Decimal,
	location *time.Location,
	logger logger.Logger,
) (portfolio.PortfolioService, error) {
	if location == nil {
		location = time.UTC
	}
	return &portfolioService{
		trades:       trades,
		users:        userRepo,
		history:      history,
		simulator:    simulator,
		startingCash: startingCash,
		location:     location,
		now:          time.Now,
		logger:       logger,
	}, nil
}

func (s *portfolioService) Buy(ctx context.Context, userID, companyID uint, quantity int64) (*portfolio.Transaction, error) {
	return s.trade(ctx, userID, companyID, portfolio.KindBuy, quantity)
}

func (s *portfolioService) Sell(ctx context.Context, userID, companyID uint, quantity int64) (*portfolio.Transaction, error) {
	return s.trade(ctx, userID, companyID, portfolio.KindSell, quantity)
}

// trade executes at the company's value after catching it up.
func (s *portfolioService) trade(ctx context.Context, userID, companyID uint, kind string, quantity int64) (tx *portfolio.Transaction, err error) {
	ctx, span := tracing.StartSpan(ctx, "portfolio."+kind)
	span.SetAttributes(
		attribute.Int64("user.id", int64(userID)),
		attribute.Int64("company.id", int64(companyID)),
		attribute.Int64("quantity", quantity),
	)
	defer func() { tracing.End(span, err) }()

	if quantity <= 0 {
		return nil, portfolio.ErrInvalidQuantity
	}

	company, err := s.simulator.CheckForUpdates(ctx, companyID)
	if err != nil {
		return nil, err
	}

	tx, err = portfolio.NewTransaction(userID, companyID, kind, quantity, company.Value, s.now())
	if err != nil {
		return nil, err
	}

	cash, err := s.trades.Execute(ctx, tx)
	if err != nil {
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("User %d %s %d %s at %s, cash left %s",
		userID, kind, quantity, company.Symbol, company.Value.StringFixed(2), cash.StringFixed(2)))
	return tx, nil
}

func (s *portfolioService) Holdings(ctx context.Context, userID uint) ([]portfolio.Holding, error) {
	txs, err := s.trades.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	companies, err := s.simulator.LoadCompanies(ctx)
	if err != nil {
		return nil, err
	}
	return portfolio.BuildHoldings(txs, companies), nil
}

func (s *portfolioService) Transactions(ctx context.Context, userID uint) ([]portfolio.TransactionView, error) {
	txs, err := s.trades.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	companies, err := s.simulator.LoadCompanies(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]portfolio.TransactionView, 0, len(txs))
	for i := len(txs) - 1; i >= 0; i-- {
		views = append(views, portfolio.NewTransactionView(txs[i], companies[txs[i].CompanyID]))
	}
	return views, nil
}

func (s *portfolioService) NetWorth(ctx context.Context, userID uint) ([]portfolio.NetWorthPoint, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	txs, err := s.trades.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	lookup := func(companyID uint, at time.Time) (decimal.Decimal, bool, error) {
		p, ok, err := s.history.ValueAt(ctx, companyID, at)
		return p.Value, ok, err
	}
	return portfolio.NetWorthHistory(user.Cash, txs, s.now(), s.location, lookup)
}

func (s *portfolioService) DumpTransactions(ctx context.Context) error {
	if err := s.trades.Truncate(ctx); err != nil {
		return err
	}
	if err := s.users.ResetCash(ctx, s.startingCash); err != nil {
		return err
	}
	s.logger.Warn("Dumped every transaction and reset balances to ", s.startingCash.StringFixed(2))
	return nil
}
