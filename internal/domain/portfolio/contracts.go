package portfolio

import (
	"context"

	"github.com/shopspring/decimal"
)

// TradeRepository persists transactions
type TradeRepository interface {
	// Execute checks tx against the user's cash and position with ApplyTrade, then
	// stores it and the new cash balance in a single database transaction.
	// It returns the cash balance after execution.
	Execute(ctx context.Context, tx *Transaction) (decimal.Decimal, error)
	// ListByUser returns the user's transactions in execution order
	ListByUser(ctx context.Context, userID uint) ([]*Transaction, error)
	// Truncate removes every transaction
	Truncate(ctx context.Context) error
}

// PortfolioService defines the trading and reporting operations of a user
type PortfolioService interface {
	Buy(ctx context.Context, userID, companyID uint, quantity int64) (*Transaction, error)
	Sell(ctx context.Context, userID, companyID uint, quantity int64) (*Transaction, error)
	Holdings(ctx context.Context, userID uint) ([]Holding, error)
	// Transactions returns the user's transactions, newest first
	Transactions(ctx context.Context, userID uint) ([]TransactionView, error)
	NetWorth(ctx context.Context, userID uint) ([]NetWorthPoint, error)
	// DumpTransactions clears the transaction table and resets every balance to the starting cash
	DumpTransactions(ctx context.Context) error
}
