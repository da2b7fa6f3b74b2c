package portfolio

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/market"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/validators"
	"github.com/shopspring/decimal"
)

// Transaction kinds
const (
	KindBuy  = "buy"
	KindSell = "sell"
)

var (
	ErrInsufficientFunds  = errors.New("insufficient cash for purchase")
	ErrInsufficientShares = errors.New("insufficient shares to sell")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	// ErrBalanceChanged is returned when another trade moved the balance mid-execution
	ErrBalanceChanged = errors.New("balance changed during execution")
)

// Transaction entity
type Transaction struct {
	ID         string `validate:"required,uuid4"`
	UserID     uint   `validate:"required"`
	CompanyID  uint   `validate:"required"`
	Kind       string `validate:"required,oneof=buy sell"`
	Quantity   int64  `validate:"required,gt=0"`
	Price      decimal.Decimal
	Total      decimal.Decimal
	ExecutedAt time.Time `validate:"required"`
}

// NewTransaction prices an order of quantity shares at price per share.
func NewTransaction(userID, companyID uint, kind string, quantity int64, price decimal.Decimal, at time.Time) (*Transaction, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	tx := &Transaction{
		ID:         uuid.NewString(),
		UserID:     userID,
		CompanyID:  companyID,
		Kind:       kind,
		Quantity:   quantity,
		Price:      price,
		Total:      price.Mul(decimal.NewFromInt(quantity)).Round(2),
		ExecutedAt: at,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return tx, nil
}

// Validate for validating Transaction struct
func (t *Transaction) Validate() error {
	return validators.ValidateStruct(t)
}

// CashDelta is the signed effect of the transaction on the user's cash.
func (t *Transaction) CashDelta() decimal.Decimal {
	if t.Kind == KindBuy {
		return t.Total.Neg()
	}
	return t.Total
}

// ShareDelta is the signed effect of the transaction on the user's position.
func (t *Transaction) ShareDelta() int64 {
	if t.Kind == KindBuy {
		return t.Quantity
	}
	return -t.Quantity
}

// ApplyTrade checks tx against the cash and the position the user holds in the
// traded company and returns the cash balance after execution.
func ApplyTrade(cash decimal.Decimal, shares int64, tx *Transaction) (decimal.Decimal, error) {
	switch tx.Kind {
	case KindBuy:
		if cash.LessThan(tx.Total) {
			return cash, ErrInsufficientFunds
		}
	case KindSell:
		if shares < tx.Quantity {
			return cash, ErrInsufficientShares
		}
	}
	return cash.Add(tx.CashDelta()), nil
}

// TransactionView is a transaction joined with the traded company for display.
type TransactionView struct {
	*Transaction
	Symbol      string
	CompanyName string
}

// NewTransactionView joins tx with company, which is nil when it is no longer tracked.
func NewTransactionView(tx *Transaction, company *market.Company) TransactionView {
	if company == nil {
		return TransactionView{Transaction: tx, Symbol: market.UnknownSymbol, CompanyName: market.UnknownName}
	}
	return TransactionView{Transaction: tx, Symbol: company.Symbol, CompanyName: company.Name}
}
