package market

import (
	"fmt"
	"strings"
	"time"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/validators"
	"github.com/shopspring/decimal"
)

// Placeholders shown for trades whose company is no longer tracked
const (
	UnknownSymbol = "?"
	UnknownName   = "unknown company"
)

// Company entity
type Company struct {
	ID     uint   `validate:"-"`
	Name   string `validate:"required,min=1,max=128"`
	Symbol string `validate:"required,ticker"`
	// Value is the current stock value, kept at two decimals
	Value decimal.Decimal
	// ReferenceValue is the value the daily change is measured against
	ReferenceValue decimal.Decimal
	LatestUpdate   time.Time `validate:"required"`
}

// Validate for validating Company struct
func (c *Company) Validate() error {
	if err := validators.ValidateStruct(c); err != nil {
		return err
	}
	if !c.Value.IsPositive() {
		return fmt.Errorf("validation failed: [Field: Value, Tag: gt]")
	}
	if !c.ReferenceValue.IsPositive() {
		return fmt.Errorf("validation failed: [Field: ReferenceValue, Tag: gt]")
	}
	return nil
}

// Change is the absolute move of the current value against the reference value.
func (c *Company) Change() decimal.Decimal {
	return c.Value.Sub(c.ReferenceValue)
}

// PercentChange is the change relative to the reference value, rounded to two decimals.
func (c *Company) PercentChange() decimal.Decimal {
	if c.ReferenceValue.IsZero() {
		return decimal.Zero
	}
	return c.Change().Div(c.ReferenceValue).Mul(decimal.NewFromInt(100)).Round(2)
}

// PricePoint is a single recorded value of a company's stock.
type PricePoint struct {
	CompanyID  uint
	Value      decimal.Decimal
	RecordedAt time.Time
}

// Tick is published to price stream subscribers each time a company's value moves.
type Tick struct {
	CompanyID uint
	Symbol    string
	Value     decimal.Decimal
	At        time.Time
}

// FuzzyMatch reports whether either string contains the other, ignoring case.
func FuzzyMatch(a, b string) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// Matches reports whether query fuzzily matches the company's name or symbol.
func (c *Company) Matches(query string) bool {
	return FuzzyMatch(c.Name, query) || FuzzyMatch(c.Symbol, query)
}
