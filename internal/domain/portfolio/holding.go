package portfolio

import (
	"sort"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/market"
	"github.com/shopspring/decimal"
)

// Position is the running state of a user's shares in one company.
type Position struct {
	Shares int64
	// CostBasis is the average-cost basis of the shares still held
	CostBasis decimal.Decimal
}

// AvgCost is the cost basis per held share.
func (p Position) AvgCost() decimal.Decimal {
	if p.Shares == 0 {
		return decimal.Zero
	}
	return p.CostBasis.Div(decimal.NewFromInt(p.Shares)).Round(2)
}

func (p Position) apply(tx *Transaction) Position {
	switch tx.Kind {
	case KindBuy:
		p.Shares += tx.Quantity
		p.CostBasis = p.CostBasis.Add(tx.Total)
	case KindSell:
		if p.Shares <= tx.Quantity {
			return Position{CostBasis: decimal.Zero}
		}
		released := p.CostBasis.Mul(decimal.NewFromInt(tx.Quantity)).Div(decimal.NewFromInt(p.Shares))
		p.Shares -= tx.Quantity
		p.CostBasis = p.CostBasis.Sub(released)
	}
	return p
}

// BuildPositions replays transactions in the given order into per-company positions.
func BuildPositions(txs []*Transaction) map[uint]Position {
	positions := make(map[uint]Position)
	for _, tx := range txs {
		positions[tx.CompanyID] = positions[tx.CompanyID].apply(tx)
	}
	return positions
}

// Holding is a non-empty position valued at the company's current price.
type Holding struct {
	CompanyID uint
	Symbol    string
	Name      string
	Shares    int64
	AvgCost   decimal.Decimal
	Price     decimal.Decimal
	Value     decimal.Decimal
	Gain      decimal.Decimal
}

// BuildHoldings values the open positions of txs with the given companies, ordered by ticker.
// Positions in companies missing from the map are skipped.
func BuildHoldings(txs []*Transaction, companies map[uint]*market.Company) []Holding {
	holdings := make([]Holding, 0)
	for companyID, pos := range BuildPositions(txs) {
		company, ok := companies[companyID]
		if pos.Shares == 0 || !ok {
			continue
		}
		value := company.Value.Mul(decimal.NewFromInt(pos.Shares)).Round(2)
		holdings = append(holdings, Holding{
			CompanyID: companyID,
			Symbol:    company.Symbol,
			Name:      company.Name,
			Shares:    pos.Shares,
			AvgCost:   pos.AvgCost(),
			Price:     company.Value,
			Value:     value,
			Gain:      value.Sub(pos.CostBasis).Round(2),
		})
	}
	sort.Slice(holdings, func(i, j int) bool { return holdings[i].Symbol < holdings[j].Symbol })
	return holdings
}
