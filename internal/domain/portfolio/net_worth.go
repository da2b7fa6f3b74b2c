package portfolio

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// NetWorthPoint is the value of cash plus holdings at the end of a day.
type NetWorthPoint struct {
	Date  time.Time
	Value decimal.Decimal
}

// PriceLookup returns the last known value of a company at t; ok is false when
// nothing was recorded yet.
type PriceLookup func(companyID uint, at time.Time) (value decimal.Decimal, ok bool, err error)

// NetWorthHistory rebuilds one point per calendar day in loc, from the day of the
// first transaction up to now. txs must be in execution order; currentCash is the
// balance after all of them. When no price was recorded for a company the last
// trade price is used instead.
func NetWorthHistory(currentCash decimal.Decimal, txs []*Transaction, now time.Time, loc *time.Location, priceAt PriceLookup) ([]NetWorthPoint, error) {
	now = now.In(loc)
	if len(txs) == 0 {
		return []NetWorthPoint{{Date: startOfDay(now), Value: currentCash.Round(2)}}, nil
	}

	cash := currentCash
	for _, tx := range txs {
		cash = cash.Sub(tx.CashDelta())
	}

	lastTradePrice := make(map[uint]decimal.Decimal)
	positions := make(map[uint]Position)
	next := 0

	var points []NetWorthPoint
	last := startOfDay(now)
	for day := startOfDay(txs[0].ExecutedAt.In(loc)); !day.After(last); day = day.AddDate(0, 0, 1) {
		end := day.AddDate(0, 0, 1)
		if end.After(now) {
			end = now
		}

		for next < len(txs) && !txs[next].ExecutedAt.After(end) {
			tx := txs[next]
			cash = cash.Add(tx.CashDelta())
			positions[tx.CompanyID] = positions[tx.CompanyID].apply(tx)
			lastTradePrice[tx.CompanyID] = tx.Price
			next++
		}

		total := cash
		for companyID, pos := range positions {
			if pos.Shares == 0 {
				continue
			}
			price, ok, err := priceAt(companyID, end)
			if err != nil {
				return nil, fmt.Errorf("failed to price company %d at %s: %w", companyID, end.Format(time.DateOnly), err)
			}
			if !ok {
				price = lastTradePrice[companyID]
			}
			total = total.Add(price.Mul(decimal.NewFromInt(pos.Shares)))
		}
		points = append(points, NetWorthPoint{Date: day, Value: total.Round(2)})
	}
	return points, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
