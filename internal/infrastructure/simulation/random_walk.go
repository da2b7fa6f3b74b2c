// Package simulation generates synthetic stock prices.
package simulation

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/market"
	"github.com/shopspring/decimal"
)

// MinPrice is the floor of every generated value
var MinPrice = decimal.RequireFromString("0.01")

// randomWalk struct that implements the PriceGenerator interface
type randomWalk struct {
	mu         sync.Mutex
	rng        *rand.Rand
	volatility float64
}

// NewRandomWalk creates a generator whose relative step is normally distributed
// with the given standard deviation. Equal seeds produce equal sequences.
func NewRandomWalk(volatility float64, seed int64) (market.PriceGenerator, error) {
	if volatility <= 0 || volatility >= 1 {
		return nil, fmt.Errorf("volatility must be in (0, 1), got %v", volatility)
	}
	return &randomWalk{
		rng:        rand.New(rand.NewSource(seed)),
		volatility: volatility,
	}, nil
}

func (w *randomWalk) Next(prev decimal.Decimal) decimal.Decimal {
	w.mu.Lock()
	step := w.rng.NormFloat64() * w.volatility
	w.mu.Unlock()

	next := prev.Mul(decimal.NewFromFloat(1 + step)).Round(2)
	if next.LessThan(MinPrice) {
		return MinPrice
	}
	return next
}
