package market

import "github.com/shopspring/decimal"

// DefaultTicker is shown when no ticker, or an unknown one, is requested.
const DefaultTicker = "^GSPC"

// CompanyPreset describes a company tracked by the simulator from the first start.
type CompanyPreset struct {
	Symbol string
	Name   string
	Value  decimal.Decimal
	// Change is the move of the last trading day, used to derive the reference value
	Change decimal.Decimal
}

// ReferenceValue is the value the preset change was measured from.
func (p CompanyPreset) ReferenceValue() decimal.Decimal {
	return p.Value.Sub(p.Change)
}

var presets = []struct {
	symbol, name, value, change string
}{
	{"^GSPC", "S&P 500", "4766.18", "-12.55"},
	{"AAPL", "Apple Inc.", "177.57", "-0.63"},
	{"MSFT", "Microsoft Corporation", "336.32", "-3.19"},
	{"AMZN", "Amazon.com, Inc.", "3334.34", "-37.95"},
	{"GOOGL", "Alphabet Inc. Class A", "2893.59", "-10.71"},
	{"GOOG", "Alphabet Inc. Class C", "2897.04", "-13.94"},
	{"TSLA", "Tesla, Inc.", "1056.78", "-14.04"},
	{"BRK.B", "Berkshire Hathaway Inc. Class B", "299.00", "-0.29"},
	{"JNJ", "Johnson & Johnson", "171.07", "0.54"},
	{"UNH", "UnitedHealth Group Incorporated", "502.14", "-1.59"},
	{"FB", "Meta Platforms, Inc.", "336.35", "-7.99"},
	{"NVDA", "NVIDIA Corporation", "294.11", "-8.55"},
	{"XOM", "Exxon Mobil Corporation", "61.19", "-0.21"},
	{"JPM", "JPMorgan Chase & Co.", "158.35", "-1.01"},
	{"PG", "The Procter & Gamble Company", "163.58", "0.86"},
	{"V", "Visa Inc.", "216.71", "-1.65"},
	{"CVX", "Chevron Corporation", "117.35", "-0.55"},
	{"HD", "The Home Depot, Inc.", "415.01", "-3.85"},
	{"MA", "Mastercard Incorporated", "359.32", "-2.10"},
	{"PFE", "Pfizer Inc.", "59.05", "-0.49"},
	{"ABBV", "AbbVie Inc.", "135.40", "0.91"},
}

// PresetCompanies returns the companies seeded into an empty market, in display order.
func PresetCompanies() []CompanyPreset {
	out := make([]CompanyPreset, 0, len(presets))
	for _, p := range presets {
		out = append(out, CompanyPreset{
			Symbol: p.symbol,
			Name:   p.name,
			Value:  decimal.RequireFromString(p.value),
			Change: decimal.RequireFromString(p.change),
		})
	}
	return out
}

// PresetChange returns the preset daily change of ticker, or zero for unknown tickers.
func PresetChange(ticker string) decimal.Decimal {
	for _, p := range presets {
		if p.symbol == ticker {
			return decimal.RequireFromString(p.change)
		}
	}
	return decimal.Zero
}
