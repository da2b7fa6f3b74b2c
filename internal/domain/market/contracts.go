package market

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CompanyRepository defines the persistence operations on companies
type CompanyRepository interface {
	// Create inserts a company together with its seed price point
	Create(ctx context.Context, company *Company) error
	// List returns all companies ordered by id
	List(ctx context.Context) ([]*Company, error)
	GetByID(ctx context.Context, companyID uint) (*Company, error)
	GetBySymbol(ctx context.Context, symbol string) (*Company, error)
	// UpdateQuote stores the new current value of a company and appends the
	// generated price points in a single database transaction
	UpdateQuote(ctx context.Context, company *Company, points []PricePoint) error
}

// PriceHistoryRepository reads recorded price points
type PriceHistoryRepository interface {
	// ListByCompany returns the most recent points of a company in chronological order.
	// A non-positive limit returns the full history.
	ListByCompany(ctx context.Context, companyID uint, limit int) ([]PricePoint, error)
	// ValueAt returns the last value recorded at or before t. The boolean is false
	// when no point exists yet.
	ValueAt(ctx context.Context, companyID uint, t time.Time) (PricePoint, bool, error)
}

// PriceGenerator produces the next simulated value from the previous one
type PriceGenerator interface {
	Next(prev decimal.Decimal) decimal.Decimal
}

// Simulator generates synthetic quotes and exposes read accessors over them
type Simulator interface {
	// InitializeDatabase seeds the presets that are missing from the company table.
	// It returns the number of companies created.
	InitializeDatabase(ctx context.Context, presets []CompanyPreset) (int, error)
	// LoadCompanies returns every tracked company keyed by id
	LoadCompanies(ctx context.Context) (map[uint]*Company, error)
	// CheckForUpdates catches a single company up with the intervals elapsed since its last update
	CheckForUpdates(ctx context.Context, companyID uint) (*Company, error)
	// Step advances every company by one tick
	Step(ctx context.Context) error
	// Run calls Step every interval until ctx is done
	Run(ctx context.Context)
	// Subscribe registers a tick listener; the returned func unsubscribes and closes the channel
	Subscribe(buffer int) (<-chan Tick, func())
}

// MarketService serves company quotes to the API layer
type MarketService interface {
	// Quote returns the up to date company identified by ticker
	Quote(ctx context.Context, ticker string) (*Company, error)
	// Refresh catches the company up and returns it
	Refresh(ctx context.Context, companyID uint) (*Company, error)
	List(ctx context.Context) ([]*Company, error)
	// Search returns the companies whose name or symbol fuzzily matches query
	Search(ctx context.Context, query string) ([]*Company, error)
	// History returns the most recent price points of ticker in chronological order
	History(ctx context.Context, ticker string, limit int) ([]PricePoint, error)
}
