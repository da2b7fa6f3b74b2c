package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/market"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/logger"
)

// marketService implements the MarketService interface
type marketService struct {
	simulator market.Simulator
	companies market.CompanyRepository
	history   market.PriceHistoryRepository
	presets   []market.CompanyPreset
	logger    logger.Logger
}

// NewMarketService creates a new instance of MarketService
func NewMarketService(
	simulator market.Simulator,
	companies market.CompanyRepository,
	history market.PriceHistoryRepository,
	presets []market.CompanyPreset,
	logger logger.Logger,
) (market.MarketService, error) {
	return &marketService{
		simulator: simulator,
		companies: companies,
		history:   history,
		presets:   presets,
		logger:    logger,
	}, nil
}

// Quote makes sure the market is seeded, then returns the company caught up to now.
func (s *marketService) Quote(ctx context.Context, ticker string) (*market.Company, error) {
	if _, err := s.simulator.InitializeDatabase(ctx, s.presets); err != nil {
		return nil, fmt.Errorf("failed to initialize market: %w", err)
	}

	company, err := s.companies.GetBySymbol(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return s.simulator.CheckForUpdates(ctx, company.ID)
}

func (s *marketService) Refresh(ctx context.Context, companyID uint) (*market.Company, error) {
	return s.simulator.CheckForUpdates(ctx, companyID)
}

func (s *marketService) List(ctx context.Context) ([]*market.Company, error) {
	return s.companies.List(ctx)
}

// Search returns every company for a blank query.
func (s *marketService) Search(ctx context.Context, query string) ([]*market.Company, error) {
	all, err := s.companies.List(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return all, nil
	}

	matches := make([]*market.Company, 0)
	for _, c := range all {
		if c.Matches(query) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

func (s *marketService) History(ctx context.Context, ticker string, limit int) ([]market.PricePoint, error) {
	company, err := s.companies.GetBySymbol(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if _, err := s.simulator.CheckForUpdates(ctx, company.ID); err != nil {
		return nil, err
	}

	points, err := s.history.ListByCompany(ctx, company.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history of %s: %w", ticker, err)
	}
	return points, nil
}
