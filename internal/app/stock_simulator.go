package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/market"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/config"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/logger"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/tracing"
)

// stockSimulator implements the Simulator interface on top of the company repository
type stockSimulator struct {
	companies  market.CompanyRepository
	generator  market.PriceGenerator
	interval   time.Duration
	maxCatchUp int
	now        func() time.Time
	logger     logger.Logger

	// mu serializes every quote mutation so catch-up and ticks never interleave
	mu sync.Mutex

	subMu  sync.RWMutex
	subs   map[int]chan market.Tick
	nextID int
}

// NewStockSimulator creates a new instance of Simulator
func NewStockSimulator(
	companies market.CompanyRepository,
	generator market.PriceGenerator,
	settings config.SimulatorSettings,
	logger logger.Logger,
) (market.Simulator, error) {
	if settings.Interval <= 0 {
		return nil, fmt.Errorf("simulator interval must be positive, got %s", settings.Interval)
	}
	if settings.MaxCatchUp < 1 {
		return nil, fmt.Errorf("simulator max catch up must be at least 1, got %d", settings.MaxCatchUp)
	}
	return &stockSimulator{
		companies:  companies,
		generator:  generator,
		interval:   settings.Interval,
		maxCatchUp: settings.MaxCatchUp,
		now:        time.Now,
		logger:     logger,
		subs:       make(map[int]chan market.Tick),
	}, nil
}

// InitializeDatabase seeds every preset whose ticker is not tracked yet.
func (s *stockSimulator) InitializeDatabase(ctx context.Context, presets []market.CompanyPreset) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.companies.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list companies: %w", err)
	}
	tracked := make(map[string]bool, len(existing))
	for _, c := range existing {
		tracked[c.Symbol] = true
	}

	created := 0
	now := s.now()
	for _, p := range presets {
		if tracked[p.Symbol] {
			continue
		}
		company := &market.Company{
			Name:           p.Name,
			Symbol:         p.Symbol,
			Value:          p.Value,
			ReferenceValue: p.ReferenceValue(),
			LatestUpdate:   now,
		}
		if err := s.companies.Create(ctx, company); err != nil {
			return created, fmt.Errorf("failed to seed company %s: %w", p.Symbol, err)
		}
		tracked[p.Symbol] = true
		created++
	}

	if created > 0 {
		s.logger.Info("Seeded ", created, " companies")
	}
	return created, nil
}

func (s *stockSimulator) LoadCompanies(ctx context.Context) (map[uint]*market.Company, error) {
	list, err := s.companies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	result := make(map[uint]*market.Company, len(list))
	for _, c := range list {
		result[c.ID] = c
	}
	return result, nil
}

// CheckForUpdates generates one point per full interval elapsed since the last update.
// When more than maxCatchUp intervals were missed only the most recent ones are generated.
func (s *stockSimulator) CheckForUpdates(ctx context.Context, companyID uint) (*market.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	steps := int(s.now().Sub(company.LatestUpdate) / s.interval)
	if steps <= 0 {
		return company, nil
	}
	start := company.LatestUpdate
	if steps > s.maxCatchUp {
		start = start.Add(time.Duration(steps-s.maxCatchUp) * s.interval)
		steps = s.maxCatchUp
	}

	points := make([]market.PricePoint, 0, steps)
	value := company.Value
	for i := 1; i <= steps; i++ {
		value = s.generator.Next(value)
		points = append(points, market.PricePoint{
			CompanyID:  company.ID,
			Value:      value,
			RecordedAt: start.Add(time.Duration(i) * s.interval),
		})
	}
	company.Value = value
	company.LatestUpdate = points[len(points)-1].RecordedAt

	if err := s.companies.UpdateQuote(ctx, company, points); err != nil {
		return nil, fmt.Errorf("failed to catch up %s: %w", company.Symbol, err)
	}

	s.publish(market.Tick{CompanyID: company.ID, Symbol: company.Symbol, Value: company.Value, At: company.LatestUpdate})
	return company, nil
}

// Step moves every company one tick forward at the current time.
func (s *stockSimulator) Step(ctx context.Context) (err error) {
	ctx, span := tracing.StartSpan(ctx, "simulator.Step")
	defer func() { tracing.End(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.companies.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	now := s.now()
	for _, company := range list {
		company.Value = s.generator.Next(company.Value)
		company.LatestUpdate = now
		point := market.PricePoint{CompanyID: company.ID, Value: company.Value, RecordedAt: now}
		if err := s.companies.UpdateQuote(ctx, company, []market.PricePoint{point}); err != nil {
			return fmt.Errorf("failed to tick %s: %w", company.Symbol, err)
		}
		s.publish(market.Tick{CompanyID: company.ID, Symbol: company.Symbol, Value: company.Value, At: now})
	}
	return nil
}

// Run ticks every interval until ctx is cancelled. Failed ticks are logged and retried on the next interval.
func (s *stockSimulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Price simulator started with interval ", s.interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Price simulator stopped")
			return
		case <-ticker.C:
			if err := s.Step(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error("Simulator tick failed: ", err)
			}
		}
	}
}

func (s *stockSimulator) Subscribe(buffer int) (<-chan market.Tick, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan market.Tick, buffer)

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
			close(ch)
		})
	}
}

// publish never blocks; subscribers with a full buffer miss the tick
func (s *stockSimulator) publish(tick market.Tick) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()

	for _, ch := range s.subs {
		select {
		case ch <- tick:
		default:
		}
	}
}
