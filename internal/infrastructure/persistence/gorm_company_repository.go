package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/market"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/infrastructure/persistence/models"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormCompanyRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormCompanyRepository creates a new GORM-based CompanyRepository implementation
func NewGormCompanyRepository(db *gorm.DB, logger logger.Logger) (market.CompanyRepository, error) {
	return &gormCompanyRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormCompanyRepository) Create(ctx context.Context, company *market.Company) error {
	if err := company.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.CompanyModel{}
	model.FromDomain(company)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}
		seed := &models.StockHistoryModel{}
		seed.FromDomain(market.PricePoint{
			CompanyID:  model.ID,
			Value:      company.Value,
			RecordedAt: company.LatestUpdate,
		})
		if err := tx.Create(seed).Error; err != nil {
			return fmt.Errorf("failed to record seed price: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	company.ID = model.ID

	r.logger.Info("Created company ", company.Symbol, " with id ", company.ID)
	return nil
}

func (r *gormCompanyRepository) List(ctx context.Context) ([]*market.Company, error) {
	var modelList []*models.CompanyModel
	if err := r.db.WithContext(ctx).Order("id asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch companies: %w", err)
	}

	domainList := make([]*market.Company, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormCompanyRepository) GetByID(ctx context.Context, companyID uint) (*market.Company, error) {
	return r.first(ctx, "id = ?", companyID)
}

func (r *gormCompanyRepository) GetBySymbol(ctx context.Context, symbol string) (*market.Company, error) {
	return r.first(ctx, "company_symbol = ?", symbol)
}

func (r *gormCompanyRepository) first(ctx context.Context, query string, arg interface{}) (*market.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, market.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to fetch company: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormCompanyRepository) UpdateQuote(ctx context.Context, company *market.Company, points []market.PricePoint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CompanyModel{}).
			Where("id = ?", company.ID).
			Updates(map[string]interface{}{
				"current_stock_value": company.Value,
				"latest_update":       company.LatestUpdate.UTC(),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update company quote: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return market.ErrCompanyNotFound
		}

		if len(points) == 0 {
			return nil
		}
		rows := make([]*models.StockHistoryModel, len(points))
		for i, p := range points {
			rows[i] = &models.StockHistoryModel{}
			rows[i].FromDomain(p)
		}
		if err := tx.CreateInBatches(rows, 100).Error; err != nil {
			return fmt.Errorf("failed to record price history: %w", err)
		}
		return nil
	})
}

type gormPriceHistoryRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPriceHistoryRepository creates a new GORM-based PriceHistoryRepository implementation
func NewGormPriceHistoryRepository(db *gorm.DB, logger logger.Logger) (market.PriceHistoryRepository, error) {
	return &gormPriceHistoryRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPriceHistoryRepository) ListByCompany(ctx context.Context, companyID uint, limit int) ([]market.PricePoint, error) {
	var modelList []*models.StockHistoryModel
	query := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("recorded_at desc, id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch price history: %w", err)
	}

	points := make([]market.PricePoint, len(modelList))
	for i, model := range modelList {
		points[len(modelList)-1-i] = model.ToDomain()
	}
	return points, nil
}

func (r *gormPriceHistoryRepository) ValueAt(ctx context.Context, companyID uint, t time.Time) (market.PricePoint, bool, error) {
	var model models.StockHistoryModel
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND recorded_at <= ?", companyID, t.UTC()).
		Order("recorded_at desc, id desc").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return market.PricePoint{}, false, nil
		}
		return market.PricePoint{}, false, fmt.Errorf("failed to fetch price at %s: %w", t.Format(time.RFC3339), err)
	}
	return model.ToDomain(), true, nil
}
