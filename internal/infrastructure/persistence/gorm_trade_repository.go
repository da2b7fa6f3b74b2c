package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/portfolio"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/infrastructure/persistence/models"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/logger"
	"github.com/shopspring/decimal"

	"gorm.io/gorm"
)

type gormTradeRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormTradeRepository creates a new GORM-based TradeRepository implementation
func NewGormTradeRepository(db *gorm.DB, logger logger.Logger) (portfolio.TradeRepository, error) {
	return &gormTradeRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormTradeRepository) Execute(ctx context.Context, t *portfolio.Transaction) (decimal.Decimal, error) {
	if err := t.Validate(); err != nil {
		return decimal.Zero, fmt.Errorf("validation error: %w", err)
	}

	var balance decimal.Decimal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.UserModel
		if err := tx.Where("id = ?", t.UserID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return users.ErrUserNotFound
			}
			return fmt.Errorf("failed to fetch user: %w", err)
		}

		var shares int64
		err := tx.Model(&models.TransactionModel{}).
			Where("user_id = ? AND company_id = ?", t.UserID, t.CompanyID).
			Select("COALESCE(SUM(CASE WHEN kind = ? THEN quantity ELSE -quantity END), 0)", portfolio.KindBuy).
			Scan(&shares).Error
		if err != nil {
			return fmt.Errorf("failed to sum position: %w", err)
		}

		cash, err := portfolio.ApplyTrade(user.Cash, shares, t)
		if err != nil {
			return err
		}

		// compare-and-set on the balance read above
		res := tx.Model(&models.UserModel{}).
			Where("id = ? AND cash = ?", user.ID, user.Cash).
			Update("cash", cash)
		if res.Error != nil {
			return fmt.Errorf("failed to update cash: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return portfolio.ErrBalanceChanged
		}

		model := &models.TransactionModel{}
		model.FromDomain(t)
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}

		balance = cash
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	r.logger.Info("Executed ", t.Kind, " of ", t.Quantity, " shares of company ", t.CompanyID, " for user ", t.UserID)
	return balance, nil
}

func (r *gormTradeRepository) ListByUser(ctx context.Context, userID uint) ([]*portfolio.Transaction, error) {
	var modelList []*models.TransactionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("executed_at asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	domainList := make([]*portfolio.Transaction, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormTradeRepository) Truncate(ctx context.Context) error {
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.TransactionModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to truncate transactions: %w", err)
	}

	r.logger.Info("Truncated transaction table")
	return nil
}
