package models

import (
	"time"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/portfolio"
	"github.com/shopspring/decimal"
)

// TransactionModel is the GORM database model for executed trades
type TransactionModel struct {
	ID         string          `gorm:"primaryKey;type:varchar(36)"`
	UserID     uint            `gorm:"not null;index"`
	CompanyID  uint            `gorm:"not null;index"`
	Kind       string          `gorm:"not null;type:varchar(8)"`
	Quantity   int64           `gorm:"not null"`
	Price      decimal.Decimal `gorm:"not null;type:decimal(20,2)"`
	Total      decimal.Decimal `gorm:"not null;type:decimal(20,2)"`
	ExecutedAt time.Time       `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (TransactionModel) TableName() string {
	return "transaction"
}

// ToDomain converts GORM model to domain entity
func (m *TransactionModel) ToDomain() *portfolio.Transaction {
	return &portfolio.Transaction{
		ID:         m.ID,
		UserID:     m.UserID,
		CompanyID:  m.CompanyID,
		Kind:       m.Kind,
		Quantity:   m.Quantity,
		Price:      m.Price,
		Total:      m.Total,
		ExecutedAt: m.ExecutedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *TransactionModel) FromDomain(t *portfolio.Transaction) {
	m.ID = t.ID
	m.UserID = t.UserID
	m.CompanyID = t.CompanyID
	m.Kind = t.Kind
	m.Quantity = t.Quantity
	m.Price = t.Price
	m.Total = t.Total
	m.ExecutedAt = t.ExecutedAt.UTC()
}
