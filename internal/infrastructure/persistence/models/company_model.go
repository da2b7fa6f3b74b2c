package models

import (
	"time"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/market"
	"github.com/shopspring/decimal"
)

// CompanyModel is the GORM database model for tracked companies
type CompanyModel struct {
	ID                uint            `gorm:"primaryKey"`
	CompanyName       string          `gorm:"not null;type:varchar(128)"`
	CompanySymbol     string          `gorm:"not null;uniqueIndex;type:varchar(16)"`
	CurrentStockValue decimal.Decimal `gorm:"not null;type:decimal(20,2)"`
	ReferenceValue    decimal.Decimal `gorm:"not null;type:decimal(20,2)"`
	LatestUpdate      time.Time       `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (CompanyModel) TableName() string {
	return "company"
}

// ToDomain converts GORM model to domain entity
func (m *CompanyModel) ToDomain() *market.Company {
	return &market.Company{
		ID:             m.ID,
		Name:           m.CompanyName,
		Symbol:         m.CompanySymbol,
		Value:          m.CurrentStockValue,
		ReferenceValue: m.ReferenceValue,
		LatestUpdate:   m.LatestUpdate,
	}
}

// FromDomain converts domain entity to GORM model; times are stored in UTC
func (m *CompanyModel) FromDomain(c *market.Company) {
	m.ID = c.ID
	m.CompanyName = c.Name
	m.CompanySymbol = c.Symbol
	m.CurrentStockValue = c.Value
	m.ReferenceValue = c.ReferenceValue
	m.LatestUpdate = c.LatestUpdate.UTC()
}

// StockHistoryModel is one recorded value of a company
type StockHistoryModel struct {
	ID         uint            `gorm:"primaryKey"`
	CompanyID  uint            `gorm:"not null;index:idx_history_company_time"`
	Value      decimal.Decimal `gorm:"not null;type:decimal(20,2)"`
	RecordedAt time.Time       `gorm:"not null;index:idx_history_company_time"`
}

// TableName specifies the table name for GORM
func (StockHistoryModel) TableName() string {
	return "stock_history"
}

// ToDomain converts GORM model to domain entity
func (m *StockHistoryModel) ToDomain() market.PricePoint {
	return market.PricePoint{
		CompanyID:  m.CompanyID,
		Value:      m.Value,
		RecordedAt: m.RecordedAt,
	}
}

// FromDomain converts domain entity to GORM model; times are stored in UTC
func (m *StockHistoryModel) FromDomain(p market.PricePoint) {
	m.CompanyID = p.CompanyID
	m.Value = p.Value
	m.RecordedAt = p.RecordedAt.UTC()
}
