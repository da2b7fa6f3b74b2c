package models

import (
	"time"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
	"github.com/shopspring/decimal"
)

// UserModel is the GORM database model for accounts
type UserModel struct {
	ID           uint            `gorm:"primaryKey"`
	Email        string          `gorm:"not null;uniqueIndex;type:varchar(255)"`
	FirstName    string          `gorm:"not null;type:varchar(64)"`
	LastName     string          `gorm:"not null;type:varchar(64)"`
	PasswordHash string          `gorm:"not null;type:varchar(255)"`
	Pfp          string          `gorm:"type:text"`
	Role         string          `gorm:"not null;type:varchar(16);default:user"`
	Cash         decimal.Decimal `gorm:"not null;type:decimal(20,2)"`
	CreatedAt    time.Time       `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts GORM model to domain entity
func (m *UserModel) ToDomain() *users.User {
	return &users.User{
		ID:           m.ID,
		Email:        m.Email,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		PasswordHash: m.PasswordHash,
		Pfp:          m.Pfp,
		Role:         m.Role,
		Cash:         m.Cash,
		CreatedAt:    m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserModel) FromDomain(u *users.User) {
	m.ID = u.ID
	m.Email = u.Email
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.PasswordHash = u.PasswordHash
	m.Pfp = u.Pfp
	m.Role = u.Role
	m.Cash = u.Cash
	m.CreatedAt = u.CreatedAt.UTC()
}
