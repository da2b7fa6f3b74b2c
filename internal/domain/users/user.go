// Package users holds trader accounts and the contracts used to authenticate them.
package users

import (
	"errors"
	"strings"
	"time"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/validators"
	"github.com/shopspring/decimal"
)

// Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UnknownName is displayed for content whose author no longer exists
const UnknownName = "unknown"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// User entity
type User struct {
	ID           uint
	Email        string `validate:"required,email,max=255"`
	FirstName    string `validate:"required,notblank,max=64"`
	LastName     string `validate:"required,notblank,max=64"`
	PasswordHash string `validate:"required"`
	// Pfp is the profile picture as a data URI, empty when unset
	Pfp       string `validate:"omitempty,startswith=data:image/,datauri"`
	Role      string `validate:"required,oneof=user admin"`
	Cash      decimal.Decimal
	CreatedAt time.Time
}

// Validate for validating User struct
func (u *User) Validate() error {
	return validators.ValidateStruct(u)
}

// FullName joins first and last name the way authors are displayed.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the user may run admin actions.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Author is the public identity attached to forum content.
type Author struct {
	Name  string
	Email string
}

// AuthorOf returns the display identity of u, or the unknown author when u is nil.
func AuthorOf(u *User) Author {
	if u == nil {
		return Author{Name: UnknownName}
	}
	return Author{Name: u.FullName(), Email: u.Email}
}
