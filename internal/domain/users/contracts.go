package users

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Registration carries the fields of a new account
type Registration struct {
	Email     string `validate:"required,email,max=255"`
	Password  string `validate:"required,min=8,max=72"`
	FirstName string `validate:"required,notblank,max=64"`
	LastName  string `validate:"required,notblank,max=64"`
}

// ProfileUpdate carries the editable profile fields; a nil Pfp keeps the current picture
type ProfileUpdate struct {
	FirstName string  `validate:"required,notblank,max=64"`
	LastName  string  `validate:"required,notblank,max=64"`
	Pfp       *string `validate:"omitempty,startswith=data:image/,datauri"`
}

// Claims are the identity facts carried by an access token
type Claims struct {
	UserID    uint
	Email     string
	Role      string
	ExpiresAt time.Time
}

// UserRepository defines the persistence operations on users
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByIDs returns the users that exist among ids, keyed by id
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*User, error)
	// UpdateProfile stores the name and picture of user, leaving every other column untouched
	UpdateProfile(ctx context.Context, user *User) error
	// ResetCash sets the cash balance of every user
	ResetCash(ctx context.Context, amount decimal.Decimal) error
}

// UserService manages accounts and sessions
type UserService interface {
	Register(ctx context.Context, reg Registration) (*User, error)
	// RegisterAdmin creates an account with the admin role
	RegisterAdmin(ctx context.Context, reg Registration) (*User, error)
	// Login checks the credentials and returns a signed access token
	Login(ctx context.Context, email, password string) (string, *User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetByID(ctx context.Context, userID uint) (*User, error)
	UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*User, error)
	// Authenticate verifies an access token and returns its claims
	Authenticate(ctx context.Context, token string) (*Claims, error)
}

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenIssuer signs and verifies access tokens
type TokenIssuer interface {
	Issue(user *User) (string, error)
	Parse(token string) (*Claims, error)
}
