package cryptography

import (
	"fmt"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// bcryptHasher struct that implements the PasswordHasher interface
type bcryptHasher struct {
	cost   int
	logger logger.Logger
}

// NewBcryptHasher creates a PasswordHasher; a zero cost selects bcrypt.DefaultCost
func NewBcryptHasher(cost int, logger logger.Logger) (users.PasswordHasher, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &bcryptHasher{
		cost:   cost,
		logger: logger,
	}, nil
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

func (h *bcryptHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
