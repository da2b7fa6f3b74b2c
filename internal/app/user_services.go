package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/logger"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/validators"
	"github.com/shopspring/decimal"
)

// userService implements the UserService interface
type userService struct {
	users        users.UserRepository
	hasher       users.PasswordHasher
	tokens       users.TokenIssuer
	startingCash decimal.Decimal
	logger       logger.Logger
}

// NewUserService creates a new instance of UserService
func NewUserService(
	userRepo users.UserRepository,
	hasher users.PasswordHasher,
	tokens users.TokenIssuer,
	startingCash decimal.Decimal,
	logger logger.Logger,
) (users.UserService, error) {
	if !startingCash.IsPositive() {
		return nil, fmt.Errorf("starting cash must be positive, got %s", startingCash)
	}
	return &userService{
		users:        userRepo,
		hasher:       hasher,
		tokens:       tokens,
		startingCash: startingCash,
		logger:       logger,
	}, nil
}

func (s *userService) Register(ctx context.Context, reg users.Registration) (*users.User, error) {
	return s.register(ctx, reg, users.RoleUser)
}

func (s *userService) RegisterAdmin(ctx context.Context, reg users.Registration) (*users.User, error) {
	return s.register(ctx, reg, users.RoleAdmin)
}

func (s *userService) register(ctx context.Context, reg users.Registration, role string) (*users.User, error) {
	reg.Email = users.NormalizeEmail(reg.Email)
	if err := validators.ValidateStruct(reg); err != nil {
		return nil, err
	}

	exists, err := s.EmailExists(ctx, reg.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, users.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, err
	}

	user := &users.User{
		Email:        reg.Email,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		PasswordHash: hash,
		Role:         role,
		Cash:         s.startingCash,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login never tells apart an unknown email from a wrong password.
func (s *userService) Login(ctx context.Context, email, password string) (string, *users.User, error) {
	user, err := s.users.GetByEmail(ctx, users.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return "", nil, users.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !s.hasher.Compare(user.PasswordHash, password) {
		return "", nil, users.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}
	s.logger.Info("User ", user.ID, " logged in")
	return token, user, nil
}

func (s *userService) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.users.GetByEmail(ctx, users.NormalizeEmail(email))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, users.ErrUserNotFound) {
		return false, nil
	}
	return false, err
}

func (s *userService) GetByID(ctx context.Context, userID uint) (*users.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, update users.ProfileUpdate) (*users.User, error) {
	if err := validators.ValidateStruct(update); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.FirstName = update.FirstName
	user.LastName = update.LastName
	if update.Pfp != nil {
		user.Pfp = *update.Pfp
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	// reread so the returned balance reflects trades committed meanwhile
	return s.users.GetByID(ctx, userID)
}

func (s *userService) Authenticate(ctx context.Context, token string) (*users.Claims, error) {
	return s.tokens.Parse(token)
}
