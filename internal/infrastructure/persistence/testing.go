//go:build integration
// +build integration

package persistence

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/forum"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/market"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/portfolio"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/config"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB           *gorm.DB
	UserRepo     users.UserRepository
	CompanyRepo  market.CompanyRepository
	HistoryRepo  market.PriceHistoryRepository
	TradeRepo    portfolio.TradeRepository
	TopicRepo    forum.TopicRepository
	PostRepo     forum.PostRepository
	CommentRepo  forum.CommentRepository
	ReactionRepo forum.ReactionRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	log := testutil.SetupTestLogger(t)
	tc := &TestContext{DB: db}

	tc.UserRepo, err = NewGormUserRepository(db, log)
	require.NoError(t, err)
	tc.CompanyRepo, err = NewGormCompanyRepository(db, log)
	require.NoError(t, err)
	tc.HistoryRepo, err = NewGormPriceHistoryRepository(db, log)
	require.NoError(t, err)
	tc.TradeRepo, err = NewGormTradeRepository(db, log)
	require.NoError(t, err)
	tc.TopicRepo, err = NewGormTopicRepository(db, log)
	require.NoError(t, err)
	tc.PostRepo, err = NewGormPostRepository(db, log)
	require.NoError(t, err)
	tc.CommentRepo, err = NewGormCommentRepository(db, log)
	require.NoError(t, err)
	tc.ReactionRepo, err = NewGormReactionRepository(db, log)
	require.NoError(t, err)

	return tc
}

// CreateTestUser stores a user with the given email and cash balance
func CreateTestUser(t *testing.T, tc *TestContext, email string, cash string) *users.User {
	t.Helper()

	user := &users.User{
		Email:        email,
		FirstName:    "Test",
		LastName:     "Trader",
		PasswordHash: "$2a$10$0123456789012345678901",
		Role:         users.RoleUser,
		Cash:         decimal.RequireFromString(cash),
		CreatedAt:    time.Now(),
	}
	require.NoError(t, tc.UserRepo.Create(context.Background(), user))
	return user
}

// CreateTestCompany stores a company priced at value
func CreateTestCompany(t *testing.T, tc *TestContext, symbol string, value string, at time.Time) *market.Company {
	t.Helper()

	company := &market.Company{
		Name:           symbol + " Corp",
		Symbol:         symbol,
		Value:          decimal.RequireFromString(value),
		ReferenceValue: decimal.RequireFromString(value),
		LatestUpdate:   at,
	}
	require.NoError(t, tc.CompanyRepo.Create(context.Background(), company))
	return company
}
