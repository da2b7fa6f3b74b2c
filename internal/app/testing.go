//go:build integration
// +build integration

package app

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/forum"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/market"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/portfolio"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/infrastructure/cryptography"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/infrastructure/markdown"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/infrastructure/persistence"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/infrastructure/simulation"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/config"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Test constants
const (
	TestJWTSecret    = "integration-secret-0123"
	TestStartingCash = 10000
	TestMaxCatchUp   = 10
	TestPassword     = "s3cret-password"
)

// TestEpoch is the initial time of every test clock
var TestEpoch = time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)

// testClock is a manually advanced clock shared by the services under test
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	Simulator market.Simulator
	Market    market.MarketService
	Users     users.UserService
	Portfolio portfolio.PortfolioService
	Forum     forum.ForumService
	Seeder    forum.DemoSeeder

	Clock     *testClock
	DBContext *persistence.TestContext
}

// SetupTestServices initializes all application services for integration tests
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	log := testutil.SetupTestLogger(t)
	db := persistence.SetupTestDB(t, dbType)
	clock := &testClock{now: TestEpoch}
	cash := decimal.NewFromInt(TestStartingCash)

	generator, err := simulation.NewRandomWalk(0.002, 1)
	require.NoError(t, err)

	simulator, err := NewStockSimulator(db.CompanyRepo, generator, config.SimulatorSettings{
		Interval:   time.Second,
		Volatility: 0.002,
		MaxCatchUp: TestMaxCatchUp,
		Timezone:   "UTC",
	}, log)
	require.NoError(t, err, "Failed to create simulator")
	simulator.(*stockSimulator).now = clock.Now

	marketSvc, err := NewMarketService(simulator, db.CompanyRepo, db.HistoryRepo, market.PresetCompanies(), log)
	require.NoError(t, err, "Failed to create market service")

	hasher, err := cryptography.NewBcryptHasher(bcrypt.MinCost, log)
	require.NoError(t, err)
	tokens, err := cryptography.NewJWTIssuer(TestJWTSecret, time.Hour, log)
	require.NoError(t, err)

	userSvc, err := NewUserService(db.UserRepo, hasher, tokens, cash, log)
	require.NoError(t, err, "Failed to create user service")

	portfolioSvc, err := NewPortfolioService(db.TradeRepo, db.UserRepo, db.HistoryRepo, simulator, cash, time.UTC, log)
	require.NoError(t, err, "Failed to create portfolio service")
	portfolioSvc.(*portfolioService).now = clock.Now

	renderer, err := markdown.NewRenderer()
	require.NoError(t, err)

	forumSvc, err := NewForumService(db.TopicRepo, db.PostRepo, db.CommentRepo, db.ReactionRepo, db.UserRepo, renderer, log)
	require.NoError(t, err, "Failed to create forum service")
	forumSvc.(*forumService).now = clock.Now

	seeder, err := NewDemoSeeder(db.TopicRepo, db.PostRepo, db.CommentRepo, db.ReactionRepo, db.UserRepo, hasher, cash, log)
	require.NoError(t, err, "Failed to create demo seeder")
	seeder.(*demoSeeder).now = clock.Now

	return &TestServices{
		Simulator: simulator,
		Market:    marketSvc,
		Users:     userSvc,
		Portfolio: portfolioSvc,
		Forum:     forumSvc,
		Seeder:    seeder,
		Clock:     clock,
		DBContext: db,
	}
}

// RegisterTestUser registers an account named after the local part of email
func RegisterTestUser(t *testing.T, services *TestServices, email string) *users.User {
	t.Helper()

	user, err := services.Users.Register(context.Background(), users.Registration{
		Email:     email,
		Password:  TestPassword,
		FirstName: "Test",
		LastName:  email[:strings.Index(email, "@")],
	})
	require.NoError(t, err)
	return user
}
