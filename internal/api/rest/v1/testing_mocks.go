//go:build unit
// +build unit

package v1

import (
	"context"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/forum"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/market"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/portfolio"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
	"github.com/stretchr/testify/mock"
)

// MockMarketService is a mock implementation of MarketService
type MockMarketService struct {
	mock.Mock
}

func (m *MockMarketService) Quote(ctx context.Context, ticker string) (*market.Company, error) {
	args := m.Called(ctx, ticker)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*market.Company), args.Error(1)
}

func (m *MockMarketService) Refresh(ctx context.Context, companyID uint) (*market.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*market.Company), args.Error(1)
}

func (m *MockMarketService) List(ctx context.Context) ([]*market.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*market.Company), args.Error(1)
}

func (m *MockMarketService) Search(ctx context.Context, query string) ([]*market.Company, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*market.Company), args.Error(1)
}

func (m *MockMarketService) History(ctx context.Context, ticker string, limit int) ([]market.PricePoint, error) {
	args := m.Called(ctx, ticker, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]market.PricePoint), args.Error(1)
}

// MockSimulator is a mock implementation of Simulator
type MockSimulator struct {
	mock.Mock
}

func (m *MockSimulator) InitializeDatabase(ctx context.Context, presets []market.CompanyPreset) (int, error) {
	args := m.Called(ctx, presets)
	return args.Int(0), args.Error(1)
}

func (m *MockSimulator) LoadCompanies(ctx context.Context) (map[uint]*market.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]*market.Company), args.Error(1)
}

func (m *MockSimulator) CheckForUpdates(ctx context.Context, companyID uint) (*market.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*market.Company), args.Error(1)
}

func (m *MockSimulator) Step(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSimulator) Run(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockSimulator) Subscribe(buffer int) (<-chan market.Tick, func()) {
	args := m.Called(buffer)
	return args.Get(0).(<-chan market.Tick), args.Get(1).(func())
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, reg users.Registration) (*users.User, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserService) RegisterAdmin(ctx context.Context, reg users.Registration) (*users.User, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (string, *users.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*users.User), args.Error(2)
}

func (m *MockUserService) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, userID uint) (*users.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID uint, update users.ProfileUpdate) (*users.User, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, token string) (*users.Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.Claims), args.Error(1)
}

// MockPortfolioService is a mock implementation of PortfolioService
type MockPortfolioService struct {
	mock.Mock
}

func (m *MockPortfolioService) Buy(ctx context.Context, userID, companyID uint, quantity int64) (*portfolio.Transaction, error) {
	args := m.Called(ctx, userID, companyID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Transaction), args.Error(1)
}

func (m *MockPortfolioService) Sell(ctx context.Context, userID, companyID uint, quantity int64) (*portfolio.Transaction, error) {
	args := m.Called(ctx, userID, companyID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Transaction), args.Error(1)
}

func (m *MockPortfolioService) Holdings(ctx context.Context, userID uint) ([]portfolio.Holding, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portfolio.Holding), args.Error(1)
}

func (m *MockPortfolioService) Transactions(ctx context.Context, userID uint) ([]portfolio.TransactionView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portfolio.TransactionView), args.Error(1)
}

func (m *MockPortfolioService) NetWorth(ctx context.Context, userID uint) ([]portfolio.NetWorthPoint, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portfolio.NetWorthPoint), args.Error(1)
}

func (m *MockPortfolioService) DumpTransactions(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockForumService is a mock implementation of ForumService
type MockForumService struct {
	mock.Mock
}

func (m *MockForumService) ListTopics(ctx context.Context) ([]*forum.Topic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*forum.Topic), args.Error(1)
}

func (m *MockForumService) CreateTopic(ctx context.Context, name string) (*forum.Topic, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forum.Topic), args.Error(1)
}

func (m *MockForumService) GetTopic(ctx context.Context, topicID uint) (*forum.Topic, []forum.PostSummary, error) {
	args := m.Called(ctx, topicID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*forum.Topic), args.Get(1).([]forum.PostSummary), args.Error(2)
}

func (m *MockForumService) GetPost(ctx context.Context, postID uint) (*forum.PostView, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forum.PostView), args.Error(1)
}

func (m *MockForumService) CreatePost(ctx context.Context, topicID, userID uint, title, content string) (*forum.Post, error) {
	args := m.Called(ctx, topicID, userID, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forum.Post), args.Error(1)
}

func (m *MockForumService) Comments(ctx context.Context, postID, viewerID uint) ([]forum.CommentView, error) {
	args := m.Called(ctx, postID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]forum.CommentView), args.Error(1)
}

func (m *MockForumService) SaveReaction(ctx context.Context, commentID, userID uint, value int) error {
	args := m.Called(ctx, commentID, userID, value)
	return args.Error(0)
}

func (m *MockForumService) PostComment(ctx context.Context, postID, userID uint, parentID *uint, text string) (*forum.CommentView, error) {
	args := m.Called(ctx, postID, userID, parentID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forum.CommentView), args.Error(1)
}

func (m *MockForumService) DeleteComment(ctx context.Context, commentID, userID uint) error {
	args := m.Called(ctx, commentID, userID)
	return args.Error(0)
}

// MockDemoSeeder is a mock implementation of DemoSeeder
type MockDemoSeeder struct {
	mock.Mock
}

func (m *MockDemoSeeder) SeedDemo(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
