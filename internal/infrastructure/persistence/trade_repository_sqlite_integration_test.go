//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/portfolio"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrade(t *testing.T, userID, companyID uint, kind string, qty int64, price string, at time.Time) *portfolio.Transaction {
	t.Helper()
	tx, err := portfolio.NewTransaction(userID, companyID, kind, qty, decimal.RequireFromString(price), at)
	require.NoError(t, err)
	return tx
}

func TestTradeSqliteRepository_Execute(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	now := time.Now().Truncate(time.Second)

	user := CreateTestUser(t, ctx, "trader@example.com", "1000")
	company := CreateTestCompany(t, ctx, "AAPL", "100", now)

	cash, err := ctx.TradeRepo.Execute(context.Background(), newTrade(t, user.ID, company.ID, portfolio.KindBuy, 3, "100.50", now))
	require.NoError(t, err)
	assert.True(t, cash.Equal(decimal.RequireFromString("698.50")), cash.String())

	cash, err = ctx.TradeRepo.Execute(context.Background(), newTrade(t, user.ID, company.ID, portfolio.KindSell, 1, "110", now.Add(time.Second)))
	require.NoError(t, err)
	assert.True(t, cash.Equal(decimal.RequireFromString("808.50")), cash.String())

	stored, err := ctx.UserRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, stored.Cash.Equal(cash))

	txs, err := ctx.TradeRepo.ListByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, portfolio.KindBuy, txs[0].Kind)
	assert.Equal(t, portfolio.KindSell, txs[1].Kind)
}

func TestTradeSqliteRepository_Rejections(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	now := time.Now()

	user := CreateTestUser(t, ctx, "poor@example.com", "50")
	company := CreateTestCompany(t, ctx, "MSFT", "100", now)

	_, err := ctx.TradeRepo.Execute(context.Background(), newTrade(t, user.ID, company.ID, portfolio.KindBuy, 1, "100", now))
	assert.ErrorIs(t, err, portfolio.ErrInsufficientFunds)

	_, err = ctx.TradeRepo.Execute(context.Background(), newTrade(t, user.ID, company.ID, portfolio.KindSell, 1, "100", now))
	assert.ErrorIs(t, err, portfolio.ErrInsufficientShares)

	txs, err := ctx.TradeRepo.ListByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, txs)

	stored, err := ctx.UserRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, stored.Cash.Equal(decimal.NewFromInt(50)))
}

func TestTradeSqliteRepository_Truncate(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	now := time.Now()

	user := CreateTestUser(t, ctx, "t@example.com", "1000")
	company := CreateTestCompany(t, ctx, "PFE", "10", now)
	_, err := ctx.TradeRepo.Execute(context.Background(), newTrade(t, user.ID, company.ID, portfolio.KindBuy, 2, "10", now))
	require.NoError(t, err)

	require.NoError(t, ctx.TradeRepo.Truncate(context.Background()))

	txs, err := ctx.TradeRepo.ListByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, txs)
}
