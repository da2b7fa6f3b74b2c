//go:build integration
// +build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/market"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketService_QuoteSeedsAndCatchesUp(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	quote, err := services.Market.Quote(ctx, market.DefaultTicker)
	require.NoError(t, err)
	assert.Equal(t, "S&P 500", quote.Name)
	assert.Equal(t, "-12.55", quote.Change().StringFixed(2))

	services.Clock.Advance(3 * time.Second)
	quote, err = services.Market.Quote(ctx, market.DefaultTicker)
	require.NoError(t, err)
	assert.True(t, quote.LatestUpdate.Equal(TestEpoch.Add(3*time.Second)))

	_, err = services.Market.Quote(ctx, "ZZZZ")
	assert.ErrorIs(t, err, market.ErrCompanyNotFound)
}

func TestMarketService_Refresh(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	tsla := seedMarket(t, services)["TSLA"]

	services.Clock.Advance(2 * time.Second)
	refreshed, err := services.Market.Refresh(ctx, tsla.ID)
	require.NoError(t, err)
	assert.Equal(t, "TSLA", refreshed.Symbol)
	assert.True(t, refreshed.LatestUpdate.After(tsla.LatestUpdate))
}

func TestMarketService_Search(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	seedMarket(t, services)

	tests := []struct {
		query string
		want  []string
	}{
		{"apple", []string{"AAPL"}},
		{"GOOG", []string{"GOOGL", "GOOG"}},
		{"berkshire", []string{"BRK.B"}},
		{"nothing like this", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			found, err := services.Market.Search(ctx, tt.query)
			require.NoError(t, err)
			var symbols []string
			for _, c := range found {
				symbols = append(symbols, c.Symbol)
			}
			assert.Equal(t, tt.want, symbols)
		})
	}

	all, err := services.Market.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Len(t, all, 21)

	listed, err := services.Market.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, market.DefaultTicker, listed[0].Symbol)
}

func TestMarketService_History(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	seedMarket(t, services)

	services.Clock.Advance(4 * time.Second)
	points, err := services.Market.History(ctx, "AAPL", 3)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.True(t, points[2].RecordedAt.Equal(TestEpoch.Add(4*time.Second)))
	assert.True(t, points[0].RecordedAt.Before(points[1].RecordedAt))

	_, err = services.Market.History(ctx, "NOPE", 3)
	assert.ErrorIs(t, err, market.ErrCompanyNotFound)
}
