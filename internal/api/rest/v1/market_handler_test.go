//go:build unit
// +build unit

package v1

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/market"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var quoteTime = time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)

func testCompany(id uint, symbol, name, value string) *market.Company {
	v := decimal.RequireFromString(value)
	return &market.Company{ID: id, Name: name, Symbol: symbol, Value: v, ReferenceValue: v, LatestUpdate: quoteTime}
}

func TestMarketHandler_Company(t *testing.T) {
	mockMarketService := new(MockMarketService)
	handler := NewMarketHandler(mockMarketService, time.UTC)

	mockMarketService.On("Quote", mock.Anything, "AAPL").Return(testCompany(2, "AAPL", "Apple Inc.", "177.57"), nil)
	mockMarketService.On("Quote", mock.Anything, market.DefaultTicker).Return(testCompany(1, "^GSPC", "S&P 500", "4766.18"), nil)

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/company/AAPL", nil)
	c.Params = gin.Params{gin.Param{Key: "ticker", Value: "AAPL"}}
	handler.Company(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp CompanyResponse
	testutil.DecodeJSON(t, w, &resp)
	assert.Equal(t, "AAPL", resp.Ticker)
	assert.Equal(t, 177.57, resp.Price)
	assert.Equal(t, "03/01/2024, 14:30:00", resp.Date)

	c, w = testutil.NewJSONContext(t, http.MethodGet, "/company", nil)
	handler.Company(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"co_ticker":"^GSPC"`)

	mockMarketService.AssertExpectations(t)
}

func TestMarketHandler_Company_UnknownTickerRedirects(t *testing.T) {
	mockMarketService := new(MockMarketService)
	handler := NewMarketHandler(mockMarketService, time.UTC)
	mockMarketService.On("Quote", mock.Anything, "NOPE").Return(nil, market.ErrCompanyNotFound)

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/company/NOPE", nil)
	c.Params = gin.Params{gin.Param{Key: "ticker", Value: "NOPE"}}
	handler.Company(c)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, BasePath+"/company", w.Header().Get("Location"))
}

func TestMarketHandler_CompanyRefresh(t *testing.T) {
	mockMarketService := new(MockMarketService)
	handler := NewMarketHandler(mockMarketService, time.UTC)
	mockMarketService.On("Refresh", mock.Anything, uint(2)).Return(testCompany(2, "AAPL", "Apple Inc.", "180.00"), nil)
	mockMarketService.On("Refresh", mock.Anything, uint(99)).Return(nil, market.ErrCompanyNotFound)

	c, w := testutil.NewJSONContext(t, http.MethodPost, "/company_refresh", CompanyRefreshRequest{CompanyID: 2})
	handler.CompanyRefresh(c)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp CompanyRefreshResponse
	testutil.DecodeJSON(t, w, &resp)
	assert.Equal(t, 180.0, resp.Companies.Price)

	c, w = testutil.NewJSONContext(t, http.MethodPost, "/company_refresh", CompanyRefreshRequest{CompanyID: 99})
	handler.CompanyRefresh(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = testutil.NewJSONContext(t, http.MethodPost, "/company_refresh", CompanyRefreshRequest{})
	handler.CompanyRefresh(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarketHandler_SearchAndSearchData(t *testing.T) {
	mockMarketService := new(MockMarketService)
	handler := NewMarketHandler(mockMarketService, time.UTC)

	all := []*market.Company{
		testCompany(1, "^GSPC", "S&P 500", "4766.18"),
		testCompany(2, "AAPL", "Apple Inc.", "177.57"),
	}
	mockMarketService.On("List", mock.Anything).Return(all, nil)
	mockMarketService.On("Search", mock.Anything, "app").Return(all[1:], nil)

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/search_data", nil)
	handler.SearchData(c)
	var rows CompanyRowsResponse
	testutil.DecodeJSON(t, w, &rows)
	assert.Len(t, rows.CompanyRows, 2)

	c, w = testutil.NewJSONContext(t, http.MethodGet, "/search?q=app", nil)
	handler.Search(c)
	testutil.DecodeJSON(t, w, &rows)
	require.Len(t, rows.CompanyRows, 1)
	assert.Equal(t, "AAPL", rows.CompanyRows[0].Ticker)
}

func TestMarketHandler_History(t *testing.T) {
	mockMarketService := new(MockMarketService)
	handler := NewMarketHandler(mockMarketService, time.UTC)

	points := []market.PricePoint{
		{CompanyID: 2, Value: decimal.RequireFromString("177.57"), RecordedAt: quoteTime},
		{CompanyID: 2, Value: decimal.RequireFromString("177.9"), RecordedAt: quoteTime.Add(time.Second)},
	}
	mockMarketService.On("History", mock.Anything, "AAPL", 2).Return(points, nil)
	mockMarketService.On("History", mock.Anything, "AAPL", DefaultHistoryLimit).Return(nil, errors.New("db down"))

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/company/AAPL/history?limit=2", nil)
	c.Params = gin.Params{gin.Param{Key: "ticker", Value: "AAPL"}}
	handler.History(c)
	assert.Equal(t, http.StatusOK, w.Code)
	var series SeriesResponse
	testutil.DecodeJSON(t, w, &series)
	assert.Equal(t, []float64{177.57, 177.9}, series.History)
	assert.Equal(t, "03/01/2024, 14:30:01", series.Dates[1])

	c, w = testutil.NewJSONContext(t, http.MethodGet, "/company/AAPL/history", nil)
	c.Params = gin.Params{gin.Param{Key: "ticker", Value: "AAPL"}}
	handler.History(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	c, w = testutil.NewJSONContext(t, http.MethodGet, "/company/AAPL/history?limit=-3", nil)
	c.Params = gin.Params{gin.Param{Key: "ticker", Value: "AAPL"}}
	handler.History(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
