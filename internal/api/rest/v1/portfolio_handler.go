package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/market"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/portfolio"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/infrastructure/metrics"
)

// PortfolioHandler defines the interface for handling trades and portfolio views
type PortfolioHandler interface {
	Buy(ctx *gin.Context)
	Sell(ctx *gin.Context)
	GetHoldings(ctx *gin.Context)
	GetTransactions(ctx *gin.Context)
	GetNetWorth(ctx *gin.Context)
	Portfolio(ctx *gin.Context)
}

type portfolioHandler struct {
	portfolioService portfolio.PortfolioService
	location         *time.Location
}

// NewPortfolioHandler creates a new PortfolioHandler rendering dates in location
func NewPortfolioHandler(portfolioService portfolio.PortfolioService, location *time.Location) PortfolioHandler {
	return &portfolioHandler{portfolioService: portfolioService, location: location}
}

// Buy handles the POST request purchasing shares
// @Summary Buy shares
// @Tags Portfolio
// @Accept json
// @Produce json
// @Param requestBody body TradeRequest true "Order"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /buy [post]
func (handler *portfolioHandler) Buy(ctx *gin.Context) {
	handler.trade(ctx, portfolio.KindBuy)
}

// Sell handles the POST request selling shares
// @Summary Sell shares
// @Tags Portfolio
// @Accept json
// @Produce json
// @Param requestBody body TradeRequest true "Order"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sell [post]
func (handler *portfolioHandler) Sell(ctx *gin.Context) {
	handler.trade(ctx, portfolio.KindSell)
}

func (handler *portfolioHandler) trade(ctx *gin.Context, kind string) {
	var request TradeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid order: %v", err)})
		return
	}
	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	execute := handler.portfolioService.Buy
	if kind == portfolio.KindSell {
		execute = handler.portfolioService.Sell
	}
	tx, err := execute(ctx, currentUserID(ctx), request.CompanyID, request.Quantity)
	if err != nil {
		ctx.JSON(tradeErrorStatus(err), ErrorResponse{Message: err.Error()})
		return
	}

	metrics.TradesTotal.WithLabelValues(strconv.FormatUint(uint64(tx.CompanyID), 10), tx.Kind).Inc()
	ctx.JSON(http.StatusCreated, newTransactionResponse(tx, handler.location))
}

func tradeErrorStatus(err error) int {
	switch {
	case errors.Is(err, portfolio.ErrInvalidQuantity),
		errors.Is(err, portfolio.ErrInsufficientFunds),
		errors.Is(err, portfolio.ErrInsufficientShares):
		return http.StatusBadRequest
	case errors.Is(err, market.ErrCompanyNotFound), errors.Is(err, users.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, portfolio.ErrBalanceChanged):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GetHoldings handles the GET request listing open positions
// @Summary Holdings
// @Tags Portfolio
// @Produce json
// @Success 200 {object} HoldingsResponse
// @Router /get_holdings [get]
func (handler *portfolioHandler) GetHoldings(ctx *gin.Context) {
	holdings, err := handler.portfolioService.Holdings(ctx, currentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error loading holdings: %v", err)})
		return
	}
	ctx.JSON(http.StatusOK, newHoldingsResponse(holdings))
}

// GetTransactions handles the POST request listing trades, newest first
// @Summary Transactions
// @Tags Portfolio
// @Produce json
// @Success 200 {object} TransactionsResponse
// @Router /get_transactions [post]
func (handler *portfolioHandler) GetTransactions(ctx *gin.Context) {
	views, err := handler.portfolioService.Transactions(ctx, currentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error loading transactions: %v", err)})
		return
	}

	response := TransactionsResponse{Transactions: make([]TransactionResponse, len(views))}
	for i, v := range views {
		tx := newTransactionResponse(v.Transaction, handler.location)
		tx.Ticker = v.Symbol
		tx.CompanyName = v.CompanyName
		response.Transactions[i] = tx
	}
	ctx.JSON(http.StatusOK, response)
}

// GetNetWorth handles the POST request for the daily net worth series
// @Summary Net worth history
// @Tags Portfolio
// @Produce json
// @Success 200 {object} SeriesResponse
// @Failure 404 {object} ErrorResponse
// @Router /get_net_worth [post]
func (handler *portfolioHandler) GetNetWorth(ctx *gin.Context) {
	points, err := handler.portfolioService.NetWorth(ctx, currentUserID(ctx))
	if errors.Is(err, users.ErrUserNotFound) {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error computing net worth: %v", err)})
		return
	}
	ctx.JSON(http.StatusOK, newNetWorthSeries(points))
}

// Portfolio handles the GET request for the portfolio page links
// @Summary Portfolio page data
// @Tags Portfolio
// @Produce json
// @Success 200 {object} PortfolioLinksResponse
// @Router /portfolio [get]
func (handler *portfolioHandler) Portfolio(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, PortfolioLinksResponse{
		GetHoldingsURL:       BasePath + "/get_holdings",
		GetUserInfoURL:       BasePath + "/get_user_info",
		UpdateUserProfileURL: BasePath + "/update_user_profile",
		GetNetWorthURL:       BasePath + "/get_net_worth",
		GetTransactionsURL:   BasePath + "/get_transactions",
	})
}
