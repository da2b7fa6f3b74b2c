package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/market"
)

// DefaultHistoryLimit is the number of points returned when no limit is given
const DefaultHistoryLimit = 100

// MarketHandler defines the interface for handling company quotes
type MarketHandler interface {
	Company(ctx *gin.Context)
	CompanyRefresh(ctx *gin.Context)
	SearchData(ctx *gin.Context)
	Search(ctx *gin.Context)
	History(ctx *gin.Context)
}

type marketHandler struct {
	marketService market.MarketService
	location      *time.Location
}

// NewMarketHandler creates a new MarketHandler rendering dates in location
func NewMarketHandler(marketService market.MarketService, location *time.Location) MarketHandler {
	return &marketHandler{marketService: marketService, location: location}
}

// Company handles the GET request for a company page
// @Summary Company quote
// @Description Quote of the company identified by ticker, the default index when omitted.
// @Tags Market
// @Produce json
// @Param ticker path string false "Ticker"
// @Success 200 {object} CompanyResponse
// @Success 302
// @Router /company/{ticker} [get]
func (handler *marketHandler) Company(ctx *gin.Context) {
	ticker := ctx.Param("ticker")
	if ticker == "" {
		ticker = market.DefaultTicker
	}

	company, err := handler.marketService.Quote(ctx, ticker)
	if errors.Is(err, market.ErrCompanyNotFound) {
		if ticker == market.DefaultTicker {
			ctx.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
			return
		}
		ctx.Redirect(http.StatusFound, BasePath+"/company")
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error loading company: %v", err)})
		return
	}

	ctx.JSON(http.StatusOK, newCompanyResponse(company, handler.location))
}

// CompanyRefresh handles the POST request catching a company up
// @Summary Refresh company quote
// @Tags Market
// @Accept json
// @Produce json
// @Param requestBody body CompanyRefreshRequest true "Company"
// @Success 200 {object} CompanyRefreshResponse
// @Failure 404 {object} ErrorResponse
// @Router /company_refresh [post]
func (handler *marketHandler) CompanyRefresh(ctx *gin.Context) {
	var request CompanyRefreshRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid refresh request: %v", err)})
		return
	}
	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	company, err := handler.marketService.Refresh(ctx, request.CompanyID)
	if errors.Is(err, market.ErrCompanyNotFound) {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error refreshing company: %v", err)})
		return
	}

	ctx.JSON(http.StatusOK, CompanyRefreshResponse{Companies: newCompanyResponse(company, handler.location)})
}

// SearchData handles the GET request listing every company
// @Summary All companies
// @Tags Market
// @Produce json
// @Success 200 {object} CompanyRowsResponse
// @Router /search_data [get]
func (handler *marketHandler) SearchData(ctx *gin.Context) {
	companies, err := handler.marketService.List(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error listing companies: %v", err)})
		return
	}
	ctx.JSON(http.StatusOK, CompanyRowsResponse{CompanyRows: newCompanyRows(companies, handler.location)})
}

// Search handles the GET request matching companies by name or ticker
// @Summary Search companies
// @Tags Market
// @Produce json
// @Param q query string false "Query"
// @Success 200 {object} CompanyRowsResponse
// @Router /search [get]
func (handler *marketHandler) Search(ctx *gin.Context) {
	companies, err := handler.marketService.Search(ctx, ctx.Query("q"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error searching companies: %v", err)})
		return
	}
	ctx.JSON(http.StatusOK, CompanyRowsResponse{CompanyRows: newCompanyRows(companies, handler.location)})
}

// History handles the GET request for the recent prices of a company
// @Summary Price history
// @Tags Market
// @Produce json
// @Param ticker path string true "Ticker"
// @Param limit query int false "Number of points"
// @Success 200 {object} SeriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /company/{ticker}/history [get]
func (handler *marketHandler) History(ctx *gin.Context) {
	limit := DefaultHistoryLimit
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	points, err := handler.marketService.History(ctx, ctx.Param("ticker"), limit)
	if errors.Is(err, market.ErrCompanyNotFound) {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error loading history: %v", err)})
		return
	}

	ctx.JSON(http.StatusOK, newPriceSeries(points, handler.location))
}
