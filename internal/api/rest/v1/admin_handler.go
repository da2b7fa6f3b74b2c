package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/forum"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/portfolio"
)

// AdminHandler defines the interface for maintenance actions
type AdminHandler interface {
	Run(ctx *gin.Context)
}

type adminHandler struct {
	portfolioService portfolio.PortfolioService
	demoSeeder       forum.DemoSeeder
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(portfolioService portfolio.PortfolioService, demoSeeder forum.DemoSeeder) AdminHandler {
	return &adminHandler{portfolioService: portfolioService, demoSeeder: demoSeeder}
}

// Run handles the POST request executing an admin action
// @Summary Run admin action
// @Description dump_transactions clears every trade and resets balances; seed_forum replaces the forum with the demo thread.
// @Tags Admin
// @Accept json
// @Produce json
// @Param requestBody body AdminRequest true "Action"
// @Success 200 {object} InfoResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin [post]
func (handler *adminHandler) Run(ctx *gin.Context) {
	var request AdminRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid admin request: %v", err)})
		return
	}
	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	var err error
	switch request.Action {
	case ActionDumpTransactions:
		err = handler.portfolioService.DumpTransactions(ctx)
	case ActionSeedForum:
		err = handler.demoSeeder.SeedDemo(ctx)
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("error running %s: %v", request.Action, err)})
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{Message: fmt.Sprintf("%s completed", request.Action)})
}
