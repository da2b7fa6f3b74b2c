package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/forum"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/market"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/portfolio"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/logger"
)

// Services bundles what the version 1 routes are served by
type Services struct {
	Simulator market.Simulator
	Market    market.MarketService
	Users     users.UserService
	Portfolio portfolio.PortfolioService
	Forum     forum.ForumService
	Seeder    forum.DemoSeeder
}

// SetupRoutes sets up all the API routes for version 1. Dates are rendered in location.
func SetupRoutes(r *gin.Engine, services Services, location *time.Location, log logger.Logger) {
	v1 := r.Group(BasePath) // lookup in version file
	v1.Use(RequestID())

	auth := AuthRequired(services.Users)

	// Accounts Routes
	authHandler := NewAuthHandler(services.Users)
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/verify_email", authHandler.VerifyEmail)
	v1.GET("/index", OptionalAuth(services.Users), authHandler.Index)
	v1.GET("/get_user_info", auth, authHandler.GetUserInfo)
	v1.POST("/update_user_profile", auth, authHandler.UpdateUserProfile)

	// Market Routes
	marketHandler := NewMarketHandler(services.Market, location)
	v1.GET("/company", marketHandler.Company)
	v1.GET("/company/:ticker", marketHandler.Company)
	v1.GET("/company/:ticker/history", marketHandler.History)
	v1.POST("/company_refresh", marketHandler.CompanyRefresh)
	v1.GET("/search_data", marketHandler.SearchData)
	v1.GET("/search", marketHandler.Search)

	// Portfolio Routes
	portfolioHandler := NewPortfolioHandler(services.Portfolio, location)
	v1.GET("/portfolio", portfolioHandler.Portfolio)
	v1.POST("/buy", auth, portfolioHandler.Buy)
	v1.POST("/sell", auth, portfolioHandler.Sell)
	v1.GET("/get_holdings", auth, portfolioHandler.GetHoldings)
	v1.POST("/get_transactions", auth, portfolioHandler.GetTransactions)
	v1.POST("/get_net_worth", auth, portfolioHandler.GetNetWorth)

	// Forum Routes
	forumHandler := NewForumHandler(services.Forum, services.Users, location)
	v1.GET("/forum", forumHandler.ListTopics)
	v1.GET("/forum/:topic_id", forumHandler.GetTopic)
	v1.GET("/forum_post/:post_id", forumHandler.GetPost)
	v1.POST("/forum_add_topic", auth, forumHandler.AddTopic)
	v1.POST("/forum_add_post/:topic_id", auth, forumHandler.AddPost)
	v1.GET("/get_comments/:post_id", auth, forumHandler.GetComments)
	v1.POST("/save_reaction", auth, forumHandler.SaveReaction)
	v1.POST("/post_comment/:post_id", auth, forumHandler.PostComment)
	v1.DELETE("/delete_comment", auth, forumHandler.DeleteComment)
	v1.GET("/delete_comment", auth, forumHandler.DeleteComment)

	// Admin Routes
	adminHandler := NewAdminHandler(services.Portfolio, services.Seeder)
	v1.POST("/admin", auth, RequireAdmin(), adminHandler.Run)

	// Price Stream Routes
	streamHandler := NewPriceStreamHandler(services.Simulator, location, log)
	v1.GET("/ws/prices", streamHandler.Stream)
}
