// cmd/trade-floor-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	v1 "github.com/ryanchowdev/Stock-Market-Imitation/internal/api/rest/v1"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/app"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/market"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/infrastructure/cryptography"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/infrastructure/markdown"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/infrastructure/metrics"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/infrastructure/persistence"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/infrastructure/simulation"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/config"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/logger"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/tracing"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize tracing
	shutdownTracing, err := tracing.Init(restConfig.Tracing, os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Warn("Failed to flush traces: ", err)
		}
	}()

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := persistence.CloseDB(deps.db); err != nil {
			log.Warn("Failed to close database: ", err)
		}
	}()

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db       *gorm.DB
	services v1.Services
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.Migrate(db); err != nil {
		return nil, err
	}
	log.Info("Database migrations completed successfully")

	services, err := initializeApplicationServices(cfg, db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	// Seed the preset companies so the first page view finds them
	created, err := services.Simulator.InitializeDatabase(context.Background(), market.PresetCompanies())
	if err != nil {
		return nil, fmt.Errorf("failed to seed companies: %w", err)
	}
	log.Info("Seeded ", created, " preset companies")

	return &appDependencies{db: db, services: services}, nil
}

// initializeApplicationServices sets up repositories and all application services
func initializeApplicationServices(cfg *config.RestConfig, db *gorm.DB, log logger.Logger) (v1.Services, error) {
	var services v1.Services

	userRepo, err := persistence.NewGormUserRepository(db, log)
	if err != nil {
		return services, fmt.Errorf("failed to create user repository: %w", err)
	}
	companyRepo, err := persistence.NewGormCompanyRepository(db, log)
	if err != nil {
		return services, fmt.Errorf("failed to create company repository: %w", err)
	}
	historyRepo, err := persistence.NewGormPriceHistoryRepository(db, log)
	if err != nil {
		return services, fmt.Errorf("failed to create price history repository: %w", err)
	}
	tradeRepo, err := persistence.NewGormTradeRepository(db, log)
	if err != nil {
		return services, fmt.Errorf("failed to create trade repository: %w", err)
	}
	topicRepo, err := persistence.NewGormTopicRepository(db, log)
	if err != nil {
		return services, fmt.Errorf("failed to create topic repository: %w", err)
	}
	postRepo, err := persistence.NewGormPostRepository(db, log)
	if err != nil {
		return services, fmt.Errorf("failed to create post repository: %w", err)
	}
	commentRepo, err := persistence.NewGormCommentRepository(db, log)
	if err != nil {
		return services, fmt.Errorf("failed to create comment repository: %w", err)
	}
	reactionRepo, err := persistence.NewGormReactionRepository(db, log)
	if err != nil {
		return services, fmt.Errorf("failed to create reaction repository: %w", err)
	}

	generator, err := simulation.NewRandomWalk(cfg.Simulator.Volatility, time.Now().UnixNano())
	if err != nil {
		return services, fmt.Errorf("failed to create price generator: %w", err)
	}
	services.Simulator, err = app.NewStockSimulator(companyRepo, generator, cfg.Simulator, logger.Component(log, "simulator"))
	if err != nil {
		return services, fmt.Errorf("failed to create stock simulator: %w", err)
	}

	services.Market, err = app.NewMarketService(services.Simulator, companyRepo, historyRepo, market.PresetCompanies(), logger.Component(log, "market"))
	if err != nil {
		return services, fmt.Errorf("failed to create market service: %w", err)
	}

	hasher, err := cryptography.NewBcryptHasher(0, log)
	if err != nil {
		return services, fmt.Errorf("failed to create password hasher: %w", err)
	}
	tokens, err := cryptography.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log)
	if err != nil {
		return services, fmt.Errorf("failed to create token issuer: %w", err)
	}
	startingCash := decimal.NewFromFloat(cfg.Auth.StartingCash)

	services.Users, err = app.NewUserService(userRepo, hasher, tokens, startingCash, logger.Component(log, "users"))
	if err != nil {
		return services, fmt.Errorf("failed to create user service: %w", err)
	}

	services.Portfolio, err = app.NewPortfolioService(tradeRepo, userRepo, historyRepo, services.Simulator,
		startingCash, cfg.Simulator.Location(), logger.Component(log, "portfolio"))
	if err != nil {
		return services, fmt.Errorf("failed to create portfolio service: %w", err)
	}

	renderer, err := markdown.NewRenderer()
	if err != nil {
		return services, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	services.Forum, err = app.NewForumService(topicRepo, postRepo, commentRepo, reactionRepo, userRepo, renderer, logger.Component(log, "forum"))
	if err != nil {
		return services, fmt.Errorf("failed to create forum service: %w", err)
	}

	services.Seeder, err = app.NewDemoSeeder(topicRepo, postRepo, commentRepo, reactionRepo, userRepo, hasher, startingCash, logger.Component(log, "seeder"))
	if err != nil {
		return services, fmt.Errorf("failed to create demo seeder: %w", err)
	}

	log.Info("Application services initialized successfully")
	return services, nil
}

// startBackgroundWorkers runs the simulator loop and counts its ticks until ctx is done
func startBackgroundWorkers(ctx context.Context, cfg *config.RestConfig, simulator market.Simulator, log logger.Logger) {
	if !cfg.Simulator.Enabled {
		log.Info("Background price simulation disabled, prices catch up on request")
		return
	}

	ticks, unsubscribe := simulator.Subscribe(v1.StreamBuffer)
	go func() {
		defer unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return
			case tick := <-ticks:
				metrics.TicksTotal.WithLabelValues(tick.Symbol).Inc()
			}
		}
	}()

	go simulator.Run(ctx)
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", v1.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", v1.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.Tracing.Enabled {
		r.Use(tracing.Middleware())
	}
	if cfg.Metrics.Enabled {
		r.Use(metrics.Middleware())
		r.GET(cfg.Metrics.Path, metrics.Handler())
	}

	// Setup API routes
	v1.SetupRoutes(r, deps.services, cfg.Simulator.Location(), logger.Component(log, "api"))

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	startBackgroundWorkers(workerCtx, cfg, deps.services.Simulator, log)

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	// Stop ticking before draining requests
	stopWorkers()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
