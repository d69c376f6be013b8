package main

import (
	"fmt"
	"net/http"
	"os"

	"stocker/internal/config"
	"stocker/internal/database"
	"stocker/internal/handlers"
	"stocker/internal/logger"
	"stocker/internal/marketdata"
	"stocker/internal/middleware"
	"stocker/internal/services"
	"stocker/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "stocker/internal/docs" // Import swagger docs
)

// @title           Stocker API
// @version         1.0
// @description     Stocker is a simulated stock-trading application where users manage virtual cash and trade stocks at real market prices.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	locks := services.NewUserLocks()
	quotes := marketdata.NewClient(appConfig.MarketDataBaseURL, appConfig.MarketDataAPIKey)

	userService := services.NewUserService(db)
	priceService := services.NewPriceService(db, quotes)
	ledgerService := services.NewLedgerService()
	cashService := services.NewCashService(db, locks)
	tradeService := services.NewTradeService(db, priceService, ledgerService, locks)
	portfolioService := services.NewPortfolioService(db, userService, priceService, ledgerService)

	// Refresh tokens issued before this restart stop working.
	revoked, err := userService.RevokeAllSessions()
	if err != nil {
		return fmt.Errorf("failed to revoke stale sessions: %w", err)
	}
	if revoked > 0 {
		log.Infof("Revoked %d stale session(s)", revoked)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	tradeHandler := handlers.NewTradeHandler(tradeService)
	cashHandler := handlers.NewCashHandler(cashService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	marketHandler := handlers.NewMarketHandler(priceService, portfolioService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Trading and cash routes
	protected.POST("/trades", tradeHandler.ExecuteTrade)
	protected.POST("/cash", cashHandler.MoveCash)

	// Portfolio routes
	protected.GET("/portfolio", portfolioHandler.GetPortfolio)

	// Stock routes
	stocks := protected.Group("/stocks")
	stocks.GET("", marketHandler.ListStocks)
	stocks.GET("/:symbol", marketHandler.GetStock)

	log.Infof("Starting Stocker backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
