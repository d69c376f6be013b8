package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stocker/internal/handlers"
	"stocker/internal/logger"
	"stocker/internal/marketdata"
	"stocker/internal/middleware"
	"stocker/internal/models"
	"stocker/internal/services"
	"stocker/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Source *stubSource
}

// stubSource is a canned market data provider for integration tests.
type stubSource struct {
	quotes  map[string]int64
	listing []marketdata.ListingRow
}

func (s *stubSource) Quote(_ context.Context, symbol string) (int64, error) {
	price, ok := s.quotes[symbol]
	if !ok {
		return 0, fmt.Errorf("no quote for %s", symbol)
	}
	return price, nil
}

func (s *stubSource) Listing(_ context.Context) ([]marketdata.ListingRow, error) {
	return s.listing, nil
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Lot{},
		&models.TradeLog{},
		&models.CashLog{},
		&models.StockPrice{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	source := &stubSource{
		quotes: map[string]int64{"ABC": 5000, "XYZ": 1000},
		listing: []marketdata.ListingRow{
			{Symbol: "ABC", Name: "Alphabet Soup Co", Exchange: "NASDAQ", AssetType: "Stock", Status: "Active"},
			{Symbol: "XYZ", Name: "XYZ Industries", Exchange: "NYSE", AssetType: "Stock", Status: "Active"},
		},
	}

	// Services
	locks := services.NewUserLocks()
	userService := services.NewUserService(db)
	priceService := services.NewPriceService(db, source)
	ledgerService := services.NewLedgerService()
	cashService := services.NewCashService(db, locks)
	tradeService := services.NewTradeService(db, priceService, ledgerService, locks)
	portfolioService := services.NewPortfolioService(db, userService, priceService, ledgerService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	tradeHandler := handlers.NewTradeHandler(tradeService)
	cashHandler := handlers.NewCashHandler(cashService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	marketHandler := handlers.NewMarketHandler(priceService, portfolioService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.POST("/trades", tradeHandler.ExecuteTrade)
	protected.POST("/cash", cashHandler.MoveCash)
	protected.GET("/portfolio", portfolioHandler.GetPortfolio)

	stocks := protected.Group("/stocks")
	stocks.GET("", marketHandler.ListStocks)
	stocks.GET("/:symbol", marketHandler.GetStock)

	return &testApp{DB: db, Router: router, Source: source}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, username, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, username, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// deposit moves cash into the account, failing the test on error.
func (app *testApp) deposit(t *testing.T, token string, amount int64) {
	t.Helper()
	body := fmt.Sprintf(`{"type":"deposit","amount":%d}`, amount)
	rec := app.request("POST", "/api/v1/cash", body, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("deposit failed: %d %s", rec.Code, rec.Body.String())
	}
}
