package services

import (
	"context"

	"gorm.io/gorm"

	"stocker/internal/marketdata"
	"stocker/internal/models"
	"stocker/internal/pagination"
)

// MarketData is the external quote provider. Implemented by marketdata.Client.
type MarketData interface {
	Quote(ctx context.Context, symbol string) (int64, error)
	Listing(ctx context.Context) ([]marketdata.ListingRow, error)
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(username, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
	RevokeAllSessions() (int64, error)
}

// PriceServicer defines the contract for the price cache.
type PriceServicer interface {
	GetPrice(ctx context.Context, symbol string) (int64, error)
	RefreshListing(ctx context.Context) (int, error)
	ListStocks(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.StockPrice], error)
	GetStock(symbol string) (*models.StockPrice, error)
}

// LedgerServicer defines the contract for buy-lot accounting. Mutating
// operations take the caller's transaction handle so a trade's balance and
// ledger writes commit together.
type LedgerServicer interface {
	HeldShares(db *gorm.DB, userID, symbol string) (int64, error)
	RecordBuy(tx *gorm.DB, userID, symbol string, shares, price int64) error
	RecordSell(tx *gorm.DB, userID, symbol string, shares, price int64) error
}

// CashResult reports an applied deposit or withdrawal.
type CashResult struct {
	Type    models.CashFlowType `json:"type"`
	Amount  int64               `json:"amount"`
	Balance int64               `json:"balance"`
}

// CashServicer defines the contract for cash deposits and withdrawals.
type CashServicer interface {
	Deposit(userID string, amount int64) (*CashResult, error)
	Withdraw(userID string, amount int64) (*CashResult, error)
}

// TradeResult reports an executed trade.
type TradeResult struct {
	Symbol  string             `json:"symbol"`
	Shares  int64              `json:"shares"`
	Action  models.TradeAction `json:"action"`
	Price   int64              `json:"price"`
	Total   int64              `json:"total"`
	Balance int64              `json:"balance"`
	Message string             `json:"message"`
}

// TradeServicer defines the contract for the trade executor.
type TradeServicer interface {
	ExecuteTrade(ctx context.Context, userID, symbol string, shares int64, action string) (*TradeResult, error)
}

// PortfolioView aggregates a user's balance, open lots, and histories.
type PortfolioView struct {
	Balance   int64             `json:"balance"`
	Lots      []models.Lot      `json:"lots"`
	TradeLogs []models.TradeLog `json:"trade_logs"`
	CashLogs  []models.CashLog  `json:"cash_logs"`
}

// SymbolDetail combines a symbol's current price with the user's position.
type SymbolDetail struct {
	Symbol     string `json:"symbol"`
	Price      int64  `json:"price"`
	HeldShares int64  `json:"held_shares"`
}

// PortfolioServicer defines the contract for portfolio views.
type PortfolioServicer interface {
	GetPortfolio(userID string) (*PortfolioView, error)
	GetSymbolDetail(ctx context.Context, userID, symbol string) (*SymbolDetail, error)
}
