package services

import (
	"context"

	"gorm.io/gorm"

	apperrors "stocker/internal/errors"
	"stocker/internal/models"
)

// portfolioService assembles read-only views of a user's holdings.
type portfolioService struct {
	db     *gorm.DB
	users  UserServicer
	prices PriceServicer
	ledger LedgerServicer
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB, users UserServicer, prices PriceServicer, ledger LedgerServicer) PortfolioServicer {
	return &portfolioService{db: db, users: users, prices: prices, ledger: ledger}
}

// GetPortfolio returns the user's balance, open lots, and both histories,
// newest entries first.
func (s *portfolioService) GetPortfolio(userID string) (*PortfolioView, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	var lots []models.Lot
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC").Find(&lots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var tradeLogs []models.TradeLog
	if err := s.db.Where("user_id = ?", userID).
		Order("timestamp DESC").Find(&tradeLogs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var cashLogs []models.CashLog
	if err := s.db.Where("user_id = ?", userID).
		Order("timestamp DESC").Find(&cashLogs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &PortfolioView{
		Balance:   user.Balance,
		Lots:      lots,
		TradeLogs: tradeLogs,
		CashLogs:  cashLogs,
	}, nil
}

// GetSymbolDetail returns the current price for a symbol alongside the
// user's held shares in it.
func (s *portfolioService) GetSymbolDetail(ctx context.Context, userID, symbol string) (*SymbolDetail, error) {
	price, err := s.prices.GetPrice(ctx, symbol)
	if err != nil {
		return nil, err
	}

	held, err := s.ledger.HeldShares(s.db, userID, symbol)
	if err != nil {
		return nil, err
	}

	return &SymbolDetail{
		Symbol:     symbol,
		Price:      price,
		HeldShares: held,
	}, nil
}
