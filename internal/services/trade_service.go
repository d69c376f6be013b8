package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	apperrors "stocker/internal/errors"
	"stocker/internal/models"
)

// tradeService orchestrates the price cache, ledger, and user balance to
// apply a single buy or sell order. An order either fully applies or fully
// rejects: the balance mutation and the ledger writes share one transaction.
type tradeService struct {
	db     *gorm.DB
	prices PriceServicer
	ledger LedgerServicer
	locks  *UserLocks
}

// NewTradeService creates a new TradeServicer. The lock table must be shared
// with the cash service.
func NewTradeService(db *gorm.DB, prices PriceServicer, ledger LedgerServicer, locks *UserLocks) TradeServicer {
	return &tradeService{db: db, prices: prices, ledger: ledger, locks: locks}
}

// ExecuteTrade validates and applies one buy or sell order.
func (s *tradeService) ExecuteTrade(ctx context.Context, userID, symbol string, shares int64, action string) (*TradeResult, error) {
	if shares <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Shares must be positive")
	}

	var tradeAction models.TradeAction
	switch action {
	case string(models.TradeActionBuy):
		tradeAction = models.TradeActionBuy
	case string(models.TradeActionSell):
		tradeAction = models.TradeActionSell
	default:
		return nil, apperrors.ErrInvalidAction
	}

	// Resolve the price before taking the user lock; the quote call can block
	// on the network and must not stall the user's other mutations.
	price, err := s.prices.GetPrice(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if price > 0 && shares > math.MaxInt64/price {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Order size is too large")
	}
	total := shares * price

	unlock := s.locks.Lock(userID)
	defer unlock()

	var balance int64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if txErr := tx.Where("id = ?", userID).First(&user).Error; txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		switch tradeAction {
		case models.TradeActionBuy:
			if user.Balance < total {
				return apperrors.ErrInsufficientFunds
			}
			balance = user.Balance - total
			if txErr := tx.Model(&user).Update("balance", balance).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
			return s.ledger.RecordBuy(tx, userID, symbol, shares, price)

		case models.TradeActionSell:
			held, txErr := s.ledger.HeldShares(tx, userID, symbol)
			if txErr != nil {
				return txErr
			}
			if held < shares {
				return apperrors.ErrInsufficientShares
			}
			if user.Balance > math.MaxInt64-total {
				return apperrors.WithMessage(apperrors.ErrInvalidInput, "Order size is too large")
			}
			balance = user.Balance + total
			if txErr := tx.Model(&user).Update("balance", balance).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
			return s.ledger.RecordSell(tx, userID, symbol, shares, price)
		}

		return apperrors.ErrInvalidAction
	})
	if err != nil {
		return nil, err
	}

	verb := "bought"
	if tradeAction == models.TradeActionSell {
		verb = "sold"
	}

	return &TradeResult{
		Symbol:  symbol,
		Shares:  shares,
		Action:  tradeAction,
		Price:   price,
		Total:   total,
		Balance: balance,
		Message: fmt.Sprintf("Successfully %s %d shares of %s", verb, shares, symbol),
	}, nil
}
