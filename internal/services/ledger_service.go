package services

import (
	"gorm.io/gorm"

	apperrors "stocker/internal/errors"
	"stocker/internal/models"
)

// ledgerService handles buy-lot accounting and the trade log.
type ledgerService struct{}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService() LedgerServicer {
	return &ledgerService{}
}

// HeldShares sums the remaining shares across all open lots for (user, symbol).
func (s *ledgerService) HeldShares(db *gorm.DB, userID, symbol string) (int64, error) {
	var total int64
	err := db.Model(&models.Lot{}).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Select("COALESCE(SUM(shares), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// RecordBuy creates a new lot and a buy trade-log entry. Each buy is its own
// lot — lots of the same symbol are never merged.
func (s *ledgerService) RecordBuy(tx *gorm.DB, userID, symbol string, shares, price int64) error {
	lot := &models.Lot{
		UserID: userID,
		Symbol: symbol,
		Shares: shares,
		Price:  price,
	}
	if err := tx.Create(lot).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	entry := &models.TradeLog{
		UserID: userID,
		Symbol: symbol,
		Shares: shares,
		Action: models.TradeActionBuy,
		Price:  price,
	}
	if err := tx.Create(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return nil
}

// RecordSell consumes shares from the user's lots oldest-first, deleting each
// lot it exhausts, and appends a sell trade-log entry. The caller must have
// verified HeldShares >= shares; running out of lots mid-walk means that
// precondition was violated.
func (s *ledgerService) RecordSell(tx *gorm.DB, userID, symbol string, shares, price int64) error {
	var lots []models.Lot
	if err := tx.Where("user_id = ? AND symbol = ?", userID, symbol).
		Order("created_at ASC").Find(&lots).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	remaining := shares
	for i := range lots {
		if remaining == 0 {
			break
		}
		lot := &lots[i]
		if lot.Shares <= remaining {
			remaining -= lot.Shares
			if err := tx.Delete(lot).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			continue
		}
		if err := tx.Model(lot).Update("shares", lot.Shares-remaining).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		remaining = 0
	}
	if remaining > 0 {
		return apperrors.ErrInsufficientShares
	}

	entry := &models.TradeLog{
		UserID: userID,
		Symbol: symbol,
		Shares: shares,
		Action: models.TradeActionSell,
		Price:  price,
	}
	if err := tx.Create(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return nil
}
