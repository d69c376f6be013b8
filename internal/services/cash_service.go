package services

import (
	"errors"
	"math"

	"gorm.io/gorm"

	apperrors "stocker/internal/errors"
	"stocker/internal/models"
)

// cashService handles deposits and withdrawals against the user balance.
type cashService struct {
	db    *gorm.DB
	locks *UserLocks
}

// NewCashService creates a new CashServicer. The lock table must be shared
// with the trade service so cash and trade mutations for a user serialize.
func NewCashService(db *gorm.DB, locks *UserLocks) CashServicer {
	return &cashService{db: db, locks: locks}
}

// Deposit credits the user's balance and appends a deposit cash-log entry.
// The balance mutation and the log entry commit in one transaction.
func (s *cashService) Deposit(userID string, amount int64) (*CashResult, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Deposit amount must be positive")
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	return s.apply(userID, amount, models.CashFlowDeposit)
}

// Withdraw debits the user's balance and appends a withdraw cash-log entry.
// A withdrawal exceeding the balance fails with ErrInsufficientFunds and
// leaves no log entry behind.
func (s *cashService) Withdraw(userID string, amount int64) (*CashResult, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Withdrawal amount must be positive")
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	return s.apply(userID, amount, models.CashFlowWithdraw)
}

// apply runs the balance check, mutation, and log append in one transaction.
func (s *cashService) apply(userID string, amount int64, flow models.CashFlowType) (*CashResult, error) {
	var balance int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if txErr := tx.Where("id = ?", userID).First(&user).Error; txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		switch flow {
		case models.CashFlowDeposit:
			if user.Balance > math.MaxInt64-amount {
				return apperrors.WithMessage(apperrors.ErrInvalidInput, "Deposit amount is too large")
			}
			balance = user.Balance + amount
		case models.CashFlowWithdraw:
			if user.Balance < amount {
				return apperrors.ErrInsufficientFunds
			}
			balance = user.Balance - amount
		}

		if txErr := tx.Model(&user).Update("balance", balance).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		entry := &models.CashLog{
			UserID: userID,
			Amount: amount,
			Type:   flow,
		}
		if txErr := tx.Create(entry).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CashResult{Type: flow, Amount: amount, Balance: balance}, nil
}
