package models

import (
	"time"

	"stocker/internal/uuid"

	"gorm.io/gorm"
)

// CashFlowType represents the direction of a cash movement.
type CashFlowType string

const (
	CashFlowDeposit  CashFlowType = "deposit"
	CashFlowWithdraw CashFlowType = "withdraw"
)

// CashLog is an immutable record of a deposit or withdrawal.
// Append-only — no Base embed, no soft deletes.
type CashLog struct {
	ID        string       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string       `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount    int64        `gorm:"type:bigint;not null" json:"amount"`
	Type      CashFlowType `gorm:"size:10;not null" json:"type"`
	Timestamp time.Time    `gorm:"not null" json:"timestamp"`
}

// BeforeCreate hook generates a UUIDv7 and stamps the entry time.
func (c *CashLog) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New()
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now()
	}
	return nil
}
