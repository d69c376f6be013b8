package models

import (
	"time"

	"stocker/internal/uuid"

	"gorm.io/gorm"
)

// TradeAction represents the direction of a trade.
type TradeAction string

const (
	TradeActionBuy  TradeAction = "buy"
	TradeActionSell TradeAction = "sell"
)

// TradeLog is an immutable record of an executed buy or sell.
// Append-only — no Base embed, no soft deletes.
type TradeLog struct {
	ID        string      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Symbol    string      `gorm:"size:10;not null" json:"symbol"`
	Shares    int64       `gorm:"not null" json:"shares"`
	Action    TradeAction `gorm:"size:4;not null" json:"action"`
	Price     int64       `gorm:"type:bigint;not null" json:"price"`
	Timestamp time.Time   `gorm:"not null" json:"timestamp"`
}

// BeforeCreate hook generates a UUIDv7 and stamps the entry time.
func (t *TradeLog) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New()
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now()
	}
	return nil
}
