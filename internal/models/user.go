package models

import "time"

// User represents the user model in the database.
// Balance is stored in cents and is never allowed to go negative.
type User struct {
	Base
	Username         string     `gorm:"uniqueIndex;not null" json:"username"`
	Password         string     `gorm:"not null" json:"-"`
	Balance          int64      `gorm:"type:bigint;not null;default:0" json:"balance"`
	IsActive         bool       `gorm:"default:true" json:"is_active"`
	RefreshTokenHash string     `gorm:"size:64" json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`

	Lots      []Lot      `gorm:"foreignKey:UserID" json:"lots,omitempty"`
	TradeLogs []TradeLog `gorm:"foreignKey:UserID" json:"trade_logs,omitempty"`
	CashLogs  []CashLog  `gorm:"foreignKey:UserID" json:"cash_logs,omitempty"`
}
