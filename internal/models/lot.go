package models

// Lot represents an open buy lot: shares of a symbol bought at a single price.
// Each buy creates its own lot; sells consume lots oldest-first and delete a
// lot once its share count reaches zero. Shares are always > 0 while the lot
// is alive.
type Lot struct {
	Base
	UserID string `gorm:"type:uuid;not null;index:idx_lots_user_symbol" json:"user_id"`
	Symbol string `gorm:"size:10;not null;index:idx_lots_user_symbol" json:"symbol"`
	Shares int64  `gorm:"not null" json:"shares"`
	Price  int64  `gorm:"type:bigint;not null" json:"price"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
