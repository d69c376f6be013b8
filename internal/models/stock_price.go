package models

// StockPrice is the cached price and listing metadata for a symbol.
// A row is written by the bulk listing refresh and never expires; GetPrice
// serves it as-is until the next refresh overwrites it.
type StockPrice struct {
	Base
	Symbol    string `gorm:"size:10;not null;uniqueIndex" json:"symbol"`
	Name      string `gorm:"size:100;not null" json:"name"`
	Exchange  string `gorm:"size:10;not null" json:"exchange"`
	AssetType string `gorm:"size:10;not null" json:"asset_type"`
	Status    string `gorm:"size:10;not null" json:"status"`
	Price     int64  `gorm:"type:bigint;not null" json:"price"`
}
