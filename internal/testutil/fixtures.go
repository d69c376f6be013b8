package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"stocker/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithBalance(t, db, 0)
}

// CreateTestUserWithBalance creates a user with the given balance (in cents).
func CreateTestUserWithBalance(t *testing.T, db *gorm.DB, balance int64) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: fmt.Sprintf("user%d", nextID()),
		Password: string(hash),
		Balance:  balance,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestLot creates an open buy lot for the user.
func CreateTestLot(t *testing.T, db *gorm.DB, userID, symbol string, shares, price int64) *models.Lot {
	t.Helper()

	lot := &models.Lot{
		UserID: userID,
		Symbol: symbol,
		Shares: shares,
		Price:  price,
	}
	if err := db.Create(lot).Error; err != nil {
		t.Fatalf("failed to create test lot: %v", err)
	}
	return lot
}

// CreateTestLotAt creates an open buy lot with an explicit creation time,
// for tests that depend on oldest-first consumption order.
func CreateTestLotAt(t *testing.T, db *gorm.DB, userID, symbol string, shares, price int64, createdAt time.Time) *models.Lot {
	t.Helper()

	lot := CreateTestLot(t, db, userID, symbol, shares, price)
	if err := db.Model(lot).Update("created_at", createdAt).Error; err != nil {
		t.Fatalf("failed to backdate test lot: %v", err)
	}
	lot.CreatedAt = createdAt
	return lot
}

// CreateTestStockPrice creates a cached listing row for the symbol.
func CreateTestStockPrice(t *testing.T, db *gorm.DB, symbol string, price int64) *models.StockPrice {
	t.Helper()

	stock := &models.StockPrice{
		Symbol:    symbol,
		Name:      fmt.Sprintf("Test Stock %d", nextID()),
		Exchange:  "NASDAQ",
		AssetType: "Stock",
		Status:    "Active",
		Price:     price,
	}
	if err := db.Create(stock).Error; err != nil {
		t.Fatalf("failed to create test stock price: %v", err)
	}
	return stock
}
