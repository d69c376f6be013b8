package testutil_test

import (
	"testing"

	"stocker/internal/errors"
	"stocker/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "lots", "trade_logs", "cash_logs", "stock_prices"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have a non-empty ID")
	}

	funded := testutil.CreateTestUserWithBalance(t, db, 100000)
	if funded.Balance != 100000 {
		t.Errorf("expected balance 100000, got %d", funded.Balance)
	}

	lot := testutil.CreateTestLot(t, db, user.ID, "ABC", 10, 5000)
	if lot.Shares != 10 || lot.Price != 5000 {
		t.Errorf("unexpected lot: %+v", lot)
	}

	stock := testutil.CreateTestStockPrice(t, db, "ABC", 5000)
	if stock.Symbol != "ABC" || stock.Price != 5000 {
		t.Errorf("unexpected stock price: %+v", stock)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrStockNotFound, "custom message")
	testutil.AssertAppError(t, err, "STOCK_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
