package services

import (
	"context"
	"testing"

	"stocker/internal/models"
	"stocker/internal/testutil"
)

func TestGetPortfolio(t *testing.T) {
	t.Run("aggregates_balance_lots_and_histories", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		users := NewUserService(db)
		prices := NewPriceService(db, &stubMarketData{})
		ledger := NewLedgerService()
		svc := NewPortfolioService(db, users, prices, ledger)

		user := testutil.CreateTestUserWithBalance(t, db, 50000)
		testutil.CreateTestLot(t, db, user.ID, "ABC", 10, 5000)
		testutil.CreateTestLot(t, db, user.ID, "XYZ", 2, 1000)
		testutil.AssertNoError(t, db.Create(&models.TradeLog{
			UserID: user.ID, Symbol: "ABC", Shares: 10,
			Action: models.TradeActionBuy, Price: 5000,
		}).Error)
		testutil.AssertNoError(t, db.Create(&models.CashLog{
			UserID: user.ID, Amount: 100000, Type: models.CashFlowDeposit,
		}).Error)

		view, err := svc.GetPortfolio(user.ID)
		testutil.AssertNoError(t, err)

		if view.Balance != 50000 {
			t.Errorf("expected balance 50000, got %d", view.Balance)
		}
		if len(view.Lots) != 2 {
			t.Errorf("expected 2 lots, got %d", len(view.Lots))
		}
		if len(view.TradeLogs) != 1 {
			t.Errorf("expected 1 trade log, got %d", len(view.TradeLogs))
		}
		if len(view.CashLogs) != 1 {
			t.Errorf("expected 1 cash log, got %d", len(view.CashLogs))
		}
	})

	t.Run("empty_portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db, NewUserService(db), NewPriceService(db, &stubMarketData{}), NewLedgerService())
		user := testutil.CreateTestUser(t, db)

		view, err := svc.GetPortfolio(user.ID)
		testutil.AssertNoError(t, err)

		if view.Balance != 0 || len(view.Lots) != 0 || len(view.TradeLogs) != 0 || len(view.CashLogs) != 0 {
			t.Errorf("expected empty portfolio, got %+v", view)
		}
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db, NewUserService(db), NewPriceService(db, &stubMarketData{}), NewLedgerService())

		_, err := svc.GetPortfolio("00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestGetSymbolDetail(t *testing.T) {
	t.Run("combines_price_and_position", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db, NewUserService(db), NewPriceService(db, &stubMarketData{}), NewLedgerService())
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestStockPrice(t, db, "ABC", 5000)
		testutil.CreateTestLot(t, db, user.ID, "ABC", 7, 4800)

		detail, err := svc.GetSymbolDetail(context.Background(), user.ID, "ABC")
		testutil.AssertNoError(t, err)

		if detail.Price != 5000 {
			t.Errorf("expected price 5000, got %d", detail.Price)
		}
		if detail.HeldShares != 7 {
			t.Errorf("expected 7 held shares, got %d", detail.HeldShares)
		}
	})

	t.Run("no_position", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db, NewUserService(db), NewPriceService(db, &stubMarketData{}), NewLedgerService())
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestStockPrice(t, db, "ABC", 5000)

		detail, err := svc.GetSymbolDetail(context.Background(), user.ID, "ABC")
		testutil.AssertNoError(t, err)
		if detail.HeldShares != 0 {
			t.Errorf("expected 0 held shares, got %d", detail.HeldShares)
		}
	})

	t.Run("price_unavailable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db, NewUserService(db), NewPriceService(db, &stubMarketData{}), NewLedgerService())
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetSymbolDetail(context.Background(), user.ID, "NOPE")
		testutil.AssertAppError(t, err, "PRICE_UNAVAILABLE")
	})
}
