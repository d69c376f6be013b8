package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "stocker/internal/errors"
	"stocker/internal/logger"
	"stocker/internal/models"
	"stocker/internal/pagination"
)

// priceService is the price cache: cached rows are served as-is and never
// expire, and the cache is only populated by the bulk listing refresh.
type priceService struct {
	db     *gorm.DB
	source MarketData
}

// NewPriceService creates a new PriceServicer.
func NewPriceService(db *gorm.DB, source MarketData) PriceServicer {
	return &priceService{db: db, source: source}
}

// GetPrice returns the price for a symbol in cents. A cached StockPrice row
// wins unconditionally; otherwise the quote provider is consulted. The
// single-symbol result is not written back to the cache — only RefreshListing
// populates it — so an unlisted symbol is re-fetched on every call.
func (s *priceService) GetPrice(ctx context.Context, symbol string) (int64, error) {
	var cached models.StockPrice
	err := s.db.Where("symbol = ?", symbol).First(&cached).Error
	if err == nil {
		return cached.Price, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	price, err := s.source.Quote(ctx, symbol)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrPriceUnavailable, err)
	}
	return price, nil
}

// RefreshListing populates the cache from the full exchange listing. If the
// cache already holds any rows it short-circuits and does nothing; there is no
// periodic refresh. Each new listing row costs one extra quote call; rows
// whose quote fails are skipped, a listing fetch failure aborts the refresh
// with nothing persisted. Returns the number of rows written.
func (s *priceService) RefreshListing(ctx context.Context) (int, error) {
	var count int64
	if err := s.db.Model(&models.StockPrice{}).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return 0, nil
	}

	rows, err := s.source.Listing(ctx)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrPriceUnavailable, err)
	}

	written := 0
	for _, row := range rows {
		price, err := s.source.Quote(ctx, row.Symbol)
		if err != nil {
			logger.Get().Warnw("skipping listing row, quote failed",
				"symbol", row.Symbol,
				"error", err.Error(),
			)
			continue
		}

		stock := models.StockPrice{
			Symbol:    row.Symbol,
			Name:      row.Name,
			Exchange:  row.Exchange,
			AssetType: row.AssetType,
			Status:    row.Status,
			Price:     price,
		}

		var existing models.StockPrice
		err = s.db.Where("symbol = ?", row.Symbol).First(&existing).Error
		switch {
		case err == nil:
			updates := map[string]interface{}{
				"name":       stock.Name,
				"exchange":   stock.Exchange,
				"asset_type": stock.AssetType,
				"status":     stock.Status,
				"price":      stock.Price,
			}
			if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
				return written, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := s.db.Create(&stock).Error; err != nil {
				return written, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		default:
			return written, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		written++
	}

	return written, nil
}

// ListStocks returns the cached listing, paginated and ordered by symbol.
// An empty cache triggers a listing refresh first.
func (s *priceService) ListStocks(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.StockPrice], error) {
	if _, err := s.RefreshListing(ctx); err != nil {
		return nil, err
	}

	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.StockPrice{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var stocks []models.StockPrice
	if err := base.Order("symbol ASC").Scopes(pagination.Paginate(page)).Find(&stocks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(stocks, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetStock returns the cached row for a symbol.
func (s *priceService) GetStock(symbol string) (*models.StockPrice, error) {
	var stock models.StockPrice
	if err := s.db.Where("symbol = ?", symbol).First(&stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStockNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &stock, nil
}
