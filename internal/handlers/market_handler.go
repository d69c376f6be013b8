package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "stocker/internal/errors"
	"stocker/internal/pagination"
	"stocker/internal/services"
)

// MarketHandler handles stock listing and quote requests
type MarketHandler struct {
	priceService     services.PriceServicer
	portfolioService services.PortfolioServicer
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(priceService services.PriceServicer, portfolioService services.PortfolioServicer) *MarketHandler {
	return &MarketHandler{priceService: priceService, portfolioService: portfolioService}
}

// ListStocks returns the cached stock listing
// @Summary     List stocks
// @Description Get a paginated list of known stocks with cached prices. The
// @Description cache is populated from the listing feed on first use.
// @Tags        stocks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Page size" default(20)
// @Success     200 {object} pagination.PageResponse[models.StockPrice] "Stock listing"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     503 {object} ErrorResponse "Listing feed unavailable"
// @Router      /stocks [get]
func (h *MarketHandler) ListStocks(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	page.Defaults()

	result, err := h.priceService.ListStocks(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetStock returns the current price of a symbol and the user's position in it
// @Summary     Get stock detail
// @Description Get the current price for a symbol alongside the authenticated user's held shares
// @Tags        stocks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       symbol path string true "Stock symbol"
// @Success     200 {object} services.SymbolDetail "Stock detail"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     503 {object} ErrorResponse "Price unavailable"
// @Router      /stocks/{symbol} [get]
func (h *MarketHandler) GetStock(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Symbol is required"))
		return
	}

	detail, err := h.portfolioService.GetSymbolDetail(c.Request.Context(), userID, symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}
