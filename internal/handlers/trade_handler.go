package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "stocker/internal/errors"
	"stocker/internal/services"
)

// TradeHandler handles trade execution requests
type TradeHandler struct {
	tradeService services.TradeServicer
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(tradeService services.TradeServicer) *TradeHandler {
	return &TradeHandler{tradeService: tradeService}
}

// TradeRequest represents a buy or sell order payload
type TradeRequest struct {
	Symbol string `json:"symbol" binding:"required,max=10,symbol"`
	Shares int64  `json:"shares" binding:"required,min=1"`
	Action string `json:"action" binding:"required,trade_action"`
}

// ExecuteTrade handles a buy or sell order
// @Summary     Execute a trade
// @Description Buy or sell shares of a stock at the current price
// @Tags        trades
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TradeRequest true "Trade order"
// @Success     200 {object} services.TradeResult "Executed trade"
// @Failure     400 {object} ErrorResponse "Invalid input, insufficient funds, or insufficient shares"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     503 {object} ErrorResponse "Price unavailable"
// @Router      /trades [post]
func (h *TradeHandler) ExecuteTrade(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))

	result, err := h.tradeService.ExecuteTrade(c.Request.Context(), userID, symbol, req.Shares, req.Action)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
