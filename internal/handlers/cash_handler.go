package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stocker/internal/errors"
	"stocker/internal/services"
)

// CashHandler handles deposit and withdrawal requests
type CashHandler struct {
	cashService services.CashServicer
}

// NewCashHandler creates a new CashHandler
func NewCashHandler(cashService services.CashServicer) *CashHandler {
	return &CashHandler{cashService: cashService}
}

// CashRequest represents a deposit or withdrawal payload. Amount is in cents.
type CashRequest struct {
	Type   string `json:"type" binding:"required,cash_flow_type"`
	Amount int64  `json:"amount" binding:"required,min=1"`
}

// MoveCash handles a deposit or withdrawal
// @Summary     Deposit or withdraw cash
// @Description Move virtual cash into or out of the account. Amounts are in cents.
// @Tags        cash
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CashRequest true "Cash movement"
// @Success     200 {object} services.CashResult "Applied cash movement"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient funds"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /cash [post]
func (h *CashHandler) MoveCash(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var result *services.CashResult
	switch req.Type {
	case "deposit":
		result, err = h.cashService.Deposit(userID, req.Amount)
	case "withdraw":
		result, err = h.cashService.Withdraw(userID, req.Amount)
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
