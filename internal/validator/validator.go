// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// symbolRegex matches exchange tickers as they appear in listing feeds,
// including class shares (BRK.B) and hyphenated symbols.
var symbolRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9.-]{0,9}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("trade_action", validateTradeAction)
		_ = v.RegisterValidation("cash_flow_type", validateCashFlowType)
		_ = v.RegisterValidation("symbol", validateSymbol)
	}
}

func validateTradeAction(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "buy", "sell":
		return true
	}
	return false
}

func validateCashFlowType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "deposit", "withdraw":
		return true
	}
	return false
}

// validateSymbol checks the field against symbolRegex after the same
// normalization the handlers apply, so lowercase input stays valid.
func validateSymbol(fl validator.FieldLevel) bool {
	symbol := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	return symbolRegex.MatchString(symbol)
}
