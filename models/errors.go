package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InsufficientStockError is returned when a recipe deduction cannot be
// satisfied. It carries everything the UI needs to explain the failure.
type InsufficientStockError struct {
	IngredientName string
	Required       decimal.Decimal
	Available      decimal.Decimal
	Unit           string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock of '%s': required %s %s, available %s %s",
		e.IngredientName, e.Required, e.Unit, e.Available, e.Unit)
}
