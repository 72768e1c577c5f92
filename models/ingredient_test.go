package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStockStatusBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		min      string
		expected string
	}{
		{"depleted", "0", "5", StockStatusOut},
		{"exactly at minimum", "5", "5", StockStatusLow},
		{"below minimum", "2.500", "5", StockStatusLow},
		{"just above minimum", "5.001", "5", StockStatusOK},
		{"healthy", "80", "5", StockStatusOK},
		{"no minimum configured", "1", "0", StockStatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := Ingredient{
				CurrentStock: decimal.RequireFromString(tt.current),
				MinStock:     decimal.RequireFromString(tt.min),
			}
			assert.Equal(t, tt.expected, i.StockStatus())
		})
	}
}

func TestStockPercentage(t *testing.T) {
	max := decimal.NewFromInt(100)
	i := Ingredient{CurrentStock: decimal.NewFromInt(25), MaxStock: &max}
	assert.Equal(t, 25, i.StockPercentage())

	// Rounds half up
	i.CurrentStock = decimal.RequireFromString("33.5")
	assert.Equal(t, 34, i.StockPercentage())

	// Over maximum is clamped
	i.CurrentStock = decimal.NewFromInt(150)
	assert.Equal(t, 100, i.StockPercentage())

	// No maximum means no meaningful percentage
	i.MaxStock = nil
	assert.Equal(t, 0, i.StockPercentage())

	zero := decimal.Zero
	i.MaxStock = &zero
	assert.Equal(t, 0, i.StockPercentage())
}

func TestValidateStockLevels(t *testing.T) {
	max := decimal.NewFromInt(50)

	i := Ingredient{
		CurrentStock: decimal.NewFromInt(10),
		MinStock:     decimal.NewFromInt(5),
		MaxStock:     &max,
	}
	assert.NoError(t, i.ValidateStockLevels())

	i.CurrentStock = decimal.NewFromInt(-1)
	assert.Error(t, i.ValidateStockLevels())

	i.CurrentStock = decimal.NewFromInt(60)
	assert.Error(t, i.ValidateStockLevels(), "current above max")

	i.CurrentStock = decimal.NewFromInt(10)
	i.MinStock = decimal.NewFromInt(70)
	assert.Error(t, i.ValidateStockLevels(), "min above max")
}

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &InsufficientStockError{
		IngredientName: "Tomato",
		Required:       decimal.RequireFromString("2.500"),
		Available:      decimal.RequireFromString("1.000"),
		Unit:           "kg",
	}
	msg := err.Error()
	assert.Contains(t, msg, "Tomato")
	assert.Contains(t, msg, "2.5")
	assert.Contains(t, msg, "1")
	assert.Contains(t, msg, "kg")
}
