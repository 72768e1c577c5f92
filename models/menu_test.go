package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ingredient(name, stock string) *Ingredient {
	return &Ingredient{
		Name:          name,
		CurrentStock:  decimal.RequireFromString(stock),
		UnitOfMeasure: "kg",
	}
}

func activePromo(id uint, priority int, pct string) *Promotion {
	now := time.Now()
	p := &Promotion{
		ID:                 id,
		PromotionType:      PromoPercentageDiscount,
		DiscountPercentage: decPtr(pct),
		Active:             true,
		Priority:           priority,
		StartDate:          now.AddDate(0, 0, -1),
		EndDate:            now.AddDate(0, 0, 1),
	}
	p.SetValidDays([]time.Weekday{now.Weekday()})
	return p
}

func TestDeductFromStock(t *testing.T) {
	ing := ingredient("Flour", "1.000")
	line := RecipeLine{Quantity: decimal.RequireFromString("0.250"), Unit: "kg", Ingredient: ing}

	newStock, err := line.DeductFromStock(2)
	require.NoError(t, err)
	assert.Equal(t, "0.500", newStock.StringFixed(3))
	assert.Equal(t, "0.500", ing.CurrentStock.StringFixed(3))
}

func TestDeductFromStockInsufficientLeavesStockUntouched(t *testing.T) {
	ing := ingredient("Flour", "0.400")
	line := RecipeLine{Quantity: decimal.RequireFromString("0.250"), Unit: "kg", Ingredient: ing}

	_, err := line.DeductFromStock(2)
	require.Error(t, err)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Flour", stockErr.IngredientName)
	assert.Equal(t, "0.500", stockErr.Required.StringFixed(3))
	assert.Equal(t, "0.400", stockErr.Available.StringFixed(3))
	assert.Equal(t, "kg", stockErr.Unit)

	// Failed deduction must not touch the stock
	assert.Equal(t, "0.400", ing.CurrentStock.StringFixed(3))
}

func TestReturnToStockCappedAtMax(t *testing.T) {
	max := decimal.RequireFromString("1.000")
	ing := ingredient("Flour", "0.900")
	ing.MaxStock = &max
	line := RecipeLine{Quantity: decimal.RequireFromString("0.250"), Unit: "kg", Ingredient: ing}

	restored := line.ReturnToStock(2)
	assert.Equal(t, "1.000", restored.StringFixed(3))
	assert.Equal(t, "1.000", ing.CurrentStock.StringFixed(3))
}

func TestRecipeLineValidate(t *testing.T) {
	ing := ingredient("Flour", "1")

	line := RecipeLine{Quantity: decimal.RequireFromString("0.250"), Unit: "KG", Ingredient: ing}
	assert.NoError(t, line.Validate(), "unit match is case-insensitive")

	line.Unit = "liters"
	assert.Error(t, line.Validate())

	line.Unit = "kg"
	line.Quantity = decimal.Zero
	assert.Error(t, line.Validate())
}

func TestHasEnoughStockAndAvailability(t *testing.T) {
	item := MenuItem{
		Name:  "Pasta",
		Price: decimal.NewFromInt(12),
		Recipe: []RecipeLine{
			{Quantity: decimal.RequireFromString("0.200"), Unit: "kg", Ingredient: ingredient("Pasta", "0.500")},
			{Quantity: decimal.RequireFromString("0.100"), Unit: "kg", Ingredient: ingredient("Sauce", "0.150")},
		},
	}

	assert.True(t, item.HasEnoughStock(1))
	assert.False(t, item.HasEnoughStock(2), "sauce only covers one portion")

	item.UpdateAvailability()
	assert.True(t, item.Available)

	item.Recipe[1].Ingredient.CurrentStock = decimal.Zero
	item.UpdateAvailability()
	assert.False(t, item.Available)

	// Items without a recipe are always available
	drink := MenuItem{Name: "Soda", Price: decimal.NewFromInt(3)}
	assert.True(t, drink.HasEnoughStock(100))
}

func TestBestPromotionPicksHighestSavings(t *testing.T) {
	item := MenuItem{
		Name:  "Burger",
		Price: decimal.NewFromInt(10),
		Promotions: []*Promotion{
			activePromo(1, 1, "10"),
			activePromo(2, 1, "30"),
			activePromo(3, 1, "20"),
		},
	}
	best := item.BestPromotion()
	require.NotNil(t, best)
	assert.Equal(t, uint(2), best.ID)
	assert.Equal(t, "7.00", item.PromotionalPrice(best, 1).StringFixed(2))
	assert.Equal(t, "3.00", item.Savings(best, 1).StringFixed(2))
}

func TestBestPromotionTieBreaksOnPriority(t *testing.T) {
	item := MenuItem{
		Name:  "Burger",
		Price: decimal.NewFromInt(10),
		Promotions: []*Promotion{
			activePromo(1, 1, "20"),
			activePromo(2, 5, "20"), // same savings, higher priority
		},
	}
	best := item.BestPromotion()
	require.NotNil(t, best)
	assert.Equal(t, uint(2), best.ID)
}

func TestBestPromotionIgnoresInvalid(t *testing.T) {
	expired := activePromo(1, 9, "50")
	expired.EndDate = time.Now().AddDate(0, 0, -2)

	item := MenuItem{
		Name:       "Burger",
		Price:      decimal.NewFromInt(10),
		Promotions: []*Promotion{expired},
	}
	assert.Nil(t, item.BestPromotion())
	assert.False(t, item.HasActivePromotions())
}

func TestIngredientsCostAndMargin(t *testing.T) {
	cheese := ingredient("Cheese", "5")
	cost := decimal.RequireFromString("8.00")
	cheese.CostPerUnit = &cost

	item := MenuItem{
		Name:  "Quesadilla",
		Price: decimal.NewFromInt(10),
		Recipe: []RecipeLine{
			{Quantity: decimal.RequireFromString("0.250"), Unit: "kg", Ingredient: cheese},
		},
	}

	assert.Equal(t, "2.00", item.IngredientsCost().StringFixed(2))
	assert.Equal(t, "80.00", item.ProfitMarginPercentage().StringFixed(2))

	// Ingredients without a cost contribute zero
	item.Recipe = append(item.Recipe, RecipeLine{
		Quantity: decimal.NewFromInt(1), Unit: "kg", Ingredient: ingredient("Salt", "10"),
	})
	assert.Equal(t, "2.00", item.IngredientsCost().StringFixed(2))
}

func TestMenuItemValidate(t *testing.T) {
	item := MenuItem{Name: " ", Price: decimal.NewFromInt(5)}
	assert.Error(t, item.Validate())

	item = MenuItem{Name: "Taco", Price: decimal.Zero}
	assert.Error(t, item.Validate())

	item = MenuItem{Name: "Taco", Price: decimal.NewFromInt(5)}
	assert.NoError(t, item.Validate())
}
