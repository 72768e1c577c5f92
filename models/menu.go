package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category groups menu items (appetizers, mains, drinks, desserts...)
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MenuItem is a sellable dish or drink on the menu
type MenuItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"uniqueIndex;not null;size:200"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageURL    string          `json:"image_url,omitempty" gorm:"size:500"`

	Active bool `json:"active" gorm:"not null;default:true"`

	// Derived from ingredient stock; refreshed via UpdateAvailability
	Available bool `json:"available" gorm:"not null;default:true"`

	// True for chef-prepared dishes; false for ready-to-serve items such as
	// bottled drinks, which skip the kitchen and start out READY
	RequiresPreparation bool `json:"requires_preparation" gorm:"not null;default:true"`

	CategoryID uint      `json:"category_id" gorm:"not null"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`

	Recipe []RecipeLine `json:"recipe,omitempty" gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`

	Promotions []*Promotion `json:"promotions,omitempty" gorm:"many2many:promotion_items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the item's basic invariants at construction time
func (m *MenuItem) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("menu item name is required")
	}
	if m.Price.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("menu item price must be greater than 0")
	}
	return nil
}

// HasRecipe reports whether the item has at least one recipe line
func (m *MenuItem) HasRecipe() bool {
	return len(m.Recipe) > 0
}

// IngredientsCost sums the cost of all recipe lines for one portion
func (m *MenuItem) IngredientsCost() decimal.Decimal {
	cost := decimal.Zero
	for i := range m.Recipe {
		cost = cost.Add(m.Recipe[i].Cost())
	}
	return cost
}

// ProfitMarginPercentage returns ((price - cost) / price) * 100, 2 decimals
func (m *MenuItem) ProfitMarginPercentage() decimal.Decimal {
	if m.Price.IsZero() {
		return decimal.Zero
	}
	profit := m.Price.Sub(m.IngredientsCost())
	return profit.Mul(decimal.NewFromInt(100)).DivRound(m.Price, 2)
}

// HasEnoughStock reports whether every recipe line can cover the given number
// of portions. Items without a recipe are always considered in stock.
func (m *MenuItem) HasEnoughStock(quantity int) bool {
	if !m.HasRecipe() {
		return true
	}
	for i := range m.Recipe {
		if !m.Recipe[i].HasEnoughStock(quantity) {
			return false
		}
	}
	return true
}

// UpdateAvailability recomputes the available flag from current stock.
// Not automatic: callers must invoke it after any stock mutation.
func (m *MenuItem) UpdateAvailability() {
	m.Available = m.HasEnoughStock(1)
}

// ActivePromotions returns the currently valid promotions, highest priority first
func (m *MenuItem) ActivePromotions() []*Promotion {
	var active []*Promotion
	for _, p := range m.Promotions {
		if p.IsValidNow() {
			active = append(active, p)
		}
	}
	sort.SliceStable(active, func(a, b int) bool {
		return active[a].Priority > active[b].Priority
	})
	return active
}

// BestPromotion picks the active promotion with the highest savings for a
// single unit. Ties keep the earlier entry, which after the priority sort
// means the higher-priority promotion wins.
func (m *MenuItem) BestPromotion() *Promotion {
	active := m.ActivePromotions()
	if len(active) == 0 {
		return nil
	}
	best := active[0]
	bestSavings := m.Savings(best, 1)
	for _, p := range active[1:] {
		if s := m.Savings(p, 1); s.GreaterThan(bestSavings) {
			best = p
			bestSavings = s
		}
	}
	return best
}

// PromotionalPrice returns the discounted total for the given quantity
func (m *MenuItem) PromotionalPrice(p *Promotion, quantity int) decimal.Decimal {
	if p == nil {
		return m.Price.Mul(decimal.NewFromInt(int64(quantity)))
	}
	return p.DiscountedPrice(m.Price, quantity)
}

// Savings returns the amount saved by applying the promotion
func (m *MenuItem) Savings(p *Promotion, quantity int) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	original := m.Price.Mul(decimal.NewFromInt(int64(quantity)))
	return original.Sub(m.PromotionalPrice(p, quantity))
}

// HasActivePromotions reports whether any promotion currently applies
func (m *MenuItem) HasActivePromotions() bool {
	return len(m.ActivePromotions()) > 0
}

// RecipeLine links a menu item to one ingredient with the quantity needed per
// portion. The unit must match the ingredient's unit of measure.
type RecipeLine struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	MenuItemID   uint        `json:"menu_item_id" gorm:"not null;uniqueIndex:idx_recipe_line"`
	IngredientID uint        `json:"ingredient_id" gorm:"not null;uniqueIndex:idx_recipe_line"`
	Ingredient   *Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID"`

	Quantity decimal.Decimal `json:"quantity" gorm:"type:decimal(10,3);not null"`
	Unit     string          `json:"unit" gorm:"not null;size:20"`

	CreatedAt time.Time `json:"created_at"`
}

// Validate checks quantity and unit consistency at construction time
func (rl *RecipeLine) Validate() error {
	if rl.Quantity.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("recipe quantity must be greater than 0")
	}
	if strings.TrimSpace(rl.Unit) == "" {
		return fmt.Errorf("recipe unit is required")
	}
	if rl.Ingredient != nil && rl.Ingredient.UnitOfMeasure != "" &&
		!strings.EqualFold(rl.Unit, rl.Ingredient.UnitOfMeasure) {
		return fmt.Errorf("unit '%s' does not match ingredient unit '%s'",
			rl.Unit, rl.Ingredient.UnitOfMeasure)
	}
	return nil
}

// RequiredFor returns the ingredient quantity needed for n portions
func (rl *RecipeLine) RequiredFor(itemQuantity int) decimal.Decimal {
	return rl.Quantity.Mul(decimal.NewFromInt(int64(itemQuantity)))
}

// HasEnoughStock reports whether the ingredient can cover n portions
func (rl *RecipeLine) HasEnoughStock(itemQuantity int) bool {
	if rl.Ingredient == nil {
		return false
	}
	return rl.Ingredient.CurrentStock.GreaterThanOrEqual(rl.RequiredFor(itemQuantity))
}

// DeductFromStock subtracts the quantity needed for n portions from the
// ingredient and returns the new stock level. On insufficient stock it returns
// an InsufficientStockError and leaves the stock untouched. The caller owns
// the transaction boundary; this only mutates the in-memory ingredient.
func (rl *RecipeLine) DeductFromStock(itemQuantity int) (decimal.Decimal, error) {
	if rl.Ingredient == nil {
		return decimal.Zero, fmt.Errorf("cannot deduct stock: recipe line has no ingredient")
	}
	required := rl.RequiredFor(itemQuantity)
	current := rl.Ingredient.CurrentStock
	if current.LessThan(required) {
		return decimal.Zero, &InsufficientStockError{
			IngredientName: rl.Ingredient.Name,
			Required:       required,
			Available:      current,
			Unit:           rl.Unit,
		}
	}
	rl.Ingredient.CurrentStock = current.Sub(required)
	return rl.Ingredient.CurrentStock, nil
}

// ReturnToStock adds the quantity for n portions back to the ingredient,
// capped at the maximum stock when one is configured
func (rl *RecipeLine) ReturnToStock(itemQuantity int) decimal.Decimal {
	if rl.Ingredient == nil {
		return decimal.Zero
	}
	restored := rl.Ingredient.CurrentStock.Add(rl.RequiredFor(itemQuantity))
	if rl.Ingredient.MaxStock != nil && restored.GreaterThan(*rl.Ingredient.MaxStock) {
		restored = *rl.Ingredient.MaxStock
	}
	rl.Ingredient.CurrentStock = restored
	return restored
}

// Cost returns quantity * ingredient cost per unit for one portion
func (rl *RecipeLine) Cost() decimal.Decimal {
	if rl.Ingredient == nil || rl.Ingredient.CostPerUnit == nil {
		return decimal.Zero
	}
	return rl.Quantity.Mul(*rl.Ingredient.CostPerUnit)
}
