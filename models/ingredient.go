package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Stock status labels shown on the inventory dashboard
const (
	StockStatusOut = "AGOTADO"
	StockStatusLow = "STOCK BAJO"
	StockStatusOK  = "OK"
)

// IngredientCategory groups ingredients for inventory reports and suppliers
type IngredientCategory struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	Description string    `json:"description,omitempty"`
	SupplierID  *uint     `json:"supplier_id,omitempty"`
	Supplier    *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	Active      bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Supplier provides ingredients; soft-deleted via the active flag
type Supplier struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:200"`
	Contact   string    `json:"contact,omitempty" gorm:"size:100"`
	Phone     string    `json:"phone,omitempty" gorm:"size:20"`
	Email     string    `json:"email,omitempty" gorm:"size:100"`
	Address   string    `json:"address,omitempty" gorm:"size:500"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ingredient is an inventory item tracked by stock level
type Ingredient struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;not null;size:100"`
	Description string `json:"description,omitempty"`

	// Stock quantities use 3 decimal places (e.g. 0.250 kg)
	CurrentStock decimal.Decimal  `json:"current_stock" gorm:"type:decimal(10,3)"`
	MinStock     decimal.Decimal  `json:"min_stock" gorm:"type:decimal(10,3)"`
	MaxStock     *decimal.Decimal `json:"max_stock,omitempty" gorm:"type:decimal(10,3)"`

	UnitOfMeasure string `json:"unit_of_measure" gorm:"size:20"`

	CostPerUnit *decimal.Decimal `json:"cost_per_unit,omitempty" gorm:"type:decimal(10,2)"`
	Currency    string           `json:"currency" gorm:"size:3;default:'USD'"`

	StorageLocation string `json:"storage_location,omitempty" gorm:"size:100"`
	ShelfLifeDays   *int   `json:"shelf_life_days,omitempty"`

	Active bool `json:"active" gorm:"not null;default:true"`

	CategoryID uint                `json:"category_id" gorm:"not null"`
	Category   *IngredientCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidateStockLevels enforces the stock invariants. Called explicitly at the
// write boundary instead of relying on persistence hooks.
func (i *Ingredient) ValidateStockLevels() error {
	if i.CurrentStock.IsNegative() {
		return fmt.Errorf("current stock cannot be negative")
	}
	if i.MinStock.IsNegative() {
		return fmt.Errorf("minimum stock cannot be negative")
	}
	if i.MaxStock != nil {
		if i.CurrentStock.GreaterThan(*i.MaxStock) {
			return fmt.Errorf("current stock cannot exceed maximum stock")
		}
		if i.MinStock.GreaterThan(*i.MaxStock) {
			return fmt.Errorf("minimum stock cannot exceed maximum stock")
		}
	}
	return nil
}

// IsOutOfStock reports whether the ingredient is completely depleted
func (i *Ingredient) IsOutOfStock() bool {
	return i.CurrentStock.IsZero()
}

// IsLowStock reports whether stock is at or below the minimum but not zero
func (i *Ingredient) IsLowStock() bool {
	return i.CurrentStock.GreaterThan(decimal.Zero) &&
		i.MinStock.GreaterThan(decimal.Zero) &&
		i.CurrentStock.LessThanOrEqual(i.MinStock)
}

// IsHealthyStock reports whether stock is above the minimum
func (i *Ingredient) IsHealthyStock() bool {
	return i.CurrentStock.GreaterThan(i.MinStock)
}

// StockStatus classifies the stock level:
// AGOTADO when zero, STOCK BAJO when 0 < stock <= min, OK otherwise.
func (i *Ingredient) StockStatus() string {
	if i.IsOutOfStock() {
		return StockStatusOut
	}
	if i.IsLowStock() {
		return StockStatusLow
	}
	return StockStatusOK
}

// StockPercentage returns how full the stock is relative to the maximum,
// rounded half up and clamped to [0, 100]. Zero when no maximum is set.
func (i *Ingredient) StockPercentage() int {
	if i.MaxStock == nil || i.MaxStock.IsZero() {
		return 0
	}
	pct := i.CurrentStock.Mul(decimal.NewFromInt(100)).DivRound(*i.MaxStock, 0)
	p := int(pct.IntPart())
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
