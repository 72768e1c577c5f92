package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPending       OrderStatus = "PENDING"
	StatusInPreparation OrderStatus = "IN_PREPARATION"
	StatusReady         OrderStatus = "READY"
	StatusOnTheWay      OrderStatus = "ON_THE_WAY" // DELIVERY orders only
	StatusDelivered     OrderStatus = "DELIVERED"
	StatusCancelled     OrderStatus = "CANCELLED"
	StatusPaid          OrderStatus = "PAID"
)

// CanBeCancelled reports whether an order in this status may still be cancelled.
// Orders already on the way, delivered, paid or cancelled cannot.
func (s OrderStatus) CanBeCancelled() bool {
	return s != StatusOnTheWay && s != StatusDelivered && s != StatusPaid && s != StatusCancelled
}

// ShouldReturnStockOnCancel reports whether cancelling from this status returns
// ingredient stock automatically. Only PENDING does; cancellations from
// IN_PREPARATION or READY require an explicit stock-return action because the
// kitchen may already have consumed the ingredients.
func (s OrderStatus) ShouldReturnStockOnCancel() bool {
	return s == StatusPending
}

// OrderType distinguishes how the customer receives the order
type OrderType string

const (
	TypeDineIn   OrderType = "DINE_IN"
	TypeTakeout  OrderType = "TAKEOUT"
	TypeDelivery OrderType = "DELIVERY"
)

type Order struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	OrderNumber string      `json:"order_number" gorm:"uniqueIndex;not null;size:50"`
	OrderType   OrderType   `json:"order_type" gorm:"not null;size:20"`
	Status      OrderStatus `json:"status" gorm:"not null;size:20;default:'PENDING'"`

	// Customer contact; optional for DINE_IN, required for DELIVERY
	CustomerName    string `json:"customer_name,omitempty" gorm:"size:100"`
	CustomerPhone   string `json:"customer_phone,omitempty" gorm:"size:20"`
	DeliveryAddress string `json:"delivery_address,omitempty" gorm:"size:500"`
	DeliveryNotes   string `json:"delivery_notes,omitempty" gorm:"size:500"`

	TableID    *uint            `json:"table_id,omitempty"`
	Table      *RestaurantTable `json:"table,omitempty" gorm:"foreignKey:TableID"`
	CustomerID *uint            `json:"customer_id,omitempty"`
	Customer   *User            `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	WaiterID   *uint            `json:"waiter_id,omitempty"`
	Waiter     *User            `json:"waiter,omitempty" gorm:"foreignKey:WaiterID"`

	// Chef who accepted the order. Once set, newly added items belong to the
	// same chef and must not put the order back into the pending queue.
	PreparedByID *uint `json:"prepared_by_id,omitempty"`
	PreparedBy   *User `json:"prepared_by,omitempty" gorm:"foreignKey:PreparedByID"`

	PaidByID  *uint `json:"paid_by_id,omitempty"`
	PaidBy    *User `json:"paid_by,omitempty" gorm:"foreignKey:PaidByID"`
	CourierID *uint `json:"courier_id,omitempty"`
	Courier   *User `json:"courier,omitempty" gorm:"foreignKey:CourierID"`

	Details []OrderDetail `json:"details,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	Subtotal  decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2)"`
	TaxRate   decimal.Decimal `json:"tax_rate" gorm:"type:decimal(5,2)"`
	TaxAmount decimal.Decimal `json:"tax_amount" gorm:"type:decimal(10,2)"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(10,2)"`
	Tip       decimal.Decimal `json:"tip" gorm:"type:decimal(10,2)"`

	// Set when a PENDING cancellation auto-returned stock, or after the
	// cashier's manual stock-return for later cancellations.
	StockReturned bool `json:"stock_returned"`

	CreatedBy   string     `json:"created_by" gorm:"size:100"`
	UpdatedBy   string     `json:"updated_by,omitempty" gorm:"size:100"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GenerateOrderNumber builds an order number in the form ORD-YYYYMMDD-NNN
func GenerateOrderNumber(sequence int) string {
	return fmt.Sprintf("ORD-%s-%03d", time.Now().Format("20060102"), sequence)
}

// AddDetail appends a line item to the order
func (o *Order) AddDetail(d OrderDetail) {
	d.OrderID = o.ID
	o.Details = append(o.Details, d)
}

// CalculateSubtotal sums the line item subtotals
func (o *Order) CalculateSubtotal() {
	sum := decimal.Zero
	for _, d := range o.Details {
		sum = sum.Add(d.Subtotal)
	}
	o.Subtotal = sum
}

// CalculateTaxAmount applies the tax rate to the subtotal (2 decimals, half up)
func (o *Order) CalculateTaxAmount() {
	o.TaxAmount = o.Subtotal.Mul(o.TaxRate).Div(decimal.NewFromInt(100)).Round(2)
}

// CalculateTotal sets total = subtotal + tax
func (o *Order) CalculateTotal() {
	o.Total = o.Subtotal.Add(o.TaxAmount)
}

// RecalculateAmounts recomputes subtotal, tax and total from the line items
func (o *Order) RecalculateAmounts() {
	o.CalculateSubtotal()
	o.CalculateTaxAmount()
	o.CalculateTotal()
}

// TotalWithTip returns the grand total including tip
func (o *Order) TotalWithTip() decimal.Decimal {
	return o.Total.Add(o.Tip)
}

// CanBeCancelled reports whether the order may still be cancelled
func (o *Order) CanBeCancelled() bool {
	return o.Status.CanBeCancelled()
}

// ShouldReturnStockOnCancel reports whether cancelling now returns stock automatically
func (o *Order) ShouldReturnStockOnCancel() bool {
	return o.Status.ShouldReturnStockOnCancel()
}

// Cancel marks the order cancelled and records when
func (o *Order) Cancel() {
	now := time.Now()
	o.Status = StatusCancelled
	o.CancelledAt = &now
}

// CalculateStatusFromItems derives the overall order status from the statuses
// of its line items.
//
// Items that don't require preparation (bottled drinks etc.) are set READY on
// creation and must not move the order to IN_PREPARATION while dishes that do
// need a chef are still PENDING. And once a chef has accepted the order
// (PreparedBy set), items added afterwards stay PENDING for that same chef:
// the order keeps its IN_PREPARATION status instead of reappearing in the
// pending queue for another chef to take.
func (o *Order) CalculateStatusFromItems() OrderStatus {
	if len(o.Details) == 0 {
		return StatusPending
	}

	var pending, inPrep, ready, delivered int
	for _, d := range o.Details {
		switch d.ItemStatus {
		case StatusPending:
			pending++
		case StatusInPreparation:
			inPrep++
		case StatusReady:
			ready++
		case StatusDelivered:
			delivered++
		}
	}
	total := len(o.Details)

	if delivered == total {
		return StatusDelivered
	}
	if ready == total {
		return StatusReady
	}
	if pending == total {
		return StatusPending
	}

	// Chef already owns the order; new pending items don't evict them
	if o.PreparedByID != nil && inPrep > 0 {
		return StatusInPreparation
	}

	// A dish needing the chef is still unclaimed: the order waits in the
	// pending queue even if ready-to-serve items are already READY
	for _, d := range o.Details {
		if d.ItemStatus == StatusPending && d.MenuItem != nil && d.MenuItem.RequiresPreparation {
			return StatusPending
		}
	}

	if inPrep > 0 {
		return StatusInPreparation
	}
	if ready > 0 {
		return StatusReady
	}
	return StatusPending
}

// UpdateStatusFromItems assigns the derived status back onto the order
func (o *Order) UpdateStatusFromItems() {
	o.Status = o.CalculateStatusFromItems()
}

// PendingItems returns the line items still waiting for preparation
func (o *Order) PendingItems() []OrderDetail {
	var out []OrderDetail
	for _, d := range o.Details {
		if d.ItemStatus == StatusPending {
			out = append(out, d)
		}
	}
	return out
}

// HasPendingItems reports whether any line item is still PENDING
func (o *Order) HasPendingItems() bool {
	return len(o.PendingItems()) > 0
}

// NewItemsCount counts items added after the initial submission
func (o *Order) NewItemsCount() int {
	n := 0
	for _, d := range o.Details {
		if d.IsNewItem {
			n++
		}
	}
	return n
}

// CanAcceptNewItems reports whether more items may be added to the order.
// Dine-in guests are physically present and can keep ordering until they pay;
// takeout and delivery orders close once the food is READY, since afterwards
// the customer has picked it up or the courier is on route.
func (o *Order) CanAcceptNewItems() bool {
	switch o.OrderType {
	case TypeDineIn:
		return o.Status == StatusPending || o.Status == StatusInPreparation ||
			o.Status == StatusReady || o.Status == StatusDelivered
	case TypeTakeout, TypeDelivery:
		return o.Status == StatusPending || o.Status == StatusInPreparation ||
			o.Status == StatusReady
	}
	return false
}

type OrderDetail struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    uint      `json:"order_id" gorm:"not null"`
	MenuItemID uint      `json:"menu_item_id" gorm:"not null"`
	MenuItem   *MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`

	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Subtotal  decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`

	// Per-unit price after promotion; nil when no promotion applied
	PromotionPrice     *decimal.Decimal `json:"promotion_price,omitempty" gorm:"type:decimal(10,2)"`
	AppliedPromotionID *uint            `json:"applied_promotion_id,omitempty"`

	Comments string `json:"comments,omitempty" gorm:"size:500"`

	ItemStatus OrderStatus `json:"item_status" gorm:"not null;size:20;default:'PENDING'"`

	IsNewItem  bool       `json:"is_new_item" gorm:"not null;default:false"`
	AddedAt    *time.Time `json:"added_at,omitempty"`
	PreparedBy string     `json:"prepared_by,omitempty" gorm:"size:100"`

	CreatedAt time.Time `json:"created_at"`
}

// CalculateSubtotal computes the line subtotal from quantity and price,
// preferring the promotional per-unit price when one was applied
func (d *OrderDetail) CalculateSubtotal() {
	price := d.UnitPrice
	if d.PromotionPrice != nil {
		price = *d.PromotionPrice
	}
	d.Subtotal = price.Mul(decimal.NewFromInt(int64(d.Quantity)))
}

// Savings returns the amount saved through the applied promotion
func (d *OrderDetail) Savings() decimal.Decimal {
	if d.PromotionPrice == nil {
		return decimal.Zero
	}
	perUnit := d.UnitPrice.Sub(*d.PromotionPrice)
	return perUnit.Mul(decimal.NewFromInt(int64(d.Quantity)))
}

// HasPromotionApplied reports whether a promotion price was recorded
func (d *OrderDetail) HasPromotionApplied() bool {
	return d.PromotionPrice != nil && d.AppliedPromotionID != nil
}

// MarkAsNew flags the item as added after the initial order submission
func (d *OrderDetail) MarkAsNew() {
	now := time.Now()
	d.IsNewItem = true
	d.AddedAt = &now
}

func (d *OrderDetail) IsPending() bool       { return d.ItemStatus == StatusPending }
func (d *OrderDetail) IsInPreparation() bool { return d.ItemStatus == StatusInPreparation }
func (d *OrderDetail) IsReady() bool         { return d.ItemStatus == StatusReady }
func (d *OrderDetail) IsDelivered() bool     { return d.ItemStatus == StatusDelivered }

// Validate checks the line item's basic invariants at construction time
func (d *OrderDetail) Validate() error {
	if d.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", d.Quantity)
	}
	if d.UnitPrice.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("unit price must be greater than 0")
	}
	return nil
}
