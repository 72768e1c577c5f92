package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detail(status OrderStatus, requiresPrep bool) OrderDetail {
	return OrderDetail{
		Quantity:   1,
		UnitPrice:  decimal.NewFromInt(10),
		ItemStatus: status,
		MenuItem:   &MenuItem{Name: "x", RequiresPreparation: requiresPrep},
	}
}

func TestCalculateStatusFromItems(t *testing.T) {
	chefID := uint(7)

	tests := []struct {
		name     string
		details  []OrderDetail
		chef     *uint
		expected OrderStatus
	}{
		{
			name:     "no items",
			details:  nil,
			expected: StatusPending,
		},
		{
			name: "all delivered",
			details: []OrderDetail{
				detail(StatusDelivered, true), detail(StatusDelivered, false),
			},
			expected: StatusDelivered,
		},
		{
			name: "all ready",
			details: []OrderDetail{
				detail(StatusReady, true), detail(StatusReady, false),
			},
			expected: StatusReady,
		},
		{
			name: "all pending",
			details: []OrderDetail{
				detail(StatusPending, true), detail(StatusPending, true),
			},
			expected: StatusPending,
		},
		{
			name: "chef owns order, mixed pending and in preparation",
			details: []OrderDetail{
				detail(StatusPending, true), detail(StatusInPreparation, true),
			},
			chef:     &chefID,
			expected: StatusInPreparation,
		},
		{
			name: "unclaimed dish keeps order pending even with ready drinks",
			details: []OrderDetail{
				detail(StatusPending, true), detail(StatusReady, false),
			},
			expected: StatusPending,
		},
		{
			name: "pending drink does not hold the order back",
			details: []OrderDetail{
				detail(StatusPending, false), detail(StatusInPreparation, true),
			},
			expected: StatusInPreparation,
		},
		{
			name: "some ready, rest delivered",
			details: []OrderDetail{
				detail(StatusReady, true), detail(StatusDelivered, true),
			},
			expected: StatusReady,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := Order{Details: tt.details, PreparedByID: tt.chef}
			assert.Equal(t, tt.expected, order.CalculateStatusFromItems())
		})
	}
}

func TestCalculateStatusFromItemsIsIdempotent(t *testing.T) {
	order := Order{Details: []OrderDetail{
		detail(StatusInPreparation, true),
		detail(StatusReady, false),
	}}
	first := order.CalculateStatusFromItems()
	order.UpdateStatusFromItems()
	assert.Equal(t, first, order.CalculateStatusFromItems())
}

func TestGenerateOrderNumber(t *testing.T) {
	n := GenerateOrderNumber(3)
	expected := fmt.Sprintf("ORD-%s-003", time.Now().Format("20060102"))
	assert.Equal(t, expected, n)
}

func TestRecalculateAmounts(t *testing.T) {
	order := Order{
		TaxRate: decimal.RequireFromString("8.00"),
		Details: []OrderDetail{
			{Quantity: 2, UnitPrice: decimal.RequireFromString("12.50"), Subtotal: decimal.RequireFromString("25.00")},
			{Quantity: 1, UnitPrice: decimal.RequireFromString("9.99"), Subtotal: decimal.RequireFromString("9.99")},
		},
	}
	order.RecalculateAmounts()

	assert.Equal(t, "34.99", order.Subtotal.StringFixed(2))
	assert.Equal(t, "2.80", order.TaxAmount.StringFixed(2))
	assert.Equal(t, "37.79", order.Total.StringFixed(2))
}

func TestCancellationPolicy(t *testing.T) {
	assert.True(t, StatusPending.CanBeCancelled())
	assert.True(t, StatusInPreparation.CanBeCancelled())
	assert.True(t, StatusReady.CanBeCancelled())
	assert.False(t, StatusOnTheWay.CanBeCancelled())
	assert.False(t, StatusDelivered.CanBeCancelled())
	assert.False(t, StatusPaid.CanBeCancelled())
	assert.False(t, StatusCancelled.CanBeCancelled())

	// Only PENDING cancellations return stock automatically
	assert.True(t, StatusPending.ShouldReturnStockOnCancel())
	assert.False(t, StatusInPreparation.ShouldReturnStockOnCancel())
	assert.False(t, StatusReady.ShouldReturnStockOnCancel())
}

func TestCanAcceptNewItems(t *testing.T) {
	dineIn := Order{OrderType: TypeDineIn}
	takeout := Order{OrderType: TypeTakeout}

	for _, s := range []OrderStatus{StatusPending, StatusInPreparation, StatusReady} {
		dineIn.Status = s
		takeout.Status = s
		assert.True(t, dineIn.CanAcceptNewItems(), "dine-in at %s", s)
		assert.True(t, takeout.CanAcceptNewItems(), "takeout at %s", s)
	}

	dineIn.Status = StatusDelivered
	takeout.Status = StatusDelivered
	assert.True(t, dineIn.CanAcceptNewItems(), "dine-in guests keep ordering until they pay")
	assert.False(t, takeout.CanAcceptNewItems(), "takeout closes once ready")

	dineIn.Status = StatusPaid
	assert.False(t, dineIn.CanAcceptNewItems())
}

func TestOrderDetailSubtotalAndSavings(t *testing.T) {
	promoPrice := decimal.RequireFromString("7.50")
	promoID := uint(1)
	d := OrderDetail{
		Quantity:           4,
		UnitPrice:          decimal.NewFromInt(10),
		PromotionPrice:     &promoPrice,
		AppliedPromotionID: &promoID,
	}
	d.CalculateSubtotal()

	assert.Equal(t, "30.00", d.Subtotal.StringFixed(2))
	assert.Equal(t, "10.00", d.Savings().StringFixed(2))
	assert.True(t, d.HasPromotionApplied())
}

func TestOrderDetailValidate(t *testing.T) {
	d := OrderDetail{Quantity: 0, UnitPrice: decimal.NewFromInt(5)}
	require.Error(t, d.Validate())

	d = OrderDetail{Quantity: 1, UnitPrice: decimal.Zero}
	require.Error(t, d.Validate())

	d = OrderDetail{Quantity: 1, UnitPrice: decimal.NewFromInt(5)}
	require.NoError(t, d.Validate())
}

func TestCancelRecordsTimestamp(t *testing.T) {
	order := Order{Status: StatusPending}
	order.Cancel()
	assert.Equal(t, StatusCancelled, order.Status)
	require.NotNil(t, order.CancelledAt)
	assert.WithinDuration(t, time.Now(), *order.CancelledAt, time.Second)
}
