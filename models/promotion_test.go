package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestBuyXPayYPrice(t *testing.T) {
	promo := Promotion{
		PromotionType: PromoBuyXPayY,
		BuyQuantity:   intPtr(3),
		PayQuantity:   intPtr(2),
	}
	price := decimal.NewFromInt(10)

	// 7 units = 2 full sets (pay 4) + 1 remainder at full price
	assert.Equal(t, "50.00", promo.DiscountedPrice(price, 7).StringFixed(2))
	// Below a full set nothing is discounted
	assert.Equal(t, "20.00", promo.DiscountedPrice(price, 2).StringFixed(2))
	// Exactly one set
	assert.Equal(t, "20.00", promo.DiscountedPrice(price, 3).StringFixed(2))
}

func TestPercentageDiscountPrice(t *testing.T) {
	promo := Promotion{
		PromotionType:      PromoPercentageDiscount,
		DiscountPercentage: decPtr("25"),
	}
	assert.Equal(t, "45.00", promo.DiscountedPrice(decimal.NewFromInt(20), 3).StringFixed(2))
	assert.Equal(t, "15.00", promo.DiscountedPrice(decimal.NewFromInt(20), 1).StringFixed(2))
}

func TestFixedDiscountPriceFloorsAtZero(t *testing.T) {
	promo := Promotion{
		PromotionType:  PromoFixedDiscount,
		DiscountAmount: decPtr("10"),
	}
	// Discount exceeds the price: item is free, never negative
	assert.Equal(t, "0.00", promo.DiscountedPrice(decimal.NewFromInt(8), 2).StringFixed(2))
	assert.Equal(t, "10.00", promo.DiscountedPrice(decimal.NewFromInt(15), 2).StringFixed(2))
}

func TestMisconfiguredPromotionChargesFullPrice(t *testing.T) {
	promo := Promotion{PromotionType: PromoBuyXPayY} // missing quantities
	assert.Equal(t, "30.00", promo.DiscountedPrice(decimal.NewFromInt(10), 3).StringFixed(2))

	promo = Promotion{PromotionType: "SOMETHING_ELSE"}
	assert.Equal(t, "30.00", promo.DiscountedPrice(decimal.NewFromInt(10), 3).StringFixed(2))
}

func TestPromotionValidity(t *testing.T) {
	now := time.Now()
	promo := Promotion{
		PromotionType:      PromoPercentageDiscount,
		DiscountPercentage: decPtr("10"),
		Active:             true,
		StartDate:          now.AddDate(0, 0, -1),
		EndDate:            now.AddDate(0, 0, 1),
	}
	promo.SetValidDays([]time.Weekday{now.Weekday()})
	assert.True(t, promo.IsValidNow())

	// Wrong weekday
	promo.SetValidDays([]time.Weekday{(now.Weekday() + 1) % 7})
	assert.False(t, promo.IsValidNow())

	// Inactive
	promo.SetValidDays([]time.Weekday{now.Weekday()})
	promo.Active = false
	assert.False(t, promo.IsValidNow())

	// Outside the date window
	promo.Active = true
	promo.EndDate = now.AddDate(0, 0, -1)
	assert.False(t, promo.IsValidNow())
}

func TestPromotionDateWindowIsInclusive(t *testing.T) {
	now := time.Now()
	promo := Promotion{
		PromotionType:      PromoPercentageDiscount,
		DiscountPercentage: decPtr("10"),
		Active:             true,
		// Window is exactly today
		StartDate: now,
		EndDate:   now,
	}
	promo.SetValidDays([]time.Weekday{now.Weekday()})
	assert.True(t, promo.IsValidNow())
}

func TestValidateConfiguration(t *testing.T) {
	now := time.Now()

	valid := Promotion{
		PromotionType: PromoBuyXPayY,
		BuyQuantity:   intPtr(2),
		PayQuantity:   intPtr(1),
		StartDate:     now,
		EndDate:       now.AddDate(0, 1, 0),
		ValidDays:     "MONDAY",
	}
	require.NoError(t, valid.ValidateConfiguration())

	tests := []struct {
		name   string
		mutate func(*Promotion)
	}{
		{"buy not greater than pay", func(p *Promotion) { p.PayQuantity = intPtr(2) }},
		{"zero quantities", func(p *Promotion) { p.BuyQuantity = intPtr(0) }},
		{"end before start", func(p *Promotion) { p.EndDate = now.AddDate(0, 0, -2) }},
		{"no valid days", func(p *Promotion) { p.ValidDays = "  " }},
		{"unknown type", func(p *Promotion) { p.PromotionType = "MYSTERY" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			assert.Error(t, p.ValidateConfiguration())
		})
	}

	pct := valid
	pct.PromotionType = PromoPercentageDiscount
	pct.DiscountPercentage = decPtr("101")
	assert.Error(t, pct.ValidateConfiguration())
	pct.DiscountPercentage = decPtr("100")
	assert.NoError(t, pct.ValidateConfiguration())

	fixed := valid
	fixed.PromotionType = PromoFixedDiscount
	fixed.DiscountAmount = decPtr("0")
	assert.Error(t, fixed.ValidateConfiguration())
	fixed.DiscountAmount = decPtr("2.50")
	assert.NoError(t, fixed.ValidateConfiguration())
}

func TestDisplayLabel(t *testing.T) {
	assert.Equal(t, "2x1", (&Promotion{
		PromotionType: PromoBuyXPayY, BuyQuantity: intPtr(2), PayQuantity: intPtr(1),
	}).DisplayLabel())

	assert.Equal(t, "20% OFF", (&Promotion{
		PromotionType: PromoPercentageDiscount, DiscountPercentage: decPtr("20.00"),
	}).DisplayLabel())

	assert.Equal(t, "-$5", (&Promotion{
		PromotionType: PromoFixedDiscount, DiscountAmount: decPtr("5.00"),
	}).DisplayLabel())

	assert.Equal(t, "PROMO", (&Promotion{PromotionType: PromoBuyXPayY}).DisplayLabel())
}

func TestValidDaysRoundTrip(t *testing.T) {
	p := Promotion{}
	p.SetValidDays([]time.Weekday{time.Friday, time.Monday, time.Friday})
	set := p.ValidDaysSet()
	assert.True(t, set[time.Monday])
	assert.True(t, set[time.Friday])
	assert.Len(t, set, 2)
}
