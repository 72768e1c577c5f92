package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PromotionType identifies which discount formula a promotion uses
type PromotionType string

const (
	PromoBuyXPayY           PromotionType = "BUY_X_PAY_Y"
	PromoPercentageDiscount PromotionType = "PERCENTAGE_DISCOUNT"
	PromoFixedDiscount      PromotionType = "FIXED_AMOUNT_DISCOUNT"
)

// Promotion is a discount rule applied to one or more menu items within a
// validity window and on selected days of the week
type Promotion struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null;size:200"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty" gorm:"size:500"`

	PromotionType PromotionType `json:"promotion_type" gorm:"not null;size:30"`

	// BUY_X_PAY_Y: buy X units, pay for Y (X > Y)
	BuyQuantity *int `json:"buy_quantity,omitempty"`
	PayQuantity *int `json:"pay_quantity,omitempty"`

	// PERCENTAGE_DISCOUNT: 0 < percentage <= 100
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty" gorm:"type:decimal(5,2)"`

	// FIXED_AMOUNT_DISCOUNT: amount > 0, per unit
	DiscountAmount *decimal.Decimal `json:"discount_amount,omitempty" gorm:"type:decimal(10,2)"`

	StartDate time.Time `json:"start_date" gorm:"not null"`
	EndDate   time.Time `json:"end_date" gorm:"not null"`

	// Comma-separated weekday names: MONDAY,FRIDAY,SATURDAY
	ValidDays string `json:"valid_days" gorm:"not null;size:100"`

	Active bool `json:"active" gorm:"not null;default:true"`

	// Higher number wins when several promotions apply to the same item
	Priority int `json:"priority" gorm:"not null;default:1"`

	Items []*MenuItem `json:"items,omitempty" gorm:"many2many:promotion_items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsValidNow reports whether the promotion applies today: active, today inside
// the inclusive date window and today's weekday selected
func (p *Promotion) IsValidNow() bool {
	return p.isValidOn(time.Now())
}

func (p *Promotion) isValidOn(t time.Time) bool {
	if !p.Active {
		return false
	}
	today := dateOnly(t)
	if today.Before(dateOnly(p.StartDate)) || today.After(dateOnly(p.EndDate)) {
		return false
	}
	return p.IsValidForDay(t.Weekday())
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsValidForDay reports whether the promotion applies on the given weekday
func (p *Promotion) IsValidForDay(day time.Weekday) bool {
	if p.ValidDays == "" {
		return false
	}
	return strings.Contains(p.ValidDays, weekdayName(day))
}

func weekdayName(day time.Weekday) string {
	return strings.ToUpper(day.String())
}

// ValidDaysSet parses the stored day list; unknown entries are skipped
func (p *Promotion) ValidDaysSet() map[time.Weekday]bool {
	names := map[string]time.Weekday{}
	for d := time.Sunday; d <= time.Saturday; d++ {
		names[weekdayName(d)] = d
	}
	days := map[time.Weekday]bool{}
	for _, part := range strings.Split(p.ValidDays, ",") {
		if d, ok := names[strings.TrimSpace(strings.ToUpper(part))]; ok {
			days[d] = true
		}
	}
	return days
}

// SetValidDays stores the day set as a sorted comma-separated string
func (p *Promotion) SetValidDays(days []time.Weekday) {
	names := make([]string, 0, len(days))
	seen := map[time.Weekday]bool{}
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			names = append(names, weekdayName(d))
		}
	}
	sort.Strings(names)
	p.ValidDays = strings.Join(names, ",")
}

// DiscountedPrice computes the total price for the given quantity with this
// promotion applied. Misconfigured promotions fall back to full price.
func (p *Promotion) DiscountedPrice(originalPrice decimal.Decimal, quantity int) decimal.Decimal {
	if originalPrice.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	switch p.PromotionType {
	case PromoBuyXPayY:
		return p.buyXPayYPrice(originalPrice, quantity)
	case PromoPercentageDiscount:
		return p.percentagePrice(originalPrice, quantity)
	case PromoFixedDiscount:
		return p.fixedDiscountPrice(originalPrice, quantity)
	default:
		return originalPrice.Mul(decimal.NewFromInt(int64(quantity)))
	}
}

// buyXPayYPrice charges complete sets of X units at the price of Y; any
// remainder is charged at full price
func (p *Promotion) buyXPayYPrice(price decimal.Decimal, quantity int) decimal.Decimal {
	if p.BuyQuantity == nil || p.PayQuantity == nil || *p.BuyQuantity <= 0 || *p.PayQuantity <= 0 {
		return price.Mul(decimal.NewFromInt(int64(quantity)))
	}
	sets := quantity / *p.BuyQuantity
	remainder := quantity % *p.BuyQuantity

	charged := sets**p.PayQuantity + remainder
	return price.Mul(decimal.NewFromInt(int64(charged)))
}

func (p *Promotion) percentagePrice(price decimal.Decimal, quantity int) decimal.Decimal {
	if p.DiscountPercentage == nil || p.DiscountPercentage.LessThanOrEqual(decimal.Zero) {
		return price.Mul(decimal.NewFromInt(int64(quantity)))
	}
	multiplier := decimal.NewFromInt(1).Sub(p.DiscountPercentage.Div(decimal.NewFromInt(100)))
	return price.Mul(multiplier).Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

func (p *Promotion) fixedDiscountPrice(price decimal.Decimal, quantity int) decimal.Decimal {
	if p.DiscountAmount == nil || p.DiscountAmount.LessThanOrEqual(decimal.Zero) {
		return price.Mul(decimal.NewFromInt(int64(quantity)))
	}
	perUnit := price.Sub(*p.DiscountAmount)
	if perUnit.IsNegative() {
		perUnit = decimal.Zero
	}
	return perUnit.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// ValidateConfiguration checks the type-specific discount parameters
func (p *Promotion) ValidateConfiguration() error {
	switch p.PromotionType {
	case PromoBuyXPayY:
		if p.BuyQuantity == nil || p.PayQuantity == nil ||
			*p.BuyQuantity <= 0 || *p.PayQuantity <= 0 {
			return fmt.Errorf("buy and pay quantities must be positive")
		}
		if *p.BuyQuantity <= *p.PayQuantity {
			return fmt.Errorf("buy quantity must be greater than pay quantity")
		}
	case PromoPercentageDiscount:
		if p.DiscountPercentage == nil ||
			p.DiscountPercentage.LessThanOrEqual(decimal.Zero) ||
			p.DiscountPercentage.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("discount percentage must be in (0, 100]")
		}
	case PromoFixedDiscount:
		if p.DiscountAmount == nil || p.DiscountAmount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("discount amount must be greater than 0")
		}
	default:
		return fmt.Errorf("unknown promotion type: %s", p.PromotionType)
	}
	if dateOnly(p.EndDate).Before(dateOnly(p.StartDate)) {
		return fmt.Errorf("end date cannot be before start date")
	}
	if strings.TrimSpace(p.ValidDays) == "" {
		return fmt.Errorf("at least one valid day is required")
	}
	return nil
}

// DisplayLabel returns the short badge shown next to an item, e.g. "2x1",
// "20% OFF", "-$5"
func (p *Promotion) DisplayLabel() string {
	switch p.PromotionType {
	case PromoBuyXPayY:
		if p.BuyQuantity != nil && p.PayQuantity != nil {
			return fmt.Sprintf("%dx%d", *p.BuyQuantity, *p.PayQuantity)
		}
	case PromoPercentageDiscount:
		if p.DiscountPercentage != nil {
			return fmt.Sprintf("%s%% OFF", trimZeros(*p.DiscountPercentage))
		}
	case PromoFixedDiscount:
		if p.DiscountAmount != nil {
			return fmt.Sprintf("-$%s", trimZeros(*p.DiscountAmount))
		}
	}
	return "PROMO"
}

func trimZeros(d decimal.Decimal) string {
	s := d.String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}
