package coupons

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/swiftkart/checkout-service/pkg/enums"
)

// Coupon is the pricing-facing view of a discount code.
type Coupon struct {
	Code      string             `json:"code"`
	Discount  decimal.Decimal    `json:"discount"`
	Type      enums.DiscountType `json:"type"`
	ExpiresAt *time.Time         `json:"expires_at,omitempty"`
}

// NormalizeCode canonicalizes user-entered coupon codes.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// DiscountFor computes the rupee discount against a subtotal. Percentage
// coupons apply their rate to the subtotal; fixed coupons never exceed it.
func (c Coupon) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.IsNegative() || subtotal.IsZero() {
		return decimal.Zero
	}
	switch c.Type {
	case enums.DiscountTypePercentage:
		return subtotal.Mul(c.Discount).Div(decimal.NewFromInt(100))
	case enums.DiscountTypeFixed:
		if c.Discount.GreaterThan(subtotal) {
			return subtotal
		}
		return c.Discount
	default:
		return decimal.Zero
	}
}
