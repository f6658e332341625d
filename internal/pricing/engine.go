package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/swiftkart/checkout-service/internal/cart"
	"github.com/swiftkart/checkout-service/internal/coupons"
	"github.com/swiftkart/checkout-service/pkg/config"
	"github.com/swiftkart/checkout-service/pkg/enums"
)

// Breakdown is the fully-derived price of a snapshot. All amounts are rupees
// rounded to two places; Total is never negative.
type Breakdown struct {
	Currency       enums.Currency  `json:"currency"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	Shipping       decimal.Decimal `json:"shipping"`
	CouponCode     string          `json:"coupon_code,omitempty"`
	CouponDiscount decimal.Decimal `json:"coupon_discount"`
	Total          decimal.Decimal `json:"total"`
	FreeShipping   bool            `json:"free_shipping"`
}

// Engine derives price breakdowns from cart snapshots. It is pure: the same
// snapshot and coupon always produce the same breakdown.
type Engine struct {
	freeShippingThreshold decimal.Decimal
	flatShippingFee       decimal.Decimal
	defaultGSTRate        decimal.Decimal
}

// NewEngine parses the configured pricing knobs into decimals.
func NewEngine(cfg config.PricingConfig) (*Engine, error) {
	threshold, err := decimal.NewFromString(cfg.FreeShippingThreshold)
	if err != nil {
		return nil, fmt.Errorf("parsing free shipping threshold: %w", err)
	}
	fee, err := decimal.NewFromString(cfg.FlatShippingFee)
	if err != nil {
		return nil, fmt.Errorf("parsing flat shipping fee: %w", err)
	}
	gstRate, err := decimal.NewFromString(cfg.DefaultGSTRate)
	if err != nil {
		return nil, fmt.Errorf("parsing default gst rate: %w", err)
	}
	if threshold.IsNegative() || fee.IsNegative() || gstRate.IsNegative() {
		return nil, fmt.Errorf("pricing knobs cannot be negative")
	}
	return &Engine{
		freeShippingThreshold: threshold,
		flatShippingFee:       fee,
		defaultGSTRate:        gstRate,
	}, nil
}

var hundred = decimal.NewFromInt(100)

// Price computes the breakdown for a normalized snapshot. A nil coupon means
// no discount. Rounding happens once per component, after accumulation.
func (e *Engine) Price(snapshot cart.Snapshot, coupon *coupons.Coupon) Breakdown {
	subtotal := decimal.Zero
	tax := decimal.Zero

	for _, line := range snapshot {
		lineTotal := line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineTotal)

		rate := e.defaultGSTRate
		if line.Product.GSTRate != nil {
			rate = *line.Product.GSTRate
		}
		tax = tax.Add(lineTotal.Mul(rate).Div(hundred))
	}

	subtotal = subtotal.Round(2)
	tax = tax.Round(2)

	// Strictly greater: a 50000 cart still pays the flat fee.
	freeShipping := subtotal.GreaterThan(e.freeShippingThreshold)
	shipping := e.flatShippingFee
	if freeShipping || subtotal.IsZero() {
		shipping = decimal.Zero
	}

	discount := decimal.Zero
	couponCode := ""
	if coupon != nil {
		discount = coupon.DiscountFor(subtotal).Round(2)
		couponCode = coupon.Code
	}

	total := subtotal.Add(tax).Add(shipping).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Breakdown{
		Currency:       enums.CurrencyINR,
		Subtotal:       subtotal,
		Tax:            tax,
		Shipping:       shipping,
		CouponCode:     couponCode,
		CouponDiscount: discount,
		Total:          total.Round(2),
		FreeShipping:   freeShipping,
	}
}
