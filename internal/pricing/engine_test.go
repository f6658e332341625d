package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/swiftkart/checkout-service/internal/cart"
	"github.com/swiftkart/checkout-service/internal/coupons"
	"github.com/swiftkart/checkout-service/pkg/config"
	"github.com/swiftkart/checkout-service/pkg/enums"
)

func defaultEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(config.PricingConfig{
		FreeShippingThreshold: "50000",
		FlatShippingFee:       "199",
		DefaultGSTRate:        "18",
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func snapshotOf(lines ...cart.LineItem) cart.Snapshot {
	return cart.Snapshot(lines)
}

func item(productID string, qty int, price string) cart.LineItem {
	return cart.LineItem{
		ID: productID,
		Product: cart.ProductSnapshot{
			ID:    productID,
			Price: decimal.RequireFromString(price),
		},
		Quantity: qty,
	}
}

func welcome10() *coupons.Coupon {
	return &coupons.Coupon{
		Code:     "WELCOME10",
		Discount: decimal.NewFromInt(10),
		Type:     enums.DiscountTypePercentage,
	}
}

func assertAmount(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s: expected %s, got %s", label, want, got)
	}
}

func TestPriceStandardCart(t *testing.T) {
	engine := defaultEngine(t)

	b := engine.Price(snapshotOf(item("p1", 2, "10000"), item("p2", 1, "10000")), nil)

	assertAmount(t, "subtotal", b.Subtotal, "30000")
	assertAmount(t, "tax", b.Tax, "5400")
	assertAmount(t, "shipping", b.Shipping, "199")
	assertAmount(t, "total", b.Total, "35599")
	if b.FreeShipping {
		t.Fatal("expected paid shipping below threshold")
	}
	if b.Currency != enums.CurrencyINR {
		t.Fatalf("unexpected currency %s", b.Currency)
	}
}

func TestPriceAppliesPercentageCoupon(t *testing.T) {
	engine := defaultEngine(t)

	b := engine.Price(snapshotOf(item("p1", 3, "10000")), welcome10())

	assertAmount(t, "coupon discount", b.CouponDiscount, "3000")
	assertAmount(t, "total", b.Total, "32599")
	if b.CouponCode != "WELCOME10" {
		t.Fatalf("expected coupon code on breakdown, got %q", b.CouponCode)
	}
}

func TestPriceFreeShippingAboveThreshold(t *testing.T) {
	engine := defaultEngine(t)

	atThreshold := engine.Price(snapshotOf(item("p1", 1, "50000")), nil)
	if atThreshold.FreeShipping {
		t.Fatal("a cart at exactly the threshold still pays shipping")
	}
	assertAmount(t, "shipping", atThreshold.Shipping, "199")

	above := engine.Price(snapshotOf(item("p1", 1, "60000")), nil)
	if !above.FreeShipping {
		t.Fatal("expected free shipping above the threshold")
	}
	assertAmount(t, "shipping", above.Shipping, "0")
	assertAmount(t, "total", above.Total, "70800")
}

func TestPriceHonorsPerLineGSTRate(t *testing.T) {
	engine := defaultEngine(t)

	fivePercent := decimal.NewFromInt(5)
	groceries := cart.LineItem{
		ID: "rice",
		Product: cart.ProductSnapshot{
			ID:      "rice",
			Price:   decimal.NewFromInt(1000),
			GSTRate: &fivePercent,
		},
		Quantity: 2,
	}

	b := engine.Price(snapshotOf(groceries, item("p1", 1, "1000")), nil)

	// 2000 at 5% + 1000 at default 18%
	assertAmount(t, "tax", b.Tax, "280")
}

func TestPriceClampsTotalAtZero(t *testing.T) {
	engine := defaultEngine(t)

	huge := &coupons.Coupon{
		Code:     "EVERYTHING",
		Discount: decimal.NewFromInt(1000000),
		Type:     enums.DiscountTypeFixed,
	}

	b := engine.Price(snapshotOf(item("p1", 1, "100")), huge)
	if b.Total.IsNegative() {
		t.Fatalf("total went negative: %s", b.Total)
	}
}

func TestPriceEmptySnapshotIsAllZero(t *testing.T) {
	engine := defaultEngine(t)

	b := engine.Price(snapshotOf(), nil)
	assertAmount(t, "subtotal", b.Subtotal, "0")
	assertAmount(t, "tax", b.Tax, "0")
	assertAmount(t, "shipping", b.Shipping, "0")
	assertAmount(t, "total", b.Total, "0")
}

func TestPriceIsDeterministic(t *testing.T) {
	engine := defaultEngine(t)
	snapshot := snapshotOf(item("p1", 2, "1234.56"), item("p2", 5, "78.90"))

	first := engine.Price(snapshot, welcome10())
	for i := 0; i < 10; i++ {
		again := engine.Price(snapshot, welcome10())
		if !again.Total.Equal(first.Total) || !again.Tax.Equal(first.Tax) {
			t.Fatalf("pricing drifted: %+v vs %+v", first, again)
		}
	}
}

func TestNewEngineRejectsBadKnobs(t *testing.T) {
	_, err := NewEngine(config.PricingConfig{
		FreeShippingThreshold: "not-a-number",
		FlatShippingFee:       "199",
		DefaultGSTRate:        "18",
	})
	if err == nil {
		t.Fatal("expected parse error")
	}

	_, err = NewEngine(config.PricingConfig{
		FreeShippingThreshold: "50000",
		FlatShippingFee:       "-1",
		DefaultGSTRate:        "18",
	})
	if err == nil {
		t.Fatal("expected negative fee to be rejected")
	}
}
