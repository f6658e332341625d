package cart

import (
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/swiftkart/checkout-service/pkg/errors"
)

// ProductSnapshot is the catalog data copied onto a line at add-to-cart time.
// The catalog service owns the live product; this copy is what the customer
// agreed to pay.
type ProductSnapshot struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Price    decimal.Decimal  `json:"price"`
	GSTRate  *decimal.Decimal `json:"gst_rate,omitempty"`
	ImageURL string           `json:"image_url,omitempty"`
}

// Variant is the option set selected for a line.
type Variant struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	SKU   string `json:"sku,omitempty"`
}

// LineItem is one entry of a cart snapshot.
type LineItem struct {
	ID       string          `json:"id"`
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
	Variant  *Variant        `json:"variant,omitempty"`
}

// LineKey derives the line identifier from product and variant.
func LineKey(productID string, variant *Variant) string {
	if variant == nil || variant.Value == "" {
		return productID
	}
	return productID + ":" + variant.Value
}

// Snapshot is the ordered set of lines a customer intends to purchase.
// Order is preserved for display only.
type Snapshot []LineItem

// Normalize drops zero-quantity lines and rejects structurally invalid ones.
// A returned snapshot never contains a line with Quantity < 1.
func (s Snapshot) Normalize() (Snapshot, error) {
	out := make(Snapshot, 0, len(s))
	for _, line := range s {
		if line.Quantity == 0 {
			continue
		}
		if line.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line quantity cannot be negative")
		}
		if strings.TrimSpace(line.Product.ID) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line product id is required")
		}
		if line.Product.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line price cannot be negative")
		}
		if line.Product.GSTRate != nil && line.Product.GSTRate.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line gst rate cannot be negative")
		}
		if line.ID == "" {
			line.ID = LineKey(line.Product.ID, line.Variant)
		}
		out = append(out, line)
	}
	return out, nil
}

// IsEmpty reports whether the snapshot has no purchasable lines.
func (s Snapshot) IsEmpty() bool {
	return len(s) == 0
}

// TotalQuantity sums quantities across lines.
func (s Snapshot) TotalQuantity() int {
	total := 0
	for _, line := range s {
		total += line.Quantity
	}
	return total
}
