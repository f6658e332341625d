package checkout

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/swiftkart/checkout-service/internal/cart"
	"github.com/swiftkart/checkout-service/internal/pricing"
	"github.com/swiftkart/checkout-service/pkg/enums"
	pkgerrors "github.com/swiftkart/checkout-service/pkg/errors"
	"github.com/swiftkart/checkout-service/pkg/types"
)

// CheckoutInput is everything needed to assemble an order request. The
// snapshot must already be normalized and the breakdown derived from it.
type CheckoutInput struct {
	UserID          uuid.UUID
	Snapshot        cart.Snapshot
	Breakdown       pricing.Breakdown
	PaymentMethod   enums.PaymentMethod
	ShippingAddress types.Address
	BillingAddress  *types.Address
	CustomerNotes   string
	TermsAccepted   bool
}

// OrderItem is one line of the wire payload sent to the order API.
type OrderItem struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	VariantName string          `json:"variant_name,omitempty"`
	VariantSKU  string          `json:"variant_sku,omitempty"`
}

// OrderRequest is the payload submitted to the external order API.
type OrderRequest struct {
	UserID          uuid.UUID           `json:"user_id"`
	Items           []OrderItem         `json:"items"`
	Currency        enums.Currency      `json:"currency"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	Tax             decimal.Decimal     `json:"tax"`
	Shipping        decimal.Decimal     `json:"shipping"`
	CouponCode      string              `json:"coupon_code,omitempty"`
	CouponDiscount  decimal.Decimal     `json:"coupon_discount"`
	Total           decimal.Decimal     `json:"total"`
	PaymentMethod   enums.PaymentMethod `json:"payment_method"`
	ShippingAddress types.Address       `json:"shipping_address"`
	BillingAddress  *types.Address      `json:"billing_address,omitempty"`
	CustomerNotes   string              `json:"customer_notes,omitempty"`
}

// Assemble validates every checkout precondition and builds the order
// request. All failures are collected so the customer sees the full list in
// one response rather than fixing them one at a time.
func Assemble(input CheckoutInput) (*OrderRequest, error) {
	var errs error

	if input.UserID == uuid.Nil {
		errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeUnauthorized, "user is not authenticated"))
	}
	if input.Snapshot.IsEmpty() {
		errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty"))
	}
	if !input.TermsAccepted {
		errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "terms must be accepted"))
	}
	if !input.PaymentMethod.IsValid() {
		errs = multierr.Append(errs, pkgerrors.New(pkgerrors.CodeValidation, "payment method is invalid"))
	}

	shipping := input.ShippingAddress.Normalized()
	if missing := shipping.MissingFields(); len(missing) > 0 {
		err := pkgerrors.New(pkgerrors.CodeValidation, "shipping address is incomplete").
			WithDetails(map[string]any{"missing_fields": missing})
		errs = multierr.Append(errs, err)
	}

	var billing *types.Address
	if input.BillingAddress != nil {
		normalized := input.BillingAddress.Normalized()
		if missing := normalized.MissingFields(); len(missing) > 0 {
			err := pkgerrors.New(pkgerrors.CodeValidation, "billing address is incomplete").
				WithDetails(map[string]any{"missing_fields": missing})
			errs = multierr.Append(errs, err)
		}
		billing = &normalized
	}

	if errs != nil {
		return nil, checkoutPreconditionError(errs)
	}

	items := make([]OrderItem, 0, len(input.Snapshot))
	for _, line := range input.Snapshot {
		item := OrderItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			UnitPrice: line.Product.Price,
			Quantity:  line.Quantity,
		}
		if line.Variant != nil {
			item.VariantName = line.Variant.Value
			item.VariantSKU = line.Variant.SKU
		}
		items = append(items, item)
	}

	return &OrderRequest{
		UserID:          input.UserID,
		Items:           items,
		Currency:        input.Breakdown.Currency,
		Subtotal:        input.Breakdown.Subtotal,
		Tax:             input.Breakdown.Tax,
		Shipping:        input.Breakdown.Shipping,
		CouponCode:      input.Breakdown.CouponCode,
		CouponDiscount:  input.Breakdown.CouponDiscount,
		Total:           input.Breakdown.Total,
		PaymentMethod:   input.PaymentMethod,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		CustomerNotes:   input.CustomerNotes,
	}, nil
}

// checkoutPreconditionError folds collected failures into one typed error.
// Unauthorized wins over validation so the HTTP layer returns 401 when the
// caller identity is the problem.
func checkoutPreconditionError(errs error) error {
	all := multierr.Errors(errs)
	messages := make([]string, 0, len(all))
	code := pkgerrors.CodeValidation
	for _, err := range all {
		if typed := pkgerrors.As(err); typed != nil {
			if typed.Code() == pkgerrors.CodeUnauthorized {
				code = pkgerrors.CodeUnauthorized
			}
			messages = append(messages, typed.Message())
			continue
		}
		messages = append(messages, err.Error())
	}
	return pkgerrors.Wrap(code, errs, "checkout preconditions failed").
		WithDetails(map[string]any{"problems": messages})
}

// PayloadHash fingerprints a payload for idempotency-reuse detection.
func PayloadHash(payload any) string {
	raw, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return base64.StdEncoding.EncodeToString(sum[:])
}
