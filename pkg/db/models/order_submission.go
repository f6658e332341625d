package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/swiftkart/checkout-service/pkg/enums"
	"github.com/swiftkart/checkout-service/pkg/types"
)

// OrderSubmission is the audit record for one checkout attempt. A row is
// written before the external order API is called and resolved to
// succeeded/failed afterwards, keyed by the client idempotency key.
type OrderSubmission struct {
	ID             uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID              `gorm:"column:user_id;type:uuid;not null;index"`
	IdempotencyKey string                 `gorm:"column:idempotency_key;not null;uniqueIndex"`
	PayloadHash    string                 `gorm:"column:payload_hash;not null"`
	Status         enums.SubmissionStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Currency       enums.Currency         `gorm:"column:currency;type:text;not null;default:'INR'"`

	Subtotal       decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null"`
	Tax            decimal.Decimal `gorm:"column:tax;type:numeric(12,2);not null"`
	Shipping       decimal.Decimal `gorm:"column:shipping;type:numeric(12,2);not null"`
	CouponDiscount decimal.Decimal `gorm:"column:coupon_discount;type:numeric(12,2);not null"`
	Total          decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`

	CouponCode      *string             `gorm:"column:coupon_code"`
	PaymentMethod   enums.PaymentMethod `gorm:"column:payment_method;type:text;not null"`
	ShippingAddress types.Address       `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	BillingAddress  *types.Address      `gorm:"column:billing_address;type:jsonb;serializer:json"`
	CustomerNotes   *string             `gorm:"column:customer_notes"`

	OrderID      *string `gorm:"column:order_id"`
	OrderNumber  *string `gorm:"column:order_number"`
	ErrorMessage *string `gorm:"column:error_message"`

	SubmittedAt *time.Time `gorm:"column:submitted_at"`
	ResolvedAt  *time.Time `gorm:"column:resolved_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
