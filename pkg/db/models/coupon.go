package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/swiftkart/checkout-service/pkg/enums"
)

// Coupon is a discount rule identified by its code.
type Coupon struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code         string             `gorm:"column:code;not null;uniqueIndex"`
	Discount     decimal.Decimal    `gorm:"column:discount;type:numeric(12,2);not null"`
	DiscountType enums.DiscountType `gorm:"column:discount_type;type:text;not null"`
	Active       bool               `gorm:"column:active;not null;default:true"`
	ExpiresAt    *time.Time         `gorm:"column:expires_at"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// Usable reports whether the coupon may be applied at the given instant.
func (c Coupon) Usable(now time.Time) bool {
	if !c.Active {
		return false
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return false
	}
	return true
}
