package coupons

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/swiftkart/checkout-service/pkg/db/models"
	pkgerrors "github.com/swiftkart/checkout-service/pkg/errors"
)

// Lookup resolves a coupon code to a usable coupon. Implementations return
// CodeNotFound for unknown, inactive, or expired codes.
type Lookup interface {
	Find(ctx context.Context, code string) (*Coupon, error)
}

// Repository resolves coupons from the database.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) (*Repository, error) {
	if db == nil {
		return nil, errors.New("coupons: db handle is required")
	}
	return &Repository{db: db}, nil
}

// WithTx returns a repository bound to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Find loads the coupon by its canonical code and checks usability.
func (r *Repository) Find(ctx context.Context, code string) (*Coupon, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}

	var row models.Coupon
	err := r.db.WithContext(ctx).
		Where("code = ?", normalized).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up coupon")
	}
	if !row.Usable(time.Now()) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
	}

	return &Coupon{
		Code:      row.Code,
		Discount:  row.Discount,
		Type:      row.DiscountType,
		ExpiresAt: row.ExpiresAt,
	}, nil
}

// StaticLookup serves a fixed coupon set. Used in development when no
// database is configured and as a fixture in tests.
type StaticLookup struct {
	byCode map[string]Coupon
}

func NewStaticLookup(list ...Coupon) *StaticLookup {
	byCode := make(map[string]Coupon, len(list))
	for _, c := range list {
		byCode[NormalizeCode(c.Code)] = c
	}
	return &StaticLookup{byCode: byCode}
}

func (s *StaticLookup) Find(_ context.Context, code string) (*Coupon, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	c, ok := s.byCode[normalized]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
	}
	if c.ExpiresAt != nil && time.Now().After(*c.ExpiresAt) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
	}
	out := c
	return &out, nil
}
