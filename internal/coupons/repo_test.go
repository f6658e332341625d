package coupons

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/swiftkart/checkout-service/pkg/enums"
	pkgerrors "github.com/swiftkart/checkout-service/pkg/errors"
)

func setupCouponsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS coupons (
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  discount TEXT NOT NULL,
  discount_type TEXT NOT NULL,
  active INTEGER NOT NULL DEFAULT 1,
  expires_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec("DELETE FROM coupons").Error)
	return db
}

func seedCoupon(t *testing.T, db *gorm.DB, code string, discount string, discountType enums.DiscountType, active bool, expiresAt *time.Time) {
	t.Helper()
	require.NoError(t, db.Exec(
		"INSERT INTO coupons (id, code, discount, discount_type, active, expires_at, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		uuid.NewString(), code, discount, string(discountType), active, expiresAt, time.Now(), time.Now(),
	).Error)
}

func TestRepositoryFindActiveCoupon(t *testing.T) {
	db := setupCouponsTestDB(t)
	seedCoupon(t, db, "WELCOME10", "10", enums.DiscountTypePercentage, true, nil)

	repo, err := NewRepository(db)
	require.NoError(t, err)

	c, err := repo.Find(context.Background(), "welcome10")
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", c.Code)
	assert.Equal(t, enums.DiscountTypePercentage, c.Type)
	assert.True(t, c.Discount.Equal(decimal.NewFromInt(10)))
}

func TestRepositoryFindUnknownCode(t *testing.T) {
	db := setupCouponsTestDB(t)

	repo, err := NewRepository(db)
	require.NoError(t, err)

	_, err = repo.Find(context.Background(), "MISSING")
	require.Error(t, err)

	var typed *pkgerrors.Error
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestRepositoryFindInactiveCoupon(t *testing.T) {
	db := setupCouponsTestDB(t)
	seedCoupon(t, db, "PAUSED", "5", enums.DiscountTypeFixed, false, nil)

	repo, err := NewRepository(db)
	require.NoError(t, err)

	_, err = repo.Find(context.Background(), "PAUSED")
	require.Error(t, err)

	var typed *pkgerrors.Error
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestRepositoryFindExpiredCoupon(t *testing.T) {
	db := setupCouponsTestDB(t)
	expired := time.Now().Add(-24 * time.Hour)
	seedCoupon(t, db, "DIWALI24", "15", enums.DiscountTypePercentage, true, &expired)

	repo, err := NewRepository(db)
	require.NoError(t, err)

	_, err = repo.Find(context.Background(), "DIWALI24")
	require.Error(t, err)
}

func TestRepositoryFindBlankCode(t *testing.T) {
	db := setupCouponsTestDB(t)

	repo, err := NewRepository(db)
	require.NoError(t, err)

	_, err = repo.Find(context.Background(), "  ")
	require.Error(t, err)

	var typed *pkgerrors.Error
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
