package coupons

import (
	"context"
	"testing"
	"time"

	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/bazaarly/bazaarly-backend/pkg/enums"
	pkgerrors "github.com/bazaarly/bazaarly-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubRepo struct {
	usages     int64
	userUsages int64
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }
func (s *stubRepo) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubRepo) FindExpiredActive(ctx context.Context) ([]models.Coupon, error) {
	return nil, nil
}
func (s *stubRepo) Deactivate(ctx context.Context, couponID uuid.UUID) error { return nil }
func (s *stubRepo) CountUsages(ctx context.Context, couponID uuid.UUID) (int64, error) {
	return s.usages, nil
}
func (s *stubRepo) CountUsagesByUser(ctx context.Context, couponID, userID uuid.UUID) (int64, error) {
	return s.userUsages, nil
}
func (s *stubRepo) CreateUsage(ctx context.Context, usage *models.CouponUsage) error { return nil }

func testEngine(t *testing.T, repo Repository, at time.Time) *Engine {
	t.Helper()
	engine, err := NewEngine(repo)
	require.NoError(t, err)
	engine.now = func() time.Time { return at }
	return engine
}

func activeCoupon() *models.Coupon {
	return &models.Coupon{
		ID:       uuid.New(),
		Code:     "SAVE10",
		Type:     enums.CouponTypePercent,
		Value:    decimal.NewFromInt(10),
		IsActive: true,
	}
}

func assertValidationError(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
	assert.Equal(t, message, appErr.Message())
}

func TestValidateAcceptsEligibleCoupon(t *testing.T) {
	ctx := context.Background()
	engine := testEngine(t, &stubRepo{}, time.Now())

	err := engine.Validate(ctx, activeCoupon(), uuid.New(), decimal.NewFromInt(50))
	assert.NoError(t, err)
}

func TestValidateRejectsInactive(t *testing.T) {
	ctx := context.Background()
	engine := testEngine(t, &stubRepo{}, time.Now())

	coupon := activeCoupon()
	coupon.IsActive = false
	err := engine.Validate(ctx, coupon, uuid.New(), decimal.NewFromInt(50))
	assertValidationError(t, err, "coupon is not active")
}

func TestValidateRejectsOutsideWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	engine := testEngine(t, &stubRepo{}, now)

	future := now.Add(24 * time.Hour)
	coupon := activeCoupon()
	coupon.ValidFrom = &future
	err := engine.Validate(ctx, coupon, uuid.New(), decimal.NewFromInt(50))
	assertValidationError(t, err, "coupon is not yet valid")

	past := now.Add(-24 * time.Hour)
	coupon = activeCoupon()
	coupon.ValidUntil = &past
	err = engine.Validate(ctx, coupon, uuid.New(), decimal.NewFromInt(50))
	assertValidationError(t, err, "coupon has expired")
}

func TestValidateRejectsBelowMinimum(t *testing.T) {
	ctx := context.Background()
	engine := testEngine(t, &stubRepo{}, time.Now())

	coupon := activeCoupon()
	coupon.MinSubtotal = decimal.NewFromInt(100)
	err := engine.Validate(ctx, coupon, uuid.New(), decimal.NewFromInt(99))
	assertValidationError(t, err, "order subtotal is below the coupon minimum")
}

func TestValidateEnforcesUsageLimits(t *testing.T) {
	ctx := context.Background()
	limit := 5

	engine := testEngine(t, &stubRepo{usages: 5}, time.Now())
	coupon := activeCoupon()
	coupon.MaxUses = &limit
	err := engine.Validate(ctx, coupon, uuid.New(), decimal.NewFromInt(50))
	assertValidationError(t, err, "coupon usage limit reached")

	perUser := 1
	engine = testEngine(t, &stubRepo{userUsages: 1}, time.Now())
	coupon = activeCoupon()
	coupon.MaxUsesPerUser = &perUser
	err = engine.Validate(ctx, coupon, uuid.New(), decimal.NewFromInt(50))
	assertValidationError(t, err, "coupon usage limit reached for this account")
}

func TestDiscountPercent(t *testing.T) {
	coupon := activeCoupon()
	// 10% of 19.99 = 1.999 -> 2.00
	got := Discount(coupon, decimal.RequireFromString("19.99"))
	assert.True(t, got.Equal(decimal.RequireFromString("2.00")), "got %s", got)
}

func TestDiscountFixedCappedAtSubtotal(t *testing.T) {
	coupon := &models.Coupon{
		Type:     enums.CouponTypeFixed,
		Value:    decimal.NewFromInt(25),
		IsActive: true,
	}
	got := Discount(coupon, decimal.NewFromInt(10))
	assert.True(t, got.Equal(decimal.NewFromInt(10)), "got %s", got)
}

func TestDiscountZeroCases(t *testing.T) {
	assert.True(t, Discount(nil, decimal.NewFromInt(10)).IsZero())
	assert.True(t, Discount(activeCoupon(), decimal.Zero).IsZero())
}
