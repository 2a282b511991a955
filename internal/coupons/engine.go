package coupons

import (
	"context"
	"time"

	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/bazaarly/bazaarly-backend/pkg/enums"
	"github.com/bazaarly/bazaarly-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Engine evaluates coupon eligibility and discount amounts. Eligibility reads
// usage counters through the repository; discount math is pure.
type Engine struct {
	repo Repository
	now  func() time.Time
}

// NewEngine constructs a coupon engine.
func NewEngine(repo Repository) (*Engine, error) {
	if repo == nil {
		return nil, errors.New(errors.CodeInternal, "coupons repository is required")
	}
	return &Engine{repo: repo, now: time.Now}, nil
}

// WithTx returns an engine whose repository reads run inside tx.
func (e *Engine) WithTx(tx *gorm.DB) *Engine {
	if tx == nil {
		return e
	}
	return &Engine{repo: e.repo.WithTx(tx), now: e.now}
}

// Validate checks whether the coupon can be redeemed by the user against the
// given cart subtotal. A nil return means the coupon is redeemable.
func (e *Engine) Validate(ctx context.Context, coupon *models.Coupon, userID uuid.UUID, subtotal decimal.Decimal) error {
	if coupon == nil {
		return errors.New(errors.CodeValidation, "invalid coupon code")
	}
	if !coupon.IsActive {
		return errors.New(errors.CodeValidation, "coupon is not active")
	}

	now := e.now().UTC()
	if coupon.ValidFrom != nil && now.Before(*coupon.ValidFrom) {
		return errors.New(errors.CodeValidation, "coupon is not yet valid")
	}
	if coupon.ValidUntil != nil && now.After(*coupon.ValidUntil) {
		return errors.New(errors.CodeValidation, "coupon has expired")
	}

	if coupon.MinSubtotal.IsPositive() && subtotal.LessThan(coupon.MinSubtotal) {
		return errors.New(errors.CodeValidation, "order subtotal is below the coupon minimum")
	}

	if coupon.MaxUses != nil {
		total, err := e.repo.CountUsages(ctx, coupon.ID)
		if err != nil {
			return errors.Wrap(errors.CodeInternal, err, "counting coupon usages")
		}
		if total >= int64(*coupon.MaxUses) {
			return errors.New(errors.CodeValidation, "coupon usage limit reached")
		}
	}

	if coupon.MaxUsesPerUser != nil {
		used, err := e.repo.CountUsagesByUser(ctx, coupon.ID, userID)
		if err != nil {
			return errors.Wrap(errors.CodeInternal, err, "counting coupon usages for user")
		}
		if used >= int64(*coupon.MaxUsesPerUser) {
			return errors.New(errors.CodeValidation, "coupon usage limit reached for this account")
		}
	}

	return nil
}

// Discount computes the coupon's discount on the subtotal, rounded to two
// decimal places and capped at the subtotal itself.
func Discount(coupon *models.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	if coupon == nil || !subtotal.IsPositive() {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch coupon.Type {
	case enums.CouponTypePercent:
		discount = subtotal.Mul(coupon.Value).Div(decimal.NewFromInt(100)).Round(2)
	case enums.CouponTypeFixed:
		discount = coupon.Value.Round(2)
	default:
		return decimal.Zero
	}

	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount
}
