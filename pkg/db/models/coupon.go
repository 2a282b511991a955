package models

import (
	"time"

	"github.com/bazaarly/bazaarly-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Coupon is a checkout-level discount code. Value is a percentage for percent
// coupons and a currency amount for fixed coupons.
type Coupon struct {
	ID             uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Code           string           `gorm:"column:code;not null;uniqueIndex"`
	Type           enums.CouponType `gorm:"column:type;type:text;not null"`
	Value          decimal.Decimal  `gorm:"column:value;type:numeric(10,2);not null"`
	MinSubtotal    decimal.Decimal  `gorm:"column:min_subtotal;type:numeric(10,2);not null;default:0"`
	MaxUses        *int             `gorm:"column:max_uses"`
	MaxUsesPerUser *int             `gorm:"column:max_uses_per_user"`
	ValidFrom      *time.Time       `gorm:"column:valid_from"`
	ValidUntil     *time.Time       `gorm:"column:valid_until"`
	IsActive       bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
