package models

import (
	"time"

	"github.com/google/uuid"
)

// CouponUsage records one redemption of a coupon. A checkout that splits into
// several orders records exactly one usage, pinned to the first order created.
type CouponUsage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CouponID  uuid.UUID `gorm:"column:coupon_id;type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	UsedAt    time.Time `gorm:"column:used_at;autoCreateTime"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
