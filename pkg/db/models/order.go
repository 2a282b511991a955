package models

import (
	"time"

	"github.com/bazaarly/bazaarly-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is one vendor's slice of a checkout. VendorID is nil for orders
// fulfilled by the platform itself. Address fields are copied at checkout so
// later address edits never rewrite order history.
type Order struct {
	ID             uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	VendorID       *uuid.UUID        `gorm:"column:vendor_id;type:uuid;index"`
	Status         enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Subtotal       decimal.Decimal   `gorm:"column:subtotal;type:numeric(10,2);not null"`
	Discount       decimal.Decimal   `gorm:"column:discount;type:numeric(10,2);not null;default:0"`
	Shipping       decimal.Decimal   `gorm:"column:shipping;type:numeric(10,2);not null;default:0"`
	Tax            decimal.Decimal   `gorm:"column:tax;type:numeric(10,2);not null;default:0"`
	Total          decimal.Decimal   `gorm:"column:total;type:numeric(10,2);not null"`
	CouponID       *uuid.UUID        `gorm:"column:coupon_id;type:uuid"`
	ShipLine1      string            `gorm:"column:ship_line1;not null"`
	ShipLine2      *string           `gorm:"column:ship_line2"`
	ShipCity       string            `gorm:"column:ship_city;not null"`
	ShipRegion     *string           `gorm:"column:ship_region"`
	ShipPostalCode string            `gorm:"column:ship_postal_code;not null"`
	ShipCountry    string            `gorm:"column:ship_country;not null"`
	TrackingNumber *string           `gorm:"column:tracking_number"`
	AdminNote      *string           `gorm:"column:admin_note"`
	Items          []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippedAt      *time.Time        `gorm:"column:shipped_at"`
	DeliveredAt    *time.Time        `gorm:"column:delivered_at"`
	CancelledAt    *time.Time        `gorm:"column:cancelled_at"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
