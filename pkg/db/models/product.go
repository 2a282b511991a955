package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a purchasable listing. VendorID is nil for items sold
// directly by the platform.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID    *uuid.UUID      `gorm:"column:vendor_id;type:uuid;index"`
	Name        string          `gorm:"column:name;not null"`
	Description *string         `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Stock       int             `gorm:"column:stock;not null;default:0"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
