package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem snapshots a product line at checkout time. Name and price are
// copied from the product so catalog edits never change past orders.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID   *uuid.UUID      `gorm:"column:product_id;type:uuid"`
	ProductName string          `gorm:"column:product_name;not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
