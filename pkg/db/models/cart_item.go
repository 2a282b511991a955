package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem links a cart to a product with a quantity.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CartID    uuid.UUID `gorm:"column:cart_id;type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Quantity  int       `gorm:"column:quantity;not null;default:1"`
	Product   Product   `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
