package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is a user's shopping cart. A checked-out cart is retired; the next
// add-to-cart creates a fresh one.
type Cart struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	CheckedOut bool       `gorm:"column:checked_out;not null;default:false"`
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
