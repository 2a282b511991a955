package models

import (
	"time"

	"github.com/google/uuid"
)

// Address is a customer shipping address. One per user may be the default.
type Address struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Line1      string    `gorm:"column:line1;not null"`
	Line2      *string   `gorm:"column:line2"`
	City       string    `gorm:"column:city;not null"`
	Region     *string   `gorm:"column:region"`
	PostalCode string    `gorm:"column:postal_code;not null"`
	Country    string    `gorm:"column:country;not null"`
	IsDefault  bool      `gorm:"column:is_default;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
