package models

import (
	"time"

	"github.com/bazaarly/bazaarly-backend/pkg/enums"
	"github.com/google/uuid"
)

// Vendor represents a seller storefront on the platform. New vendors start in
// the pending state and only approved vendors participate in checkout scoping.
type Vendor struct {
	ID              uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID         uuid.UUID          `gorm:"column:owner_id;type:uuid;not null;uniqueIndex"`
	Name            string             `gorm:"column:name;not null"`
	Slug            string             `gorm:"column:slug;not null;uniqueIndex"`
	Description     *string            `gorm:"column:description"`
	BusinessEmail   *string            `gorm:"column:business_email"`
	Phone           *string            `gorm:"column:phone"`
	Address         *string            `gorm:"column:address"`
	Website         *string            `gorm:"column:website"`
	LogoURL         *string            `gorm:"column:logo_url"`
	About           *string            `gorm:"column:about"`
	Status          enums.VendorStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	RejectionReason *string            `gorm:"column:rejection_reason"`
	ReviewedAt      *time.Time         `gorm:"column:reviewed_at"`
	ReviewedBy      *uuid.UUID         `gorm:"column:reviewed_by;type:uuid"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
