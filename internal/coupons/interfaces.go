package coupons

import (
	"context"

	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for coupons and their usages.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	FindExpiredActive(ctx context.Context) ([]models.Coupon, error)
	Deactivate(ctx context.Context, couponID uuid.UUID) error
	CountUsages(ctx context.Context, couponID uuid.UUID) (int64, error)
	CountUsagesByUser(ctx context.Context, couponID, userID uuid.UUID) (int64, error)
	CreateUsage(ctx context.Context, usage *models.CouponUsage) error
}
