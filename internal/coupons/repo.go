package coupons

import (
	"context"
	"time"

	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a coupons repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *repository) FindExpiredActive(ctx context.Context) ([]models.Coupon, error) {
	var expired []models.Coupon
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND valid_until IS NOT NULL AND valid_until < ?", true, time.Now().UTC()).
		Find(&expired).Error
	if err != nil {
		return nil, err
	}
	return expired, nil
}

func (r *repository) Deactivate(ctx context.Context, couponID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("id = ?", couponID).
		Update("is_active", false).Error
}

func (r *repository) CountUsages(ctx context.Context, couponID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CouponUsage{}).
		Where("coupon_id = ?", couponID).
		Count(&count).Error
	return count, err
}

func (r *repository) CountUsagesByUser(ctx context.Context, couponID, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CouponUsage{}).
		Where("coupon_id = ? AND user_id = ?", couponID, userID).
		Count(&count).Error
	return count, err
}

func (r *repository) CreateUsage(ctx context.Context, usage *models.CouponUsage) error {
	return r.db.WithContext(ctx).Create(usage).Error
}
