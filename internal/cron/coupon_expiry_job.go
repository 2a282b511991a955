package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/bazaarly/bazaarly-backend/internal/coupons"
	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/bazaarly/bazaarly-backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type expiredCouponReader interface {
	FindExpiredActive(ctx context.Context) ([]models.Coupon, error)
}

type couponDeactivator interface {
	Deactivate(ctx context.Context, couponID uuid.UUID) error
}

type deactivatorFactory func(tx *gorm.DB) couponDeactivator

func defaultDeactivator(tx *gorm.DB) couponDeactivator {
	return coupons.NewRepository(tx)
}

// CouponExpiryJobParams configure the coupon expiry sweeper.
type CouponExpiryJobParams struct {
	Logger             *logger.Logger
	DB                 txRunner
	Reader             expiredCouponReader
	DeactivatorFactory deactivatorFactory
}

// NewCouponExpiryJob builds the cron job that deactivates coupons past
// their validity window.
func NewCouponExpiryJob(params CouponExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Reader == nil {
		return nil, fmt.Errorf("coupons reader required")
	}
	factory := params.DeactivatorFactory
	if factory == nil {
		factory = defaultDeactivator
	}
	return &couponExpiryJob{
		logg:    params.Logger,
		db:      params.DB,
		reader:  params.Reader,
		factory: factory,
		now:     time.Now,
	}, nil
}

type couponExpiryJob struct {
	logg    *logger.Logger
	db      txRunner
	reader  expiredCouponReader
	factory deactivatorFactory
	now     func() time.Time
}

func (j *couponExpiryJob) Name() string { return "coupon-expiry" }

func (j *couponExpiryJob) Run(ctx context.Context) error {
	expired, err := j.reader.FindExpiredActive(ctx)
	if err != nil {
		return fmt.Errorf("query expired coupons: %w", err)
	}

	var errs []error
	deactivated := 0
	for _, coupon := range expired {
		err := j.db.WithTx(ctx, func(tx *gorm.DB) error {
			return j.factory(tx).Deactivate(ctx, coupon.ID)
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("deactivate coupon %s: %w", coupon.Code, err))
			continue
		}
		deactivated++
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"found":       len(expired),
		"deactivated": deactivated,
	})
	j.logg.Info(logCtx, "coupon expiry sweep complete")
	return multierr.Combine(errs...)
}
