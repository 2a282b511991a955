package cart

import (
	"context"

	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the cart reads and the clearing writes checkout performs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	DeleteItems(ctx context.Context, cartID uuid.UUID) error
	MarkCheckedOut(ctx context.Context, cartID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC")
		}).
		Preload("Items.Product").
		Where("user_id = ? AND checked_out = ?", userID, false).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *repository) DeleteItems(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error
}

func (r *repository) MarkCheckedOut(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("checked_out", true).Error
}
