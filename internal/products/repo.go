package products

import (
	"context"

	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the product catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a products repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DecrementStock atomically reduces stock, clamping at zero. The single UPDATE
// avoids the read-modify-write race between concurrent checkouts.
func (r *repository) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("CASE WHEN stock - ? < 0 THEN 0 ELSE stock - ? END", quantity, quantity)).
		Error
}
