package addresses

import (
	"context"
	"errors"

	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the address reads checkout depends on.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindCheckoutAddress(ctx context.Context, userID uuid.UUID) (*models.Address, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an addresses repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// FindCheckoutAddress returns the user's default address, falling back to the
// earliest created one when no default is set.
func (r *repository) FindCheckoutAddress(ctx context.Context, userID uuid.UUID) (*models.Address, error) {
	var address models.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_default = ?", userID, true).
		First(&address).Error
	if err == nil {
		return &address, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}
