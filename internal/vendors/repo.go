package vendors

import (
	"context"

	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/bazaarly/bazaarly-backend/pkg/enums"
	"github.com/bazaarly/bazaarly-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a vendors repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error) {
	if err := r.db.WithContext(ctx).Create(vendor).Error; err != nil {
		return nil, err
	}
	return vendor, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *repository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params, status *enums.VendorStatus) (*VendorList, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Model(&models.Vendor{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if cursor != nil {
		query = query.Where(
			"(created_at, id) < (?, ?)",
			cursor.CreatedAt, cursor.ID,
		)
	}

	var page []models.Vendor
	err = query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&page).Error
	if err != nil {
		return nil, err
	}

	list := &VendorList{Vendors: page}
	if len(page) > limit {
		list.Vendors = page[:limit]
		last := list.Vendors[limit-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return list, nil
}

func (r *repository) Update(ctx context.Context, vendorID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Vendor{}).
		Where("id = ?", vendorID).
		Updates(updates).Error
}
