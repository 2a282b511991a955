package vendors

import (
	"context"

	"github.com/bazaarly/bazaarly-backend/pkg/authz"
	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/bazaarly/bazaarly-backend/pkg/enums"
	"github.com/bazaarly/bazaarly-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for vendors.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Vendor, error)
	FindBySlug(ctx context.Context, slug string) (*models.Vendor, error)
	List(ctx context.Context, params pagination.Params, status *enums.VendorStatus) (*VendorList, error)
	Update(ctx context.Context, vendorID uuid.UUID, updates map[string]any) error
}

// Service exposes the vendor lifecycle operations.
type Service interface {
	Signup(ctx context.Context, input SignupInput) (*SignupResult, error)
	Me(ctx context.Context, actor authz.Actor) (*models.Vendor, error)
	UpdateMe(ctx context.Context, actor authz.Actor, input UpdateInput) (*models.Vendor, error)
	List(ctx context.Context, actor authz.Actor, params pagination.Params, status *enums.VendorStatus) (*VendorList, error)
	Approve(ctx context.Context, actor authz.Actor, vendorID uuid.UUID) (*models.Vendor, error)
	Reject(ctx context.Context, actor authz.Actor, vendorID uuid.UUID, reason string) (*models.Vendor, error)
	Suspend(ctx context.Context, actor authz.Actor, vendorID uuid.UUID) (*models.Vendor, error)
}
