package orders

import (
	"context"

	"github.com/bazaarly/bazaarly-backend/pkg/authz"
	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/bazaarly/bazaarly-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for orders and reviews.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateItems(ctx context.Context, items []models.OrderItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error)
	Update(ctx context.Context, orderID uuid.UUID, updates map[string]any) error
	CreateReview(ctx context.Context, review *models.Review) (*models.Review, error)
	FindReviewByOrder(ctx context.Context, orderID uuid.UUID) (*models.Review, error)
}

// Service exposes role-scoped order reads and lifecycle mutations.
type Service interface {
	List(ctx context.Context, actor authz.Actor, params pagination.Params, filters StatusFilter) (*OrderList, error)
	Get(ctx context.Context, actor authz.Actor, orderID uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, actor authz.Actor, orderID uuid.UUID, input UpdateStatusInput) (*models.Order, error)
	CreateReview(ctx context.Context, actor authz.Actor, orderID uuid.UUID, input ReviewInput) (*models.Review, error)
}
