package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bazaarly/bazaarly-backend/pkg/authz"
	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/bazaarly/bazaarly-backend/pkg/enums"
	pkgerrors "github.com/bazaarly/bazaarly-backend/pkg/errors"
	"github.com/bazaarly/bazaarly-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds the orders service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// List returns the orders visible to the actor, newest first.
func (s *service) List(ctx context.Context, actor authz.Actor, params pagination.Params, filter StatusFilter) (*OrderList, error) {
	filters := ListFilters{Status: filter.Status}

	switch actor.OrdersScope() {
	case authz.ScopeAll:
	case authz.ScopeVendor:
		filters.VendorID = actor.VendorID
	default:
		userID := actor.UserID
		filters.UserID = &userID
	}

	return s.repo.List(ctx, params, filters)
}

// Get loads one order. Orders outside the actor's scope read as not found so
// probing ids reveals nothing about other vendors or customers.
func (s *service) Get(ctx context.Context, actor authz.Actor, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, err
	}

	if !s.visibleTo(actor, order) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

// UpdateStatus patches an order: a lifecycle transition when status is
// present, plus optional tracking number and admin note. Customers are
// rejected outright; vendor admins only ever see their own vendor's orders.
func (s *service) UpdateStatus(ctx context.Context, actor authz.Actor, orderID uuid.UUID, input UpdateStatusInput) (*models.Order, error) {
	if !authz.CanUpdateOrderStatus(actor) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to update order status")
	}

	var next *enums.OrderStatus
	if input.Status != nil {
		parsed, err := enums.ParseOrderStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
		}
		next = &parsed
	}
	if next == nil && input.TrackingNumber == nil && input.AdminNote == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no order updates provided")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, err
	}

	// Cross-vendor access reads as not found, never as forbidden.
	if actor.OrdersScope() == authz.ScopeVendor && !s.belongsToVendor(actor, order) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	updates := map[string]any{}
	if next != nil {
		if !order.Status.CanTransitionTo(*next) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "invalid status transition").
				WithDetails(map[string]any{"from": order.Status.String(), "to": next.String()})
		}
		updates["status"] = *next
		switch *next {
		case enums.OrderStatusShipped:
			updates["shipped_at"] = s.now().UTC()
		case enums.OrderStatusDelivered:
			updates["delivered_at"] = s.now().UTC()
		case enums.OrderStatusCancelled:
			updates["cancelled_at"] = s.now().UTC()
		}
	}
	if input.TrackingNumber != nil {
		updates["tracking_number"] = *input.TrackingNumber
	}
	if input.AdminNote != nil {
		updates["admin_note"] = *input.AdminNote
	}

	if err := s.repo.Update(ctx, order.ID, updates); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, order.ID)
}

// CreateReview records customer feedback on a delivered order.
func (s *service) CreateReview(ctx context.Context, actor authz.Actor, orderID uuid.UUID, input ReviewInput) (*models.Review, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, err
	}
	if order.UserID != actor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if order.Status != enums.OrderStatusDelivered {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order must be delivered before it can be reviewed")
	}

	if _, err := s.repo.FindReviewByOrder(ctx, order.ID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order already reviewed")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		OrderID: order.ID,
		UserID:  actor.UserID,
		Rating:  input.Rating,
		Comment: input.Comment,
	}
	return s.repo.CreateReview(ctx, review)
}

func (s *service) visibleTo(actor authz.Actor, order *models.Order) bool {
	switch actor.OrdersScope() {
	case authz.ScopeAll:
		return true
	case authz.ScopeVendor:
		return s.belongsToVendor(actor, order)
	default:
		return order.UserID == actor.UserID
	}
}

func (s *service) belongsToVendor(actor authz.Actor, order *models.Order) bool {
	return order.VendorID != nil && actor.OwnsVendor(*order.VendorID)
}
