package orders

import (
	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/bazaarly/bazaarly-backend/pkg/enums"
	"github.com/google/uuid"
)

// ListFilters describe the repository-level predicates for listing orders.
type ListFilters struct {
	UserID   *uuid.UUID
	VendorID *uuid.UUID
	Status   *enums.OrderStatus
}

// StatusFilter is the caller-facing filter accepted by the list endpoint.
type StatusFilter struct {
	Status *enums.OrderStatus
}

// OrderList wraps a paginated order page plus the next cursor.
type OrderList struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// UpdateStatusInput captures an order patch. Every field is optional; a
// status value drives the lifecycle transition while tracking number and
// admin note may also be patched on their own.
type UpdateStatusInput struct {
	Status         *string `json:"status,omitempty"`
	TrackingNumber *string `json:"tracking_number,omitempty"`
	AdminNote      *string `json:"admin_note,omitempty"`
}

// ReviewInput captures a customer review of a delivered order.
type ReviewInput struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty"`
}
