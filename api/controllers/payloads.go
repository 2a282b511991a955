package controllers

import (
	"time"

	"github.com/google/uuid"

	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
)

type userPayload struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Phone     *string    `json:"phone,omitempty"`
	Role      string     `json:"role"`
	VendorID  *uuid.UUID `json:"vendor_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func newUserPayload(user *models.User) userPayload {
	if user == nil {
		return userPayload{}
	}
	return userPayload{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		Role:      string(user.Role),
		VendorID:  user.VendorID,
		CreatedAt: user.CreatedAt,
	}
}

type vendorPayload struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	Description     *string    `json:"description,omitempty"`
	BusinessEmail   *string    `json:"business_email,omitempty"`
	Phone           *string    `json:"phone,omitempty"`
	Address         *string    `json:"address,omitempty"`
	Website         *string    `json:"website,omitempty"`
	LogoURL         *string    `json:"logo_url,omitempty"`
	About           *string    `json:"about,omitempty"`
	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func newVendorPayload(vendor *models.Vendor) vendorPayload {
	if vendor == nil {
		return vendorPayload{}
	}
	return vendorPayload{
		ID:              vendor.ID,
		Name:            vendor.Name,
		Slug:            vendor.Slug,
		Description:     vendor.Description,
		BusinessEmail:   vendor.BusinessEmail,
		Phone:           vendor.Phone,
		Address:         vendor.Address,
		Website:         vendor.Website,
		LogoURL:         vendor.LogoURL,
		About:           vendor.About,
		Status:          string(vendor.Status),
		RejectionReason: vendor.RejectionReason,
		ReviewedAt:      vendor.ReviewedAt,
		CreatedAt:       vendor.CreatedAt,
	}
}

type orderItemPayload struct {
	ID          uuid.UUID  `json:"id"`
	ProductID   *uuid.UUID `json:"product_id,omitempty"`
	ProductName string     `json:"product_name"`
	Quantity    int        `json:"quantity"`
	Price       string     `json:"price"`
}

type shippingAddressPayload struct {
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2,omitempty"`
	City       string  `json:"city"`
	Region     *string `json:"region,omitempty"`
	PostalCode string  `json:"postal_code"`
	Country    string  `json:"country"`
}

type orderPayload struct {
	ID              uuid.UUID              `json:"id"`
	UserID          uuid.UUID              `json:"user_id"`
	VendorID        *uuid.UUID             `json:"vendor_id,omitempty"`
	Status          string                 `json:"status"`
	Subtotal        string                 `json:"subtotal"`
	Discount        string                 `json:"discount"`
	Shipping        string                 `json:"shipping"`
	Tax             string                 `json:"tax"`
	Total           string                 `json:"total"`
	CouponID        *uuid.UUID             `json:"coupon_id,omitempty"`
	ShippingAddress shippingAddressPayload `json:"shipping_address"`
	TrackingNumber  *string                `json:"tracking_number,omitempty"`
	AdminNote       *string                `json:"admin_note,omitempty"`
	Items           []orderItemPayload     `json:"items"`
	ShippingWarning string                 `json:"shipping_warning,omitempty"`
	ShippedAt       *time.Time             `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time             `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time             `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

func newOrderPayload(order models.Order, shippingWarning string) orderPayload {
	items := make([]orderItemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemPayload{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price.StringFixed(2),
		})
	}
	return orderPayload{
		ID:       order.ID,
		UserID:   order.UserID,
		VendorID: order.VendorID,
		Status:   string(order.Status),
		Subtotal: order.Subtotal.StringFixed(2),
		Discount: order.Discount.StringFixed(2),
		Shipping: order.Shipping.StringFixed(2),
		Tax:      order.Tax.StringFixed(2),
		Total:    order.Total.StringFixed(2),
		CouponID: order.CouponID,
		ShippingAddress: shippingAddressPayload{
			Line1:      order.ShipLine1,
			Line2:      order.ShipLine2,
			City:       order.ShipCity,
			Region:     order.ShipRegion,
			PostalCode: order.ShipPostalCode,
			Country:    order.ShipCountry,
		},
		TrackingNumber:  order.TrackingNumber,
		AdminNote:       order.AdminNote,
		Items:           items,
		ShippingWarning: shippingWarning,
		ShippedAt:       order.ShippedAt,
		DeliveredAt:     order.DeliveredAt,
		CancelledAt:     order.CancelledAt,
		CreatedAt:       order.CreatedAt,
	}
}

type reviewPayload struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func newReviewPayload(review *models.Review) reviewPayload {
	if review == nil {
		return reviewPayload{}
	}
	return reviewPayload{
		ID:        review.ID,
		OrderID:   review.OrderID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}
