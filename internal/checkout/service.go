package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bazaarly/bazaarly-backend/internal/addresses"
	"github.com/bazaarly/bazaarly-backend/internal/cart"
	"github.com/bazaarly/bazaarly-backend/internal/coupons"
	"github.com/bazaarly/bazaarly-backend/internal/orders"
	"github.com/bazaarly/bazaarly-backend/internal/pricing"
	"github.com/bazaarly/bazaarly-backend/internal/products"
	"github.com/bazaarly/bazaarly-backend/pkg/authz"
	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/bazaarly/bazaarly-backend/pkg/enums"
	pkgerrors "github.com/bazaarly/bazaarly-backend/pkg/errors"
	"github.com/bazaarly/bazaarly-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ShippingWarning is attached to every order in the response when the
// destination has no shipping zone. It is never persisted.
const ShippingWarning = "Delivery is not supported to this country. You may need to arrange pickup."

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type priceCalculator interface {
	Shipping(country string, orderSubtotal decimal.Decimal) (decimal.Decimal, error)
	Tax(country string, taxableAmount decimal.Decimal) decimal.Decimal
}

// Service executes checkout orchestration.
type Service interface {
	Execute(ctx context.Context, actor authz.Actor, input Input) (*Result, error)
}

// Input captures the optional request data for a checkout.
type Input struct {
	CouponCode string `json:"coupon_code,omitempty"`
}

// Result is the outcome of one checkout: the orders created, in vendor-group
// order, plus an optional shipping warning that applies to all of them.
type Result struct {
	Orders          []models.Order
	ShippingWarning string
}

type service struct {
	tx           txRunner
	cartRepo     cart.Repository
	addressRepo  addresses.Repository
	ordersRepo   orders.Repository
	productsRepo products.Repository
	couponsRepo  coupons.Repository
	couponEngine *coupons.Engine
	pricing      priceCalculator
	metrics      *metrics.CheckoutMetrics
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	cartRepo cart.Repository,
	addressRepo addresses.Repository,
	ordersRepo orders.Repository,
	productsRepo products.Repository,
	couponsRepo coupons.Repository,
	couponEngine *coupons.Engine,
	calculator priceCalculator,
	checkoutMetrics *metrics.CheckoutMetrics,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if addressRepo == nil {
		return nil, fmt.Errorf("addresses repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if productsRepo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if couponsRepo == nil {
		return nil, fmt.Errorf("coupons repository required")
	}
	if couponEngine == nil {
		return nil, fmt.Errorf("coupon engine required")
	}
	if calculator == nil {
		return nil, fmt.Errorf("price calculator required")
	}
	return &service{
		tx:           tx,
		cartRepo:     cartRepo,
		addressRepo:  addressRepo,
		ordersRepo:   ordersRepo,
		productsRepo: productsRepo,
		couponsRepo:  couponsRepo,
		couponEngine: couponEngine,
		pricing:      calculator,
		metrics:      checkoutMetrics,
	}, nil
}

// Execute converts the actor's active cart into one order per vendor group
// inside a single transaction. Any failure rolls back everything: no partial
// orders, no decremented stock, no cleared cart.
func (s *service) Execute(ctx context.Context, actor authz.Actor, input Input) (*Result, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	var result *Result
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var txErr error
		result, txErr = s.executeInTx(ctx, tx, actor, input)
		return txErr
	})
	if err != nil {
		s.metrics.IncFailure(failureReason(err))
		return nil, err
	}

	s.metrics.AddOrdersCreated(len(result.Orders))
	return result, nil
}

func (s *service) executeInTx(ctx context.Context, tx *gorm.DB, actor authz.Actor, input Input) (*Result, error) {
	cartRepo := s.cartRepo.WithTx(tx)
	addressRepo := s.addressRepo.WithTx(tx)
	ordersRepo := s.ordersRepo.WithTx(tx)
	productsRepo := s.productsRepo.WithTx(tx)
	couponsRepo := s.couponsRepo.WithTx(tx)
	couponEngine := s.couponEngine.WithTx(tx)

	address, err := addressRepo.FindCheckoutAddress(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "no address found")
		}
		return nil, err
	}

	record, err := cartRepo.FindActiveByUser(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}
		return nil, err
	}
	if len(record.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	groups := GroupItemsByVendor(record.Items)
	total := decimal.Zero
	for _, group := range groups {
		total = total.Add(group.Subtotal)
	}

	var coupon *models.Coupon
	discount := decimal.Zero
	if code := strings.TrimSpace(input.CouponCode); code != "" {
		coupon, err = couponsRepo.FindByCode(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid coupon code")
			}
			return nil, err
		}
		if err := couponEngine.Validate(ctx, coupon, actor.UserID, total); err != nil {
			return nil, err
		}
		discount = coupons.Discount(coupon, total)
	}

	shares := AllocateDiscount(groups, discount, total)

	created := make([]models.Order, 0, len(groups))
	warning := ""
	for i, group := range groups {
		shipping, err := s.pricing.Shipping(address.Country, group.Subtotal)
		if err != nil {
			if !errors.Is(err, pricing.ErrUnsupportedDestination) {
				return nil, err
			}
			shipping = decimal.Zero
			warning = ShippingWarning
		}

		// Tax applies to the undiscounted group subtotal; the coupon share
		// only comes off the final total.
		tax := s.pricing.Tax(address.Country, group.Subtotal)

		order := &models.Order{
			UserID:         actor.UserID,
			VendorID:       group.Key,
			Status:         enums.OrderStatusPending,
			Subtotal:       group.Subtotal,
			Discount:       shares[i],
			Shipping:       shipping,
			Tax:            tax,
			Total:          group.Subtotal.Add(shipping).Add(tax).Sub(shares[i]),
			ShipLine1:      address.Line1,
			ShipLine2:      address.Line2,
			ShipCity:       address.City,
			ShipRegion:     address.Region,
			ShipPostalCode: address.PostalCode,
			ShipCountry:    address.Country,
		}
		if coupon != nil {
			couponID := coupon.ID
			order.CouponID = &couponID
		}

		createdOrder, err := ordersRepo.Create(ctx, order)
		if err != nil {
			return nil, err
		}

		items := make([]models.OrderItem, 0, len(group.Items))
		for _, item := range group.Items {
			productID := item.ProductID
			items = append(items, models.OrderItem{
				OrderID:     createdOrder.ID,
				ProductID:   &productID,
				ProductName: item.Product.Name,
				Quantity:    item.Quantity,
				Price:       item.Product.Price,
			})
			if err := productsRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return nil, err
			}
		}
		if err := ordersRepo.CreateItems(ctx, items); err != nil {
			return nil, err
		}
		createdOrder.Items = items
		created = append(created, *createdOrder)
	}

	// One usage per checkout, pinned to the first order created.
	if coupon != nil {
		usage := &models.CouponUsage{
			CouponID: coupon.ID,
			UserID:   actor.UserID,
			OrderID:  created[0].ID,
		}
		if err := couponsRepo.CreateUsage(ctx, usage); err != nil {
			return nil, err
		}
	}

	if err := cartRepo.DeleteItems(ctx, record.ID); err != nil {
		return nil, err
	}
	if err := cartRepo.MarkCheckedOut(ctx, record.ID); err != nil {
		return nil, err
	}

	return &Result{Orders: created, ShippingWarning: warning}, nil
}

func failureReason(err error) string {
	appErr := pkgerrors.As(err)
	if appErr == nil {
		return "internal"
	}
	switch appErr.Message() {
	case "cart is empty":
		return "cart_empty"
	case "no address found":
		return "no_address"
	case "invalid coupon code":
		return "invalid_coupon"
	default:
		if appErr.Code() == pkgerrors.CodeValidation {
			return "validation"
		}
		return strings.ToLower(string(appErr.Code()))
	}
}
