package controllers

import (
	"net/http"

	"github.com/bazaarly/bazaarly-backend/api/responses"
	"github.com/bazaarly/bazaarly-backend/api/validators"
	checkoutsvc "github.com/bazaarly/bazaarly-backend/internal/checkout"
	pkgerrors "github.com/bazaarly/bazaarly-backend/pkg/errors"
	"github.com/bazaarly/bazaarly-backend/pkg/logger"
)

type checkoutRequest struct {
	CouponCode *string `json:"coupon_code,omitempty"`
}

type multiOrderResponse struct {
	Orders []orderPayload `json:"orders"`
}

// Checkout converts the caller's active cart into one order per vendor group.
// A single-vendor cart yields the bare order payload; a split cart yields
// {"orders": [...]}.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		actor, err := requestActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := checkoutsvc.Input{}
		if payload.CouponCode != nil {
			input.CouponCode = *payload.CouponCode
		}

		result, err := svc.Execute(r.Context(), actor, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders := make([]orderPayload, 0, len(result.Orders))
		for _, order := range result.Orders {
			orders = append(orders, newOrderPayload(order, result.ShippingWarning))
		}

		if len(orders) == 1 {
			responses.WriteSuccessStatus(w, http.StatusCreated, orders[0])
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, multiOrderResponse{Orders: orders})
	}
}
