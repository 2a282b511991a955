package controllers

import (
	"net/http"
	"strings"

	"github.com/bazaarly/bazaarly-backend/api/responses"
	"github.com/bazaarly/bazaarly-backend/api/validators"
	internalorders "github.com/bazaarly/bazaarly-backend/internal/orders"
	"github.com/bazaarly/bazaarly-backend/pkg/enums"
	pkgerrors "github.com/bazaarly/bazaarly-backend/pkg/errors"
	"github.com/bazaarly/bazaarly-backend/pkg/logger"
	"github.com/bazaarly/bazaarly-backend/pkg/pagination"
)

type orderListResponse struct {
	Orders     []orderPayload `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// OrdersList returns the actor-scoped order page.
func OrdersList(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		actor, err := requestActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		var filter internalorders.StatusFilter
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown order status"))
				return
			}
			filter.Status = &status
		}

		list, err := svc.List(r.Context(), actor, params, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders := make([]orderPayload, 0, len(list.Orders))
		for _, order := range list.Orders {
			orders = append(orders, newOrderPayload(order, ""))
		}
		responses.WriteSuccess(w, orderListResponse{Orders: orders, NextCursor: list.NextCursor})
	}
}

// OrdersDetail returns one order, subject to the actor's scope.
func OrdersDetail(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		actor, err := requestActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := parseUUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), actor, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderPayload(*order, ""))
	}
}

// OrdersUpdateStatus moves an order through its lifecycle.
func OrdersUpdateStatus(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		actor, err := requestActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := parseUUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload internalorders.UpdateStatusInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateStatus(r.Context(), actor, orderID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderPayload(*order, ""))
	}
}

// OrdersCreateReview records a review for a delivered order.
func OrdersCreateReview(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		actor, err := requestActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := parseUUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload internalorders.ReviewInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		review, err := svc.CreateReview(r.Context(), actor, orderID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newReviewPayload(review))
	}
}
