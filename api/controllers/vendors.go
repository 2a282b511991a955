package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/bazaarly/bazaarly-backend/api/responses"
	"github.com/bazaarly/bazaarly-backend/api/validators"
	vendorsvc "github.com/bazaarly/bazaarly-backend/internal/vendors"
	"github.com/bazaarly/bazaarly-backend/pkg/authz"
	"github.com/bazaarly/bazaarly-backend/pkg/enums"
	pkgerrors "github.com/bazaarly/bazaarly-backend/pkg/errors"
	"github.com/bazaarly/bazaarly-backend/pkg/logger"
	"github.com/bazaarly/bazaarly-backend/pkg/pagination"
)

type vendorSignupResponse struct {
	Vendor      vendorPayload `json:"vendor"`
	User        userPayload   `json:"user"`
	AccessToken string        `json:"access_token"`
}

type vendorListResponse struct {
	Vendors    []vendorPayload `json:"vendors"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

type vendorRejectRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// VendorsSignup creates a pending vendor plus its admin account.
func VendorsSignup(svc vendorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		var payload vendorsvc.SignupInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Signup(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, vendorSignupResponse{
			Vendor:      newVendorPayload(result.Vendor),
			User:        newUserPayload(result.User),
			AccessToken: result.AccessToken,
		})
	}
}

// VendorsMe returns the actor's own vendor.
func VendorsMe(svc vendorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		actor, err := requestActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.Me(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newVendorPayload(vendor))
	}
}

// VendorsUpdateMe patches the actor's own vendor profile.
func VendorsUpdateMe(svc vendorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		actor, err := requestActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload vendorsvc.UpdateInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.UpdateMe(r.Context(), actor, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newVendorPayload(vendor))
	}
}

// VendorsList pages through vendors. Non-staff callers only ever see approved
// storefronts regardless of the requested filter.
func VendorsList(svc vendorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
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

		var status *enums.VendorStatus
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			parsed := enums.VendorStatus(raw)
			if !parsed.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown vendor status"))
				return
			}
			status = &parsed
		}

		list, err := svc.List(r.Context(), actor, params, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendors := make([]vendorPayload, 0, len(list.Vendors))
		for i := range list.Vendors {
			vendors = append(vendors, newVendorPayload(&list.Vendors[i]))
		}
		responses.WriteSuccess(w, vendorListResponse{Vendors: vendors, NextCursor: list.NextCursor})
	}
}

// VendorsApprove moves a vendor to approved.
func VendorsApprove(svc vendorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviewVendor(w, r, svc, logg, func(h reviewHandlerArgs) (vendorPayload, error) {
			vendor, err := svc.Approve(r.Context(), h.actor, h.vendorID)
			if err != nil {
				return vendorPayload{}, err
			}
			return newVendorPayload(vendor), nil
		})
	}
}

// VendorsReject moves a vendor to rejected with a reason.
func VendorsReject(svc vendorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload vendorRejectRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		reviewVendor(w, r, svc, logg, func(h reviewHandlerArgs) (vendorPayload, error) {
			vendor, err := svc.Reject(r.Context(), h.actor, h.vendorID, payload.Reason)
			if err != nil {
				return vendorPayload{}, err
			}
			return newVendorPayload(vendor), nil
		})
	}
}

// VendorsSuspend moves a vendor to suspended.
func VendorsSuspend(svc vendorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviewVendor(w, r, svc, logg, func(h reviewHandlerArgs) (vendorPayload, error) {
			vendor, err := svc.Suspend(r.Context(), h.actor, h.vendorID)
			if err != nil {
				return vendorPayload{}, err
			}
			return newVendorPayload(vendor), nil
		})
	}
}

type reviewHandlerArgs struct {
	actor    authz.Actor
	vendorID uuid.UUID
}

func reviewVendor(
	w http.ResponseWriter,
	r *http.Request,
	svc vendorsvc.Service,
	logg *logger.Logger,
	apply func(reviewHandlerArgs) (vendorPayload, error),
) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
		return
	}

	actor, err := requestActor(r)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	id, err := parseUUIDParam(r, "vendorID")
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	payload, err := apply(reviewHandlerArgs{actor: actor, vendorID: id})
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	responses.WriteSuccess(w, payload)
}
