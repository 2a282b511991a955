package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bazaarly/bazaarly-backend/api/middleware"
	internalorders "github.com/bazaarly/bazaarly-backend/internal/orders"
	"github.com/bazaarly/bazaarly-backend/pkg/authz"
	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/bazaarly/bazaarly-backend/pkg/enums"
	pkgerrors "github.com/bazaarly/bazaarly-backend/pkg/errors"
	"github.com/bazaarly/bazaarly-backend/pkg/pagination"
)

type stubOrdersService struct {
	list   *internalorders.OrderList
	order  *models.Order
	review *models.Review
	err    error

	gotParams pagination.Params
	gotFilter internalorders.StatusFilter
	gotInput  internalorders.UpdateStatusInput
}

func (s *stubOrdersService) List(_ context.Context, _ authz.Actor, params pagination.Params, filter internalorders.StatusFilter) (*internalorders.OrderList, error) {
	s.gotParams = params
	s.gotFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func (s *stubOrdersService) Get(context.Context, authz.Actor, uuid.UUID) (*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *stubOrdersService) UpdateStatus(_ context.Context, _ authz.Actor, _ uuid.UUID, input internalorders.UpdateStatusInput) (*models.Order, error) {
	s.gotInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *stubOrdersService) CreateReview(context.Context, authz.Actor, uuid.UUID, internalorders.ReviewInput) (*models.Review, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.review, nil
}

func TestOrdersListForwardsStatusFilter(t *testing.T) {
	actor := authz.Actor{UserID: uuid.New(), Role: enums.UserRoleCustomer}
	svc := &stubOrdersService{list: &internalorders.OrderList{NextCursor: "next"}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?status=shipped&limit=5", nil)
	req = req.WithContext(middleware.WithActor(req.Context(), actor))
	resp := httptest.NewRecorder()
	OrdersList(svc, controllerTestLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotFilter.Status == nil || *svc.gotFilter.Status != enums.OrderStatusShipped {
		t.Fatalf("expected shipped filter, got %v", svc.gotFilter.Status)
	}
	if svc.gotParams.Limit != 5 {
		t.Fatalf("expected limit 5, got %d", svc.gotParams.Limit)
	}

	var envelope struct {
		Data orderListResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.NextCursor != "next" {
		t.Fatalf("expected next cursor, got %q", envelope.Data.NextCursor)
	}
}

func TestOrdersListRejectsUnknownStatus(t *testing.T) {
	actor := authz.Actor{UserID: uuid.New(), Role: enums.UserRoleCustomer}
	svc := &stubOrdersService{list: &internalorders.OrderList{}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?status=bogus", nil)
	req = req.WithContext(middleware.WithActor(req.Context(), actor))
	resp := httptest.NewRecorder()
	OrdersList(svc, controllerTestLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOrdersDetailRejectsMalformedID(t *testing.T) {
	actor := authz.Actor{UserID: uuid.New(), Role: enums.UserRoleCustomer}
	svc := &stubOrdersService{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("orderID", "not-a-uuid")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	req = req.WithContext(middleware.WithActor(req.Context(), actor))
	resp := httptest.NewRecorder()
	OrdersDetail(svc, controllerTestLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOrdersUpdateStatusMapsStateConflict(t *testing.T) {
	actor := authz.Actor{UserID: uuid.New(), Role: enums.UserRoleAdmin, IsStaff: true}
	svc := &stubOrdersService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "cannot transition from delivered to pending")}

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/"+uuid.NewString()+"/status", strings.NewReader(`{"status":"pending"}`))
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("orderID", uuid.NewString())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	req = req.WithContext(middleware.WithActor(req.Context(), actor))
	resp := httptest.NewRecorder()
	OrdersUpdateStatus(svc, controllerTestLogger())(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotInput.Status == nil || *svc.gotInput.Status != "pending" {
		t.Fatalf("expected status forwarded, got %v", svc.gotInput.Status)
	}
}
