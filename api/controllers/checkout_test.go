package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bazaarly/bazaarly-backend/api/middleware"
	checkoutsvc "github.com/bazaarly/bazaarly-backend/internal/checkout"
	"github.com/bazaarly/bazaarly-backend/pkg/authz"
	"github.com/bazaarly/bazaarly-backend/pkg/db/models"
	"github.com/bazaarly/bazaarly-backend/pkg/enums"
	"github.com/bazaarly/bazaarly-backend/pkg/logger"
)

type stubCheckoutService struct {
	result *checkoutsvc.Result
	err    error

	gotActor authz.Actor
	gotInput checkoutsvc.Input
}

func (s *stubCheckoutService) Execute(_ context.Context, actor authz.Actor, input checkoutsvc.Input) (*checkoutsvc.Result, error) {
	s.gotActor = actor
	s.gotInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func controllerTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func checkoutOrder(userID uuid.UUID, vendorID *uuid.UUID, total string) models.Order {
	amount := decimal.RequireFromString(total)
	return models.Order{
		ID:             uuid.New(),
		UserID:         userID,
		VendorID:       vendorID,
		Status:         enums.OrderStatusPending,
		Subtotal:       amount,
		Total:          amount,
		ShipLine1:      "1 Main St",
		ShipCity:       "Springfield",
		ShipPostalCode: "12345",
		ShipCountry:    "US",
	}
}

func doCheckout(t *testing.T, svc checkoutsvc.Service, actor *authz.Actor, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}
	resp := httptest.NewRecorder()
	Checkout(svc, controllerTestLogger())(resp, req)
	return resp
}

func TestCheckoutRequiresActor(t *testing.T) {
	svc := &stubCheckoutService{}
	resp := doCheckout(t, svc, nil, `{}`)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCheckoutSingleOrderUnwrapsPayload(t *testing.T) {
	actor := authz.Actor{UserID: uuid.New(), Role: enums.UserRoleCustomer}
	vendorID := uuid.New()
	svc := &stubCheckoutService{result: &checkoutsvc.Result{
		Orders: []models.Order{checkoutOrder(actor.UserID, &vendorID, "42.00")},
	}}

	resp := doCheckout(t, svc, &actor, `{"coupon_code":"SAVE10"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotInput.CouponCode != "SAVE10" {
		t.Fatalf("expected coupon code forwarded, got %q", svc.gotInput.CouponCode)
	}

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := envelope.Data["orders"]; ok {
		t.Fatal("single order must not be wrapped in an orders array")
	}
	if envelope.Data["total"] != "42.00" {
		t.Fatalf("unexpected total %v", envelope.Data["total"])
	}
}

func TestCheckoutMultiOrderWrapsPayload(t *testing.T) {
	actor := authz.Actor{UserID: uuid.New(), Role: enums.UserRoleCustomer}
	vendorID := uuid.New()
	svc := &stubCheckoutService{result: &checkoutsvc.Result{
		Orders: []models.Order{
			checkoutOrder(actor.UserID, nil, "10.00"),
			checkoutOrder(actor.UserID, &vendorID, "20.00"),
		},
		ShippingWarning: "unsupported shipping country, shipping not charged",
	}}

	resp := doCheckout(t, svc, &actor, `{}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data struct {
			Orders []map[string]any `json:"orders"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Orders) != 2 {
		t.Fatalf("expected 2 orders got %d", len(envelope.Data.Orders))
	}
	for i, order := range envelope.Data.Orders {
		if order["shipping_warning"] != "unsupported shipping country, shipping not charged" {
			t.Fatalf("order %d missing shipping warning: %v", i, order["shipping_warning"])
		}
	}
}

func TestCheckoutRejectsUnknownFields(t *testing.T) {
	actor := authz.Actor{UserID: uuid.New(), Role: enums.UserRoleCustomer}
	svc := &stubCheckoutService{result: &checkoutsvc.Result{}}

	resp := doCheckout(t, svc, &actor, `{"coupon":"nope"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
