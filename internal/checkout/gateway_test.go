package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/swiftkart/checkout-service/pkg/config"
	"github.com/swiftkart/checkout-service/pkg/enums"
	pkgerrors "github.com/swiftkart/checkout-service/pkg/errors"
)

func testOrderRequest() *OrderRequest {
	return &OrderRequest{
		UserID: uuid.New(),
		Items: []OrderItem{
			{ProductID: "p1", Name: "Steel Bottle", UnitPrice: decimal.NewFromInt(499), Quantity: 2},
		},
		Currency:      enums.CurrencyINR,
		Subtotal:      decimal.NewFromInt(998),
		Total:         decimal.NewFromInt(1197),
		PaymentMethod: enums.PaymentMethodUPI,
	}
}

func newTestGateway(t *testing.T, handler http.HandlerFunc) (*HTTPGateway, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gateway, err := NewHTTPGateway(config.OrderAPIConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}
	return gateway, server
}

func TestSubmitOrderSuccess(t *testing.T) {
	gateway, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Idempotency-Key") != "key-1" {
			t.Errorf("missing idempotency key header, got %q", r.Header.Get("Idempotency-Key"))
		}

		var received OrderRequest
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		if len(received.Items) != 1 || received.Items[0].ProductID != "p1" {
			t.Errorf("unexpected payload items: %+v", received.Items)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]string{"id": "ord_123", "orderNumber": "SK-1001"},
		})
	})

	receipt, err := gateway.SubmitOrder(context.Background(), testOrderRequest(), "key-1")
	if err != nil {
		t.Fatalf("submit order: %v", err)
	}
	if receipt.OrderID != "ord_123" || receipt.OrderNumber != "SK-1001" {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}
}

func TestSubmitOrderNon2xxIsDependencyError(t *testing.T) {
	gateway, _ := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})

	_, err := gateway.SubmitOrder(context.Background(), testOrderRequest(), "key-1")
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %s", typed.Code())
	}
}

func TestSubmitOrderEnvelopeFailure(t *testing.T) {
	gateway, _ := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   map[string]string{"message": "inventory exhausted"},
		})
	})

	_, err := gateway.SubmitOrder(context.Background(), testOrderRequest(), "key-1")
	if err == nil {
		t.Fatal("expected envelope failure to surface")
	}
}

func TestSubmitOrderRequiresIdempotencyKey(t *testing.T) {
	gateway, _ := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("server should not be called")
	})

	_, err := gateway.SubmitOrder(context.Background(), testOrderRequest(), "  ")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFetchOrderSuccess(t *testing.T) {
	userID := uuid.New()
	gateway, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders/my/ord_123" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-User-Id") != userID.String() {
			t.Errorf("missing X-User-Id header")
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]string{"id": "ord_123", "orderNumber": "SK-1001", "status": "confirmed"},
		})
	})

	details, err := gateway.FetchOrder(context.Background(), userID, "ord_123")
	if err != nil {
		t.Fatalf("fetch order: %v", err)
	}
	if details.Status != "confirmed" {
		t.Fatalf("unexpected details: %+v", details)
	}
}

func TestFetchOrderNotFound(t *testing.T) {
	gateway, _ := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := gateway.FetchOrder(context.Background(), uuid.New(), "missing")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestNewHTTPGatewayRequiresBaseURL(t *testing.T) {
	if _, err := NewHTTPGateway(config.OrderAPIConfig{}); err == nil {
		t.Fatal("expected missing base url to fail")
	}
}
