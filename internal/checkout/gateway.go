package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/swiftkart/checkout-service/pkg/config"
	pkgerrors "github.com/swiftkart/checkout-service/pkg/errors"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	userIDHeader         = "X-User-Id"
)

// OrderReceipt is what the order API returns for a created order.
type OrderReceipt struct {
	OrderID     string `json:"id"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status,omitempty"`
}

// OrderDetails is the order API's view of a previously created order.
type OrderDetails struct {
	OrderID     string          `json:"id"`
	OrderNumber string          `json:"orderNumber"`
	Status      string          `json:"status"`
	Total       json.RawMessage `json:"total,omitempty"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
}

// Gateway talks to the external order-creation API.
type Gateway interface {
	SubmitOrder(ctx context.Context, req *OrderRequest, idempotencyKey string) (*OrderReceipt, error)
	FetchOrder(ctx context.Context, userID uuid.UUID, orderID string) (*OrderDetails, error)
}

// HTTPGateway implements Gateway over the order API's REST surface.
type HTTPGateway struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures the HTTPGateway.
type Option func(*HTTPGateway)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(g *HTTPGateway) {
		if client != nil {
			g.httpClient = client
		}
	}
}

// NewHTTPGateway builds a gateway against the configured order API.
func NewHTTPGateway(cfg config.OrderAPIConfig, opts ...Option) (*HTTPGateway, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("checkout: order api base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	gateway := &HTTPGateway{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
	for _, opt := range opts {
		opt(gateway)
	}
	return gateway, nil
}

type orderEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SubmitOrder POSTs the order request, carrying the idempotency key so the
// order API can deduplicate retries on its side too.
func (g *HTTPGateway) SubmitOrder(ctx context.Context, req *OrderRequest, idempotencyKey string) (*OrderReceipt, error) {
	if req == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order request is required")
	}
	if strings.TrimSpace(idempotencyKey) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "idempotency key is required")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding order request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building order request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(idempotencyKeyHeader, idempotencyKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "calling order api")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, g.statusError(resp)
	}

	var envelope orderEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding order api response")
	}
	if !envelope.Success {
		msg := envelope.Error.Message
		if msg == "" {
			msg = "order api reported failure"
		}
		return nil, pkgerrors.New(pkgerrors.CodeDependency, msg)
	}

	var receipt OrderReceipt
	if err := json.Unmarshal(envelope.Data, &receipt); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding order receipt")
	}
	if receipt.OrderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "order api returned no order id")
	}
	return &receipt, nil
}

// FetchOrder retrieves a previously created order on behalf of the user.
func (g *HTTPGateway) FetchOrder(ctx context.Context, userID uuid.UUID, orderID string) (*OrderDetails, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}

	endpoint := fmt.Sprintf("%s/orders/my/%s", g.baseURL, url.PathEscape(orderID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building order lookup request")
	}
	httpReq.Header.Set(userIDHeader, userID.String())

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "calling order api")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, g.statusError(resp)
	}

	var envelope orderEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding order api response")
	}
	if !envelope.Success {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	var details OrderDetails
	if err := json.Unmarshal(envelope.Data, &details); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding order details")
	}
	return &details, nil
}

func (g *HTTPGateway) statusError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	message := strings.TrimSpace(string(snippet))
	if message == "" {
		message = resp.Status
	}
	return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("order api returned %d: %s", resp.StatusCode, message))
}
