package client

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

	"wastelink-checkout-gateway/internal/config"
	"wastelink-checkout-gateway/internal/model"
)

// ErrMalformedResponse marks an upstream body that decoded but is missing a
// required field.
var ErrMalformedResponse = errors.New("malformed upstream response")

// APIError is a non-2xx upstream response. The gateway never retries one;
// it surfaces the status to the caller.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream error %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

type QuickPaymentRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	OrderID   string `json:"order_id"`
	ReturnURL string `json:"return_url"`
	CancelURL string `json:"cancel_url"`
}

// UpstreamClient is the single typed client for the waste-management
// backend. Every portal concern goes through here; callers pass the end
// user's bearer token and it is forwarded verbatim.
type UpstreamClient interface {
	Login(ctx context.Context, username, password string) (*model.TokenResponse, error)
	Register(ctx context.Context, body json.RawMessage) error

	ListProducts(ctx context.Context, token string) ([]model.Product, error)

	CreateOrder(ctx context.Context, token string, productID int64, quantity int) (*model.Order, error)
	ListOrders(ctx context.Context, token string) ([]model.Order, error)
	InitiateQuickPayment(ctx context.Context, token string, req *QuickPaymentRequest) (*model.PaymentInit, error)

	ListCollections(ctx context.Context, token string) ([]model.CollectionRequest, error)
	RequestCollection(ctx context.Context, token string, body json.RawMessage) (*model.CollectionRequest, error)
	ListComplaints(ctx context.Context, token string) ([]model.Complaint, error)
	SubmitComplaint(ctx context.Context, token string, body json.RawMessage) (*model.Complaint, error)

	AdminList(ctx context.Context, token, resource string) (json.RawMessage, error)
	AdminCreate(ctx context.Context, token, resource string, body json.RawMessage) (json.RawMessage, error)
	AdminUpdate(ctx context.Context, token, resource, id string, body json.RawMessage) (json.RawMessage, error)
	AdminDelete(ctx context.Context, token, resource, id string) error

	ListCollectorRequests(ctx context.Context, token string) ([]model.CollectionRequest, error)
	AcceptCollectorRequest(ctx context.Context, token, id string) error
	CompleteCollectorRequest(ctx context.Context, token, id string) error
}

type upstreamClientImpl struct {
	httpClient *http.Client
	baseAPIURL string
}

func NewUpstreamClient(cfg *config.Upstream) UpstreamClient {
	return &upstreamClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseAPIURL: strings.TrimRight(cfg.BaseAPIURL, "/"),
	}
}

func (c *upstreamClientImpl) Login(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseAPIURL+"/auth/login",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var res model.TokenResponse
	if err := c.do(req, &res); err != nil {
		return nil, err
	}
	if res.AccessToken == "" {
		return nil, fmt.Errorf("login response missing access_token: %w", ErrMalformedResponse)
	}

	return &res, nil
}

func (c *upstreamClientImpl) Register(ctx context.Context, body json.RawMessage) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/register", "", body, nil)
}

func (c *upstreamClientImpl) ListProducts(ctx context.Context, token string) ([]model.Product, error) {
	var products []model.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products", token, nil, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	for _, p := range products {
		if p.ID == 0 {
			return nil, fmt.Errorf("product missing id: %w", ErrMalformedResponse)
		}
	}
	return products, nil
}

func (c *upstreamClientImpl) CreateOrder(ctx context.Context, token string, productID int64, quantity int) (*model.Order, error) {
	payload := map[string]interface{}{
		"product_id": productID,
		"quantity":   quantity,
	}

	var order model.Order
	if err := c.doJSON(ctx, http.MethodPost, "/citizens/orders", token, payload, &order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	if order.ID == 0 {
		return nil, fmt.Errorf("order response missing id: %w", ErrMalformedResponse)
	}

	return &order, nil
}

func (c *upstreamClientImpl) ListOrders(ctx context.Context, token string) ([]model.Order, error) {
	var orders []model.Order
	if err := c.doJSON(ctx, http.MethodGet, "/citizens/orders", token, nil, &orders); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (c *upstreamClientImpl) InitiateQuickPayment(ctx context.Context, token string, req *QuickPaymentRequest) (*model.PaymentInit, error) {
	var res model.PaymentInit
	if err := c.doJSON(ctx, http.MethodPost, "/payments/monetbil/quick", token, req, &res); err != nil {
		return nil, fmt.Errorf("initiate payment: %w", err)
	}
	if res.PaymentURL == "" {
		return nil, fmt.Errorf("payment response missing payment_url: %w", ErrMalformedResponse)
	}

	return &res, nil
}

func (c *upstreamClientImpl) ListCollections(ctx context.Context, token string) ([]model.CollectionRequest, error) {
	var collections []model.CollectionRequest
	if err := c.doJSON(ctx, http.MethodGet, "/citizens/collections", token, nil, &collections); err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return collections, nil
}

func (c *upstreamClientImpl) RequestCollection(ctx context.Context, token string, body json.RawMessage) (*model.CollectionRequest, error) {
	var collection model.CollectionRequest
	if err := c.doJSON(ctx, http.MethodPost, "/citizens/collections", token, body, &collection); err != nil {
		return nil, fmt.Errorf("request collection: %w", err)
	}
	return &collection, nil
}

func (c *upstreamClientImpl) ListComplaints(ctx context.Context, token string) ([]model.Complaint, error) {
	var complaints []model.Complaint
	if err := c.doJSON(ctx, http.MethodGet, "/citizens/complaints", token, nil, &complaints); err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	return complaints, nil
}

func (c *upstreamClientImpl) SubmitComplaint(ctx context.Context, token string, body json.RawMessage) (*model.Complaint, error) {
	var complaint model.Complaint
	if err := c.doJSON(ctx, http.MethodPost, "/citizens/complaints", token, body, &complaint); err != nil {
		return nil, fmt.Errorf("submit complaint: %w", err)
	}
	return &complaint, nil
}

// Admin resources vary in shape per collection, so the admin surface proxies
// raw JSON both ways instead of forcing one schema onto six resource types.

func (c *upstreamClientImpl) AdminList(ctx context.Context, token, resource string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/admin/"+resource, token, nil, &out); err != nil {
		return nil, fmt.Errorf("admin list %s: %w", resource, err)
	}
	return out, nil
}

func (c *upstreamClientImpl) AdminCreate(ctx context.Context, token, resource string, body json.RawMessage) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodPost, "/admin/"+resource, token, body, &out); err != nil {
		return nil, fmt.Errorf("admin create %s: %w", resource, err)
	}
	return out, nil
}

func (c *upstreamClientImpl) AdminUpdate(ctx context.Context, token, resource, id string, body json.RawMessage) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodPut, "/admin/"+resource+"/"+id, token, body, &out); err != nil {
		return nil, fmt.Errorf("admin update %s: %w", resource, err)
	}
	return out, nil
}

func (c *upstreamClientImpl) AdminDelete(ctx context.Context, token, resource, id string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/admin/"+resource+"/"+id, token, nil, nil); err != nil {
		return fmt.Errorf("admin delete %s: %w", resource, err)
	}
	return nil
}

func (c *upstreamClientImpl) ListCollectorRequests(ctx context.Context, token string) ([]model.CollectionRequest, error) {
	var requests []model.CollectionRequest
	if err := c.doJSON(ctx, http.MethodGet, "/collectors/requests", token, nil, &requests); err != nil {
		return nil, fmt.Errorf("list collector requests: %w", err)
	}
	return requests, nil
}

func (c *upstreamClientImpl) AcceptCollectorRequest(ctx context.Context, token, id string) error {
	if err := c.doJSON(ctx, http.MethodPut, "/collectors/requests/"+id+"/accept", token, nil, nil); err != nil {
		return fmt.Errorf("accept request: %w", err)
	}
	return nil
}

func (c *upstreamClientImpl) CompleteCollectorRequest(ctx context.Context, token, id string) error {
	if err := c.doJSON(ctx, http.MethodPut, "/collectors/requests/"+id+"/complete", token, nil, nil); err != nil {
		return fmt.Errorf("complete request: %w", err)
	}
	return nil
}

// doJSON builds a JSON request against the upstream base URL and decodes the
// response into out when non-nil. A non-2xx status becomes an *APIError.
func (c *upstreamClientImpl) doJSON(ctx context.Context, method, path, token string, in, out interface{}) error {
	var reqBody io.Reader
	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal req payload: %w", err)
		}
		reqBody = bytes.NewBuffer(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseAPIURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(req, out)
}

func (c *upstreamClientImpl) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode upstream response (%v): %w", err, ErrMalformedResponse)
	}

	return nil
}
