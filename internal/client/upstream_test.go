package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastelink-checkout-gateway/internal/config"
)

func newTestClient(handler http.HandlerFunc) (UpstreamClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewUpstreamClient(&config.Upstream{BaseAPIURL: srv.URL})
	return c, srv
}

func TestLogin_FormEncoded(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "citizen1", r.PostFormValue("username"))
		assert.Equal(t, "hunter22", r.PostFormValue("password"))

		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123", "token_type": "bearer"})
	})
	defer srv.Close()

	res, err := c.Login(context.Background(), "citizen1", "hunter22")

	require.NoError(t, err)
	assert.Equal(t, "tok-123", res.AccessToken)
}

func TestLogin_MissingAccessToken(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token_type": "bearer"})
	})
	defer srv.Close()

	res, err := c.Login(context.Background(), "citizen1", "hunter22")

	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Nil(t, res)
}

func TestCreateOrder_BearerAndPayload(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/citizens/orders", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.EqualValues(t, 7, payload["product_id"])
		assert.EqualValues(t, 2, payload["quantity"])

		json.NewEncoder(w).Encode(map[string]interface{}{"id": 42, "product_id": 7, "quantity": 2, "status": "CREATED"})
	})
	defer srv.Close()

	order, err := c.CreateOrder(context.Background(), "tok-123", 7, 2)

	require.NoError(t, err)
	assert.EqualValues(t, 42, order.ID)
}

func TestCreateOrder_NonSuccessStatus(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "insufficient stock", http.StatusConflict)
	})
	defer srv.Close()

	order, err := c.CreateOrder(context.Background(), "tok-123", 7, 2)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "insufficient stock", apiErr.Body)
	assert.Nil(t, order)
}

func TestCreateOrder_MissingID(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "CREATED"})
	})
	defer srv.Close()

	_, err := c.CreateOrder(context.Background(), "tok-123", 7, 2)

	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestInitiateQuickPayment(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/monetbil/quick", r.URL.Path)

		var req QuickPaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "237675123456", req.Phone)
		assert.Equal(t, "42", req.OrderID)

		json.NewEncoder(w).Encode(map[string]string{"payment_url": "https://pay.example/p/1"})
	})
	defer srv.Close()

	res, err := c.InitiateQuickPayment(context.Background(), "tok-123", &QuickPaymentRequest{
		FirstName: "Jane",
		LastName:  "Mbarga",
		Phone:     "237675123456",
		OrderID:   "42",
		ReturnURL: "https://app.example/return",
		CancelURL: "https://app.example/cancel",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/p/1", res.PaymentURL)
}

func TestInitiateQuickPayment_MissingURL(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	})
	defer srv.Close()

	_, err := c.InitiateQuickPayment(context.Background(), "tok-123", &QuickPaymentRequest{OrderID: "42"})

	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestUnauthorizedPassesThrough(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	})
	defer srv.Close()

	_, err := c.ListProducts(context.Background(), "stale-token")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Unauthorized())
}

func TestAdminDelete_PathAndMethod(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/admin/collectors/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	defer srv.Close()

	err := c.AdminDelete(context.Background(), "tok-123", "collectors", "9")

	assert.NoError(t, err)
}
