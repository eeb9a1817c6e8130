package dto

import (
	"wastelink-checkout-gateway/internal/cart"
	"wastelink-checkout-gateway/internal/pricing"
)

type AddItemRequest struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Category  string  `json:"category"`
}

type UpdateQuantityRequest struct {
	Delta int `json:"delta"`
}

type CartResponse struct {
	Items  []cart.Item    `json:"items"`
	Totals pricing.Totals `json:"totals"`
}

type SessionResponse struct {
	SessionToken string `json:"session_token"`
	ExpiresAt    string `json:"expires_at"`
}

// ShippingInfo is checkout-only input, never persisted. ZipCode and Phone
// are optional.
type ShippingInfo struct {
	FullName string `json:"full_name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	ZipCode  string `json:"zip_code"`
	Phone    string `json:"phone"`
}

type SubmitCartResponse struct {
	OrderIDs []string       `json:"order_ids"`
	Totals   pricing.Totals `json:"totals"`
}

type PurchaseRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type PurchaseResponse struct {
	OrderID    string `json:"order_id"`
	PaymentURL string `json:"payment_url"`
}
