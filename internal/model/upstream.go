package model

// Typed shapes of the upstream waste-management API. Responses are decoded
// into these at the client boundary and required fields are checked there,
// so a malformed body fails fast instead of leaking empty fields upward.

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	ImageURL string  `json:"image_url"`
}

type Order struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Status    string  `json:"status"`
	Total     float64 `json:"total"`
	CreatedAt string  `json:"created_at"`
}

type PaymentInit struct {
	PaymentURL string `json:"payment_url"`
}

// CollectionRequest doubles for the citizen view (their pickup requests) and
// the collector view (assigned tasks); both sides of the upstream API return
// the same shape.
type CollectionRequest struct {
	ID        int64  `json:"id"`
	Address   string `json:"address"`
	WasteType string `json:"waste_type"`
	Date      string `json:"date"`
	Status    string `json:"status"`
}

type Complaint struct {
	ID      int64  `json:"id"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Status  string `json:"status"`
}
