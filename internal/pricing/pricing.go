package pricing

import (
	"github.com/shopspring/decimal"

	"wastelink-checkout-gateway/internal/cart"
)

// Business constants for checkout totals. The free-shipping threshold is
// exclusive: shipping is waived only when the subtotal is strictly greater
// than it. Tax applies to the subtotal only, never to shipping.
const (
	FreeShippingThreshold = 500.0
	FlatShippingFee       = 25.0
	TaxRate               = 0.08
)

// Totals carries the derived monetary amounts of a cart. Values keep full
// float precision; call Rounded before displaying or submitting them.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Compute derives the totals for the given cart lines. Pure: same input,
// same output, no state. An empty cart yields all zeros, including shipping.
func Compute(items []cart.Item) Totals {
	if len(items) == 0 {
		return Totals{}
	}

	subtotal := 0.0
	for _, it := range items {
		subtotal += it.UnitPrice * float64(it.Quantity)
	}

	shipping := FlatShippingFee
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * TaxRate

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

// Rounded quantizes every amount to two decimal places.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal: round2(t.Subtotal),
		Shipping: round2(t.Shipping),
		Tax:      round2(t.Tax),
		Total:    round2(t.Total),
	}
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
