package model

import "time"

// CheckoutRecord journals every order the gateway created upstream. It is an
// audit trail only: nothing reads it to retry or reconcile, so a payment
// that fails after order creation stays visible here as PAYMENT_FAILED with
// the upstream order untouched.
type CheckoutRecord struct {
	OrderID   string  `gorm:"primaryKey;size:64;not null"` // upstream order id
	SessionID string  `gorm:"size:64;index;not null"`
	Flow      string  `gorm:"size:16;not null"`       // CART, PURCHASE
	Status    string  `gorm:"size:32;index;not null"` // CREATED, PAYMENT_PENDING, PAYMENT_FAILED, COMPLETED
	Amount    float64 `gorm:"not null"`
	Currency  string  `gorm:"size:8;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	FlowCart     = "CART"
	FlowPurchase = "PURCHASE"

	StatusCreated        = "CREATED"
	StatusPaymentPending = "PAYMENT_PENDING"
	StatusPaymentFailed  = "PAYMENT_FAILED"
	StatusCompleted      = "COMPLETED"
)
