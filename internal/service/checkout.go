package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"wastelink-checkout-gateway/internal/client"
	"wastelink-checkout-gateway/internal/config"
	"wastelink-checkout-gateway/internal/dto"
	"wastelink-checkout-gateway/internal/model"
	"wastelink-checkout-gateway/internal/pricing"
	"wastelink-checkout-gateway/internal/repository"
	"wastelink-checkout-gateway/internal/session"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrSubmitInProgress = errors.New("a submission is already in progress")
)

// ValidationError is raised before any network call; the caller fixes the
// field and resubmits.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	return nil
}

// CheckoutService drives the two submission flows against the upstream
// backend. It only ever touches the session's cart on a fully successful
// cart submission; any failure leaves the cart exactly as the user left it.
type CheckoutService interface {
	SubmitCartOrder(ctx context.Context, token string, sess *session.Session, info *dto.ShippingInfo) (*dto.SubmitCartResponse, error)
	SubmitProductPurchase(ctx context.Context, token string, sess *session.Session, req *dto.PurchaseRequest) (*dto.PurchaseResponse, error)
}

type checkoutServiceImpl struct {
	upstream client.UpstreamClient
	records  repository.CheckoutRecordRepository
	payment  config.Payment
}

func NewCheckoutService(
	upstream client.UpstreamClient,
	records repository.CheckoutRecordRepository,
	payment config.Payment,
) CheckoutService {
	return &checkoutServiceImpl{
		upstream: upstream,
		records:  records,
		payment:  payment,
	}
}

// SubmitCartOrder validates the shipping fields, creates one upstream order
// per cart line, then clears the cart and reports the final totals.
func (s *checkoutServiceImpl) SubmitCartOrder(ctx context.Context, token string, sess *session.Session, info *dto.ShippingInfo) (*dto.SubmitCartResponse, error) {
	if !sess.BeginSubmit() {
		return nil, ErrSubmitInProgress
	}
	defer sess.EndSubmit()

	if err := required("full_name", info.FullName); err != nil {
		return nil, err
	}
	if err := required("address", info.Address); err != nil {
		return nil, err
	}
	if err := required("city", info.City); err != nil {
		return nil, err
	}

	items := sess.Cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	totals := pricing.Compute(items).Rounded()

	orderIDs := make([]string, 0, len(items))
	for _, item := range items {
		order, err := s.upstream.CreateOrder(ctx, token, item.ID, item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("create order for product %d: %w", item.ID, err)
		}

		orderID := strconv.FormatInt(order.ID, 10)
		orderIDs = append(orderIDs, orderID)
		s.journal(ctx, &model.CheckoutRecord{
			OrderID:   orderID,
			SessionID: sess.ID,
			Flow:      model.FlowCart,
			Status:    model.StatusCreated,
			Amount:    totals.Total,
			Currency:  s.payment.Currency,
		})
	}

	for _, orderID := range orderIDs {
		s.journalStatus(ctx, orderID, model.StatusCompleted)
	}
	sess.Cart.Clear()

	return &dto.SubmitCartResponse{
		OrderIDs: orderIDs,
		Totals:   totals,
	}, nil
}

// SubmitProductPurchase creates the upstream order and then initiates a
// Monetbil quick payment for it. Order creation must succeed before payment
// is attempted; if payment initiation fails, the created order is left
// as-is and the error is surfaced.
func (s *checkoutServiceImpl) SubmitProductPurchase(ctx context.Context, token string, sess *session.Session, req *dto.PurchaseRequest) (*dto.PurchaseResponse, error) {
	if !sess.BeginSubmit() {
		return nil, ErrSubmitInProgress
	}
	defer sess.EndSubmit()

	if err := required("first_name", req.FirstName); err != nil {
		return nil, err
	}
	if err := required("last_name", req.LastName); err != nil {
		return nil, err
	}
	if err := required("phone", req.Phone); err != nil {
		return nil, err
	}
	if req.Quantity < 1 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}

	order, err := s.upstream.CreateOrder(ctx, token, req.ProductID, req.Quantity)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	orderID := strconv.FormatInt(order.ID, 10)
	s.journal(ctx, &model.CheckoutRecord{
		OrderID:   orderID,
		SessionID: sess.ID,
		Flow:      model.FlowPurchase,
		Status:    model.StatusCreated,
		Amount:    order.Total,
		Currency:  s.payment.Currency,
	})

	payment, err := s.upstream.InitiateQuickPayment(ctx, token, &client.QuickPaymentRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     NormalizePhone(req.Phone, s.payment.CountryPrefix),
		Email:     req.Email,
		OrderID:   orderID,
		ReturnURL: s.payment.ReturnURL,
		CancelURL: s.payment.CancelURL,
	})
	if err != nil {
		s.journalStatus(ctx, orderID, model.StatusPaymentFailed)
		return nil, fmt.Errorf("initiate payment for order %s: %w", orderID, err)
	}

	s.journalStatus(ctx, orderID, model.StatusPaymentPending)

	return &dto.PurchaseResponse{
		OrderID:    orderID,
		PaymentURL: payment.PaymentURL,
	}, nil
}

// NormalizePhone rewrites a locally formatted number into what the payment
// gateway expects: one leading zero is stripped and the country prefix is
// prepended when not already there.
func NormalizePhone(phone, countryPrefix string) string {
	p := strings.TrimSpace(phone)
	p = strings.TrimPrefix(p, "0")
	if !strings.HasPrefix(p, countryPrefix) {
		p = countryPrefix + p
	}
	return p
}

// Journal writes are audit-only and must never fail a checkout.
func (s *checkoutServiceImpl) journal(ctx context.Context, rec *model.CheckoutRecord) {
	if err := s.records.Create(ctx, rec); err != nil {
		log.Printf("journal order %s: %v", rec.OrderID, err)
	}
}

func (s *checkoutServiceImpl) journalStatus(ctx context.Context, orderID, status string) {
	if err := s.records.UpdateStatus(ctx, orderID, status); err != nil {
		log.Printf("journal order %s status %s: %v", orderID, status, err)
	}
}
