package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"wastelink-checkout-gateway/internal/dto"
	"wastelink-checkout-gateway/internal/middleware"
	"wastelink-checkout-gateway/internal/service"
	"wastelink-checkout-gateway/internal/session"
)

type CheckoutHandler struct {
	sessions        *session.Manager
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(sessions *session.Manager, checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		sessions:        sessions,
		checkoutService: checkoutService,
	}
}

// CreateSession starts a fresh checkout session with an empty cart.
func (h *CheckoutHandler) CreateSession(c echo.Context) error {
	sess, token, err := h.sessions.Create()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, &dto.SessionResponse{
		SessionToken: token,
		ExpiresAt:    sess.ExpiresAt.Format(time.RFC3339),
	})
}

// SubmitCart runs the order-focused flow: shipping validation, one upstream
// order per cart line, cart cleared on success.
func (h *CheckoutHandler) SubmitCart(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.SessionFrom(c)

	var req dto.ShippingInfo
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.checkoutService.SubmitCartOrder(ctx, middleware.Token(c), sess, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, result)
}

// SubmitPurchase runs the product-purchase flow: order creation followed by
// Monetbil payment initiation; the response carries the payment URL the
// browser must redirect to.
func (h *CheckoutHandler) SubmitPurchase(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.SessionFrom(c)

	var req dto.PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.checkoutService.SubmitProductPurchase(ctx, middleware.Token(c), sess, &req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, result)
}
