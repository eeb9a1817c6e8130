package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"wastelink-checkout-gateway/internal/cart"
	"wastelink-checkout-gateway/internal/dto"
	"wastelink-checkout-gateway/internal/middleware"
	"wastelink-checkout-gateway/internal/session"
)

// CartHandler exposes the cart of the caller's checkout session. Every
// response carries the lines plus the totals the session recomputed on the
// last change, so the client never derives money amounts itself.
type CartHandler struct{}

func NewCartHandler() *CartHandler {
	return &CartHandler{}
}

func cartResponse(sess *session.Session) *dto.CartResponse {
	return &dto.CartResponse{
		Items:  sess.Cart.Items(),
		Totals: sess.Totals().Rounded(),
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	return c.JSON(http.StatusOK, cartResponse(sess))
}

func (h *CartHandler) AddItem(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	var req dto.AddItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.ProductID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id is required")
	}
	if req.UnitPrice < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "unit_price must not be negative")
	}

	sess.Cart.AddOrIncrement(cart.Item{
		ID:        req.ProductID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Category:  req.Category,
	})

	return c.JSON(http.StatusOK, cartResponse(sess))
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	var req dto.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	sess.Cart.UpdateQuantity(id, req.Delta)

	return c.JSON(http.StatusOK, cartResponse(sess))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	sess.Cart.Remove(id)

	return c.JSON(http.StatusOK, cartResponse(sess))
}
