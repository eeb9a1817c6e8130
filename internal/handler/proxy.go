package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"wastelink-checkout-gateway/internal/client"
	"wastelink-checkout-gateway/internal/middleware"
)

// adminResources is the allowed admin CRUD surface; anything else is
// rejected before it reaches the upstream.
var adminResources = map[string]bool{
	"users":      true,
	"orders":     true,
	"collectors": true,
	"products":   true,
	"categories": true,
	"locations":  true,
}

// ProxyHandler forwards the portal endpoints to the upstream backend through
// the typed client, so every screen shares one request/response/error
// contract instead of fetching ad hoc.
type ProxyHandler struct {
	upstream client.UpstreamClient
}

func NewProxyHandler(upstream client.UpstreamClient) *ProxyHandler {
	return &ProxyHandler{
		upstream: upstream,
	}
}

func rawBody(c echo.Context) (json.RawMessage, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	return body, nil
}

func (h *ProxyHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	token, err := h.upstream.Login(ctx, username, password)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, token)
}

func (h *ProxyHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := rawBody(c)
	if err != nil {
		return err
	}

	if err := h.upstream.Register(ctx, body); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusCreated)
}

func (h *ProxyHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.upstream.ListProducts(ctx, middleware.Token(c))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProxyHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.upstream.ListOrders(ctx, middleware.Token(c))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *ProxyHandler) ListCollections(c echo.Context) error {
	ctx := c.Request().Context()

	collections, err := h.upstream.ListCollections(ctx, middleware.Token(c))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, collections)
}

func (h *ProxyHandler) RequestCollection(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := rawBody(c)
	if err != nil {
		return err
	}

	collection, err := h.upstream.RequestCollection(ctx, middleware.Token(c), body)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, collection)
}

func (h *ProxyHandler) ListComplaints(c echo.Context) error {
	ctx := c.Request().Context()

	complaints, err := h.upstream.ListComplaints(ctx, middleware.Token(c))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, complaints)
}

func (h *ProxyHandler) SubmitComplaint(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := rawBody(c)
	if err != nil {
		return err
	}

	complaint, err := h.upstream.SubmitComplaint(ctx, middleware.Token(c), body)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, complaint)
}

func adminResource(c echo.Context) (string, error) {
	resource := c.Param("resource")
	if !adminResources[resource] {
		return "", echo.NewHTTPError(http.StatusNotFound, "unknown admin resource")
	}
	return resource, nil
}

func (h *ProxyHandler) AdminList(c echo.Context) error {
	ctx := c.Request().Context()

	resource, err := adminResource(c)
	if err != nil {
		return err
	}

	out, err := h.upstream.AdminList(ctx, middleware.Token(c), resource)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSONBlob(http.StatusOK, out)
}

func (h *ProxyHandler) AdminCreate(c echo.Context) error {
	ctx := c.Request().Context()

	resource, err := adminResource(c)
	if err != nil {
		return err
	}
	body, err := rawBody(c)
	if err != nil {
		return err
	}

	out, err := h.upstream.AdminCreate(ctx, middleware.Token(c), resource, body)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSONBlob(http.StatusCreated, out)
}

func (h *ProxyHandler) AdminUpdate(c echo.Context) error {
	ctx := c.Request().Context()

	resource, err := adminResource(c)
	if err != nil {
		return err
	}
	body, err := rawBody(c)
	if err != nil {
		return err
	}

	out, err := h.upstream.AdminUpdate(ctx, middleware.Token(c), resource, c.Param("id"), body)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSONBlob(http.StatusOK, out)
}

func (h *ProxyHandler) AdminDelete(c echo.Context) error {
	ctx := c.Request().Context()

	resource, err := adminResource(c)
	if err != nil {
		return err
	}

	if err := h.upstream.AdminDelete(ctx, middleware.Token(c), resource, c.Param("id")); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ProxyHandler) ListCollectorRequests(c echo.Context) error {
	ctx := c.Request().Context()

	requests, err := h.upstream.ListCollectorRequests(ctx, middleware.Token(c))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, requests)
}

func (h *ProxyHandler) AcceptCollectorRequest(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.upstream.AcceptCollectorRequest(ctx, middleware.Token(c), c.Param("id")); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusOK)
}

func (h *ProxyHandler) CompleteCollectorRequest(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.upstream.CompleteCollectorRequest(ctx, middleware.Token(c), c.Param("id")); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusOK)
}
