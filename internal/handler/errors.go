package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"wastelink-checkout-gateway/internal/client"
	"wastelink-checkout-gateway/internal/service"
)

// toHTTPError maps the gateway's error taxonomy onto HTTP statuses.
// Validation failures are the caller's to fix; upstream statuses pass
// through unchanged (a 401 tells the SPA to drop its token and re-login);
// a malformed upstream body is the upstream's fault, reported as 502.
func toHTTPError(err error) error {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return echo.NewHTTPError(http.StatusBadRequest, validationErr.Error())
	}

	switch {
	case errors.Is(err, service.ErrEmptyCart):
		return echo.NewHTTPError(http.StatusBadRequest, "cart is empty")
	case errors.Is(err, service.ErrSubmitInProgress):
		return echo.NewHTTPError(http.StatusConflict, "a submission is already in progress")
	case errors.Is(err, client.ErrMalformedResponse):
		return echo.NewHTTPError(http.StatusBadGateway, "unexpected upstream response")
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return echo.NewHTTPError(apiErr.StatusCode, apiErr.Body)
	}

	return err
}
