package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastelink-checkout-gateway/internal/client"
	"wastelink-checkout-gateway/internal/service"
)

func TestToHTTPError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation error", &service.ValidationError{Field: "full_name", Reason: "must not be empty"}, http.StatusBadRequest},
		{"wrapped validation error", fmt.Errorf("submit: %w", &service.ValidationError{Field: "city", Reason: "must not be empty"}), http.StatusBadRequest},
		{"empty cart", service.ErrEmptyCart, http.StatusBadRequest},
		{"submit in progress", service.ErrSubmitInProgress, http.StatusConflict},
		{"malformed upstream body", fmt.Errorf("create order: %w", client.ErrMalformedResponse), http.StatusBadGateway},
		{"upstream 401 passes through", &client.APIError{StatusCode: 401, Body: "token expired"}, http.StatusUnauthorized},
		{"upstream 500 passes through", fmt.Errorf("create order: %w", &client.APIError{StatusCode: 500, Body: "boom"}), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := new(echo.HTTPError)
			require.ErrorAs(t, toHTTPError(tt.err), &httpErr)
			assert.Equal(t, tt.wantStatus, httpErr.Code)
		})
	}
}

func TestToHTTPError_UnknownErrorUnchanged(t *testing.T) {
	err := errors.New("something else")
	assert.Equal(t, err, toHTTPError(err))
}
