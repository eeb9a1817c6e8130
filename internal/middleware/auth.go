package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"wastelink-checkout-gateway/internal/session"
)

const (
	tokenKey   = "upstream_token"
	sessionKey = "checkout_session"

	// SessionHeader carries the gateway-issued checkout session token.
	SessionHeader = "X-Checkout-Session"
)

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// RequireBearer rejects requests without an upstream bearer token. The token
// is not validated here; the upstream backend owns it and answers 401 on a
// bad one, which the gateway passes through.
func RequireBearer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			c.Set(tokenKey, token)
			return next(c)
		}
	}
}

// OptionalBearer forwards a bearer token when present but lets anonymous
// requests through. Used for screens where auth is optional, like the
// product catalog.
func OptionalBearer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := bearerToken(c); token != "" {
				c.Set(tokenKey, token)
			}
			return next(c)
		}
	}
}

// Token returns the upstream bearer token stored by the middleware, or "".
func Token(c echo.Context) string {
	token, _ := c.Get(tokenKey).(string)
	return token
}

// CheckoutSession resolves the session token from the request header and
// stores the live session on the context.
func CheckoutSession(manager *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := manager.Resolve(c.Request().Header.Get(SessionHeader))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid checkout session")
			}
			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// SessionFrom returns the session stored by CheckoutSession.
func SessionFrom(c echo.Context) *session.Session {
	sess, _ := c.Get(sessionKey).(*session.Session)
	return sess
}
