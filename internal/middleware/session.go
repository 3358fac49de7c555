package middleware // middleware provides shared request processing for handlers

import (
	"strings" // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/cinema-booking/internal/session" // session store resolving tokens to identities
)

// Session returns an Echo middleware that resolves a bearer session token
// into the caller's identity and injects it into the request context under
// "client_id" and "role". The resolution also refreshes the session's idle
// TTL. The middleware never rejects a request: anonymous callers simply
// reach the handler without an identity, because the status class for a
// missing session differs per operation (admin operations answer 401,
// ticket operations 409).
func Session(store *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token := strings.TrimPrefix(auth, "Bearer ")
				if id, err := store.Get(c.Request().Context(), token); err == nil {
					c.Set("client_id", id.ClientID)
					c.Set("role", id.Role)
					c.Set("session_token", token)
				}
			}
			return next(c)
		}
	}
}
