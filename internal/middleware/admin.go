package middleware

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context

	"github.com/iliyamo/cinema-booking/internal/repository" // repository defines the Role enum
)

// RequireAdmin returns a middleware that enforces the admin gate on
// mutating catalog and scheduling operations. The gate runs before any
// other validation: an anonymous caller gets 401, an authenticated caller
// without elevated rights gets 403. It assumes the Session middleware has
// already stored the role in the context under "role".
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := c.Get("role")
			if v == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user is not logged in"})
			}
			role, ok := v.(repository.Role)
			if !ok || !role.Admin() {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "user does not have access rights"})
			}
			return next(c)
		}
	}
}
