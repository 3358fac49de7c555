package handler // handler defines http handlers

import (
	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/iliyamo/cinema-booking/internal/repository" // repository holds the Role enum
)

// currentClient extracts the authenticated identity the Session middleware
// stored in context. The third return value is false for anonymous callers.
func currentClient(c echo.Context) (uint64, repository.Role, bool) {
	id, ok := c.Get("client_id").(uint64)
	if !ok {
		return 0, "", false
	}
	role, ok := c.Get("role").(repository.Role)
	if !ok {
		return 0, "", false
	}
	return id, role, true
}

// pathID parses the :id path parameter as an unsigned integer.
func pathID(c echo.Context) (uint64, bool) {
	id, err := parseUint(c.Param("id"))
	return id, err == nil && id != 0
}
