// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking/internal/handler"
)

// RegisterRoutes registers routes that require no session on the provided
// Echo instance. Currently it exposes only a health check, which load
// balancers and monitoring can use to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the account endpoints. Register and login are open
// (but rate limited); me and logout resolve the caller through the session
// middleware. The client listing is exposed read-only without a session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, sess echo.MiddlewareFunc, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if limit != nil {
		g.Use(limit)
	}
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := e.Group("/v1/auth", sess)
	auth.GET("/me", a.Me)
	auth.POST("/logout", a.Logout)

	e.GET("/v1/clients", a.ListClients)
}

// RegisterCatalog registers the movie, genre, hall and showing endpoints.
// Reads are public and cacheable; writes live under /v1/admin behind the
// session and admin middleware.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, sess, admin echo.MiddlewareFunc, cache echo.MiddlewareFunc) {
	reads := e.Group("/v1")
	if cache != nil {
		reads.Use(cache)
	}
	reads.GET("/movies", h.ListMovies)
	reads.GET("/movies/:id", h.GetMovie)
	reads.GET("/halls", h.ListHalls)

	adm := e.Group("/v1/admin", sess, admin)
	adm.POST("/movies", h.AddMovie)
	adm.DELETE("/movies/:id", h.DeleteMovie)
	adm.POST("/movies/:id/genres", h.AddMovieGenre)
	adm.POST("/genres", h.AddGenre)
	adm.POST("/halls", h.AddHall)
	adm.POST("/showings", h.AddShowing)
}

// RegisterSchedules registers the scheduling endpoints. Reads are public and
// cacheable; creation and deletion are admin operations.
func RegisterSchedules(e *echo.Echo, h *handler.ScheduleHandler, sess, admin echo.MiddlewareFunc, cache echo.MiddlewareFunc) {
	reads := e.Group("/v1")
	if cache != nil {
		reads.Use(cache)
	}
	reads.GET("/schedules", h.ListSchedules)
	reads.GET("/schedules/:id", h.GetSchedule)

	adm := e.Group("/v1/admin", sess, admin)
	adm.POST("/schedules", h.AddSchedule)
	adm.DELETE("/schedules/:id", h.DeleteSchedule)
}

// RegisterTickets registers the booking endpoints. The full ticket listing
// is public; everything else resolves the caller through the session
// middleware and the handlers reject anonymous callers themselves.
func RegisterTickets(e *echo.Echo, h *handler.TicketHandler, sess echo.MiddlewareFunc) {
	e.GET("/v1/tickets", h.All)

	g := e.Group("/v1/tickets", sess)
	g.POST("", h.Book)
	g.GET("/my", h.My)
	g.GET("/:id/details", h.Details)
	g.DELETE("/:id", h.Delete)
}
