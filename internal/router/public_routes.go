package router

import (
	"github.com/labstack/echo/v4"

	"github.com/healthycorner/site-api/internal/handler"
)

// RegisterPublic registers the storefront API.  Reads go through the
// response cache; form posts go through the rate limiter.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache, limit echo.MiddlewareFunc) {
	g := e.Group("/v1")

	g.GET("/content", p.GetContent, cache)
	g.GET("/schedule", p.GetSchedule, cache)
	g.GET("/products", p.ListProducts, cache)
	g.GET("/services", p.ListServices, cache)

	g.POST("/bookings", p.CreateBooking, limit)
	g.POST("/contact", p.CreateContact, limit)
	g.POST("/newsletter", p.Subscribe, limit)
	g.POST("/orders", p.CreateOrder, limit)
}
