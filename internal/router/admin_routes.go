package router

import (
	"github.com/labstack/echo/v4"

	"github.com/healthycorner/site-api/internal/handler"
	"github.com/healthycorner/site-api/internal/middleware"
	"github.com/healthycorner/site-api/internal/model"
)

// RegisterAdmin registers the back-office API under /v1/admin.  Every route
// requires an ADMIN access token and is never cached.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
		middleware.NoStore,
	)

	g.GET("/stats", a.Stats)

	// ---- Content ----
	g.GET("/content", a.ListContent)
	g.POST("/content", a.UpsertContent)
	g.PATCH("/content", a.PatchContent)
	g.DELETE("/content/:id", a.DeleteContent)
	g.GET("/gallery", a.GalleryImages)

	// ---- Schedule ----
	g.GET("/schedule", a.GetSchedule)
	g.PUT("/schedule", a.PutSchedule)

	// ---- Bookings / messages ----
	g.GET("/bookings", a.ListBookings)
	g.PATCH("/bookings/:id", a.UpdateBookingStatus)
	g.DELETE("/bookings/:id", a.DeleteBooking)
	g.GET("/messages", a.ListMessages)
	g.PATCH("/messages/:id", a.UpdateMessageStatus)
	g.DELETE("/messages/:id", a.DeleteMessage)

	// ---- Orders ----
	g.GET("/orders", a.ListOrders)
	g.GET("/orders/:id/items", a.OrderItems)
	g.PATCH("/orders/:id", a.UpdateOrder)
	g.DELETE("/orders/:id", a.DeleteOrder)

	// ---- Catalog ----
	g.GET("/products", a.ListProducts)
	g.POST("/products", a.CreateProduct)
	g.PATCH("/products/:id", a.PatchProduct)
	g.DELETE("/products/:id", a.DeleteProduct)
	g.GET("/services", a.ListServices)
	g.POST("/services", a.CreateService)
	g.PATCH("/services/:id", a.PatchService)
	g.DELETE("/services/:id", a.DeleteService)
}
