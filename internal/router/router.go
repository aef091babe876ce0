// Package router registers the HTTP routes of the site API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/healthycorner/site-api/internal/handler"
	"github.com/healthycorner/site-api/internal/middleware"
	"github.com/healthycorner/site-api/internal/model"
)

// RegisterRoutes registers the unauthenticated infrastructure routes.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth registers the session endpoints under /v1/auth and the
// protected /v1/me.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", middleware.NoStore)
	g.POST("/login", a.Login, limit)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	e.GET("/v1/me", a.Me,
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
		middleware.NoStore,
	)
}
