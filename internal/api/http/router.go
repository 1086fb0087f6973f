package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/http/handlers"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Guest          *handlers.GuestHandler
	Categories     *handlers.CategoryHandler
	Dishes         *handlers.DishHandler
	Tables         *handlers.TableHandler
	Orders         *handlers.OrderHandler
	Accounts       *handlers.AccountHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	// staff session
	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh-token", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)

	// guest session and self-ordering
	guestGroup := app.Group("/guest")
	guestGroup.Post("/auth/login", cfg.Guest.Login)
	guestGroup.Post("/auth/refresh-token", cfg.Guest.Refresh)
	guestGroup.Post("/auth/logout", cfg.Guest.Logout)

	guestProtected := guestGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireGuest())
	guestProtected.Get("/orders", cfg.Guest.ListOrders)
	guestProtected.Post("/orders", cfg.Guest.CreateOrders)

	// public menu browsing
	app.Get("/categories", cfg.Categories.List)
	app.Get("/categories/:id", cfg.Categories.Get)
	app.Get("/dishes", cfg.Dishes.List)
	app.Get("/dishes/:id", cfg.Dishes.Get)

	// manage console
	staff := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireStaff())
	staff.Post("/categories", cfg.Categories.Create)
	staff.Put("/categories/:id", cfg.Categories.Update)
	staff.Delete("/categories/:id", cfg.Categories.Delete)

	staff.Post("/dishes", cfg.Dishes.Create)
	staff.Put("/dishes/:id", cfg.Dishes.Update)
	staff.Delete("/dishes/:id", cfg.Dishes.Delete)

	staff.Get("/tables", cfg.Tables.List)
	staff.Get("/tables/:number", cfg.Tables.Get)
	staff.Post("/tables", cfg.Tables.Create)
	staff.Put("/tables/:number", cfg.Tables.Update)
	staff.Delete("/tables/:number", cfg.Tables.Delete)

	staff.Get("/orders", cfg.Orders.List)
	staff.Post("/orders", cfg.Orders.Create)
	staff.Get("/orders/:id", cfg.Orders.Get)
	staff.Put("/orders/:id", cfg.Orders.Update)
	staff.Post("/orders/pay", cfg.Orders.Pay)

	staff.Get("/accounts/me", cfg.Accounts.Me)
	staff.Post("/accounts/change-password", cfg.Accounts.ChangePassword)

	// account administration is owner-only
	owner := app.Group("/accounts", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleOwner))
	owner.Get("/", cfg.Accounts.List)
	owner.Get("/:id", cfg.Accounts.Get)
	owner.Post("/", cfg.Accounts.Create)
	owner.Put("/:id", cfg.Accounts.Update)
	owner.Delete("/:id", cfg.Accounts.Delete)
}
