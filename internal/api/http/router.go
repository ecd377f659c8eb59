package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alirazi1992/Update3-Ticketing/internal/api/http/handlers"
	"github.com/alirazi1992/Update3-Ticketing/internal/auth"
	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Categories     *handlers.CategoriesHandler
	Notifications  *handlers.NotificationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.AuthMiddleware.HandleOptional, cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	me := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	me.Get("/me", cfg.Users.Me)
	me.Put("/me", cfg.Users.UpdateProfile)
	me.Post("/change-password", cfg.Users.ChangePassword)

	users := api.Group("/users", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	users.Get("/", cfg.Users.List)
	users.Get("/technicians", cfg.Users.ListTechnicians)

	categories := api.Group("/categories")
	categories.Get("/", cfg.Categories.List)
	categories.Get("/:id", cfg.Categories.Get)

	categoryAdmin := categories.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	categoryAdmin.Post("/", cfg.Categories.Create)
	categoryAdmin.Put("/:id", cfg.Categories.Update)
	categoryAdmin.Post("/:id/subcategories", cfg.Categories.AddSubcategory)
	categoryAdmin.Delete("/:id", cfg.Categories.Delete)

	tickets := api.Group("/tickets", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	tickets.Post("/", auth.RequireRole(domain.RoleClient), cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Patch("/:id", cfg.Tickets.Update)
	tickets.Post("/:id/assign", auth.RequireRole(domain.RoleAdmin), cfg.Tickets.Assign)
	tickets.Get("/:id/messages", cfg.Tickets.ListMessages)
	tickets.Post("/:id/messages", cfg.Tickets.AddMessage)

	notifications := api.Group("/notifications", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	notifications.Get("/", cfg.Notifications.List)
	notifications.Patch("/:id/read", cfg.Notifications.MarkRead)
}
