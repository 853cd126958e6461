package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evaluaasi/support-gateway/internal/api/http/handlers"
	"github.com/evaluaasi/support-gateway/internal/auth"
	"github.com/evaluaasi/support-gateway/internal/domain"
	"github.com/evaluaasi/support-gateway/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Support        *handlers.SupportHandler
	AuthMiddleware *auth.AuthMiddleware
	AllowedRoles   []domain.Role
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if registry := cfg.Metrics.Registry(); registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	support := app.Group("/api/support", cfg.AuthMiddleware.Handle, auth.RequireRole(cfg.AllowedRoles...))

	support.Get("/campuses", cfg.Support.ListCampuses)
	support.Post("/campuses", cfg.Support.CreateCampus)
	support.Get("/partners", cfg.Support.ListPartners)

	support.Get("/tickets", cfg.Support.ListTickets)
	support.Get("/tickets/:id", cfg.Support.GetTicket)
	support.Patch("/tickets/:id", cfg.Support.UpdateTicketStatus)
	support.Post("/tickets/:id/notes", cfg.Support.AddNote)

	support.Get("/users", cfg.Support.SearchUsers)
	support.Post("/users/send-email", cfg.Support.SendEmail)

	support.Get("/calendar/sessions", cfg.Support.ListCalendarSessions)
}
