package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/callback-service/internal/api/http/handlers"
	"github.com/spec-kit/callback-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Callbacks      *handlers.CallbacksHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Get("/agents", cfg.Auth.Roster)
	authGroup.Post("/agents/login", cfg.Auth.Login)
	authGroup.Post("/admin/unlock", cfg.Auth.Unlock)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	agentGroup := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAgent())
	agentGroup.Post("/callbacks", cfg.Callbacks.Submit)
	agentGroup.Get("/callbacks", cfg.Callbacks.ListOwn)
	agentGroup.Get("/callbacks/stats", cfg.Callbacks.Stats)
	agentGroup.Put("/callbacks/:id", cfg.Callbacks.Edit)
	agentGroup.Post("/checks", cfg.Callbacks.SubmitCheck)
	agentGroup.Get("/checks", cfg.Callbacks.ListChecks)

	adminGroup := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	adminGroup.Get("/callbacks", cfg.Admin.ListCallbacks)
	adminGroup.Get("/callbacks/stats", cfg.Admin.CallbackStats)
	adminGroup.Get("/checks", cfg.Admin.ListChecks)
	adminGroup.Get("/checks/stats", cfg.Admin.CheckStats)
	adminGroup.Get("/agents", cfg.Admin.ListAgents)
	adminGroup.Post("/agents", cfg.Admin.AddAgent)
}
