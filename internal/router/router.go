package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/kevinmilly/yt-breeze/internal/handler"
	"github.com/kevinmilly/yt-breeze/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Analyze *handler.AnalyzeHandler
	Health  *handler.HealthHandler
	Stats   *handler.StatsHandler
}

// Setup configures the middleware stack and all API routes on the given
// Fiber app. OPTIONS preflights are answered by the CORS middleware.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics (outside the API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")
	api.Post("/summarize", h.Analyze.Summarize)
	api.Get("/stats", h.Stats.GetStats)
}
