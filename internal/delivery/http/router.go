package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/smartcity/gateway/internal/metrics"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, deps Dependencies, m *metrics.Metrics) {
	handler := NewHandler(deps)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// Prometheus exposition
	if m != nil {
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}

	api := app.Group("/api")
	{
		// Direct backend endpoints
		api.Get("/air/:city", handler.GetAirQuality)
		api.Get("/traffic/:roadId", handler.GetTraffic)
		api.Get("/mobility", handler.ListTransports)
		api.Get("/mobility/:id", handler.GetTransport)
		api.Get("/energy/:buildingId", handler.GetEnergy)

		// Conversational endpoint
		api.Post("/chat", handler.Chat)

		// Backend diagnostics
		api.Get("/status", handler.Status)
	}
}
