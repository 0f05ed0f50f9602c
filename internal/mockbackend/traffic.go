package mockbackend

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/smartcity/gateway/internal/repository/memory"
)

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// NewTrafficApp serves the getTraffic query at POST /graphql.
// Only the getTraffic field is supported; it is not a general GraphQL engine.
func NewTrafficApp(logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{AppName: "Service Trafic (GraphQL)", DisableStartupMessage: true})

	app.Post("/graphql", func(c *fiber.Ctx) error {
		var req graphQLRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(graphQLError("invalid request body"))
		}
		if !strings.Contains(req.Query, "getTraffic") {
			return c.JSON(graphQLError("Cannot query field on type \"Query\"."))
		}

		roadID, _ := req.Variables["roadId"].(string)
		logger.Debug("traffic request", "road_id", roadID)

		row, ok := memory.LookupTraffic(roadID)
		if !ok {
			return c.JSON(fiber.Map{"data": fiber.Map{"getTraffic": nil}})
		}
		return c.JSON(fiber.Map{"data": fiber.Map{"getTraffic": fiber.Map{
			"roadId":          row.RoadID,
			"congestionLevel": row.CongestionLevel,
			"averageSpeed":    row.AverageSpeed,
		}}})
	})

	return app
}

func graphQLError(message string) fiber.Map {
	return fiber.Map{
		"data":   nil,
		"errors": []fiber.Map{{"message": message}},
	}
}
