package http

import (
	"context"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/smartcity/gateway/internal/domain"
	"github.com/smartcity/gateway/internal/service"
)

// Asker answers chat questions
type Asker interface {
	Ask(ctx context.Context, question string) (service.ChatResult, error)
}

// Prober reports backend reachability
type Prober interface {
	Check(ctx context.Context) service.Report
}

// Handler contains all HTTP handlers
type Handler struct {
	air      domain.AirQualityClient
	traffic  domain.TrafficClient
	mobility domain.MobilityClient
	energy   domain.EnergyClient
	chat     Asker
	prober   Prober
}

// Dependencies groups what the handlers need
type Dependencies struct {
	Air      domain.AirQualityClient
	Traffic  domain.TrafficClient
	Mobility domain.MobilityClient
	Energy   domain.EnergyClient
	Chat     Asker
	Prober   Prober
}

// NewHandler creates a new handler
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		air:      deps.Air,
		traffic:  deps.Traffic,
		mobility: deps.Mobility,
		energy:   deps.Energy,
		chat:     deps.Chat,
		prober:   deps.Prober,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "smartcity-gateway",
		"version": "1.0.0",
	})
}

// GetAirQuality proxies to the SOAP air backend
func (h *Handler) GetAirQuality(c *fiber.Ctx) error {
	city, err := pathParam(c, "city")
	if err != nil {
		return err
	}

	aq, err := h.air.GetAirQuality(c.Context(), city)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    aq,
	})
}

// GetTraffic proxies to the GraphQL traffic backend
func (h *Handler) GetTraffic(c *fiber.Ctx) error {
	roadID, err := pathParam(c, "roadId")
	if err != nil {
		return err
	}

	traffic, err := h.traffic.GetTraffic(c.Context(), roadID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    traffic,
	})
}

// ListTransports proxies to the REST mobility backend
func (h *Handler) ListTransports(c *fiber.Ctx) error {
	transports, err := h.mobility.ListTransports(c.Context())
	if err != nil {
		return err
	}
	if transports == nil {
		transports = []domain.Transport{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    transports,
		"count":   len(transports),
	})
}

// GetTransport returns one transport by id
func (h *Handler) GetTransport(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid transport id")
	}

	transport, err := h.mobility.GetTransport(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    transport,
	})
}

// GetEnergy proxies to the gRPC energy backend
func (h *Handler) GetEnergy(c *fiber.Ctx) error {
	buildingID, err := pathParam(c, "buildingId")
	if err != nil {
		return err
	}

	energy, err := h.energy.GetEnergy(c.Context(), buildingID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    energy,
	})
}

// Chat answers a free-text question. Backend and engine faults still yield
// a 200 with a degraded response.
func (h *Handler) Chat(c *fiber.Ctx) error {
	var req domain.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Question) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Question is required")
	}

	result, err := h.chat.Ask(c.Context(), req.Question)
	if err != nil {
		return err
	}

	return c.JSON(domain.ChatResponse{Response: result.Response})
}

// Status reports reachability of every backend
func (h *Handler) Status(c *fiber.Ctx) error {
	report := h.prober.Check(c.Context())

	return c.JSON(fiber.Map{
		"success": report.Healthy,
		"data":    report,
	})
}

// pathParam returns the unescaped, non-blank value of a route parameter
func pathParam(c *fiber.Ctx, name string) (string, error) {
	value, err := url.PathUnescape(c.Params(name))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	if strings.TrimSpace(value) == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, name+" is required")
	}
	return value, nil
}
