package mockbackend

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/smartcity/gateway/internal/domain"
)

type transportBody struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	Line        string `json:"ligne"`
	Destination string `json:"destination"`
	Status      string `json:"status"`
}

func toBody(t domain.Transport) transportBody {
	return transportBody{ID: t.ID, Type: t.Type, Line: t.Line, Destination: t.Destination, Status: t.Status}
}

// NewMobilityApp serves CRUD on /transports backed by repo
func NewMobilityApp(repo domain.TransportRepository, logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{AppName: "Service Mobilité (REST)", DisableStartupMessage: true})

	transports := app.Group("/transports")

	transports.Get("/", func(c *fiber.Ctx) error {
		all, err := repo.List(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		out := make([]transportBody, 0, len(all))
		for _, t := range all {
			out = append(out, toBody(t))
		}
		return c.JSON(out)
	})

	transports.Get("/:id<int>", func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")
		t, ok, err := repo.Get(c.UserContext(), id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Transport non trouvé"})
		}
		return c.JSON(toBody(t))
	})

	transports.Post("/", func(c *fiber.Ctx) error {
		var body transportBody
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": err.Error()})
		}
		t, err := repo.Add(c.UserContext(), domain.Transport{
			ID: body.ID, Type: body.Type, Line: body.Line, Destination: body.Destination, Status: body.Status,
		})
		if err != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"detail": err.Error()})
		}
		logger.Info("transport added", "id", t.ID, "destination", t.Destination)
		return c.JSON(toBody(t))
	})

	transports.Delete("/:id<int>", func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")
		if err := repo.Delete(c.UserContext(), id); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"message": "Transport supprimé"})
	})

	return app
}
