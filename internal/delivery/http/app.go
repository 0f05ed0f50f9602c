package http

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/smartcity/gateway/internal/adapter"
	"github.com/smartcity/gateway/internal/domain"
)

// AppConfig tunes the Fiber application
type AppConfig struct {
	// WriteTimeout must outlast the inference timeout, chat answers can be slow
	WriteTimeout time.Duration
	AccessLog    bool
	Logger       *slog.Logger
}

// NewApp creates the Fiber application with the gateway middleware stack
func NewApp(cfg AppConfig) *fiber.App {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 130 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	app := fiber.New(fiber.Config{
		AppName:               "SmartCity Gateway v1.0",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler:          newErrorHandler(cfg.Logger),
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${locals:requestid} ${status} - ${method} ${path} (${latency})\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	return app
}

// StatusFor maps a backend fault to the HTTP status of a direct endpoint
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindProtocolFault:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusServiceUnavailable
	}
}

func newErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var fe *fiber.Error
		var be *domain.BackendError
		switch {
		case errors.As(err, &fe):
			code = fe.Code
			message = fe.Message
		case errors.As(err, &be):
			code = StatusFor(be.Kind)
			message = be.Error()
		case errors.Is(err, adapter.ErrEmptyKey):
			code = fiber.StatusBadRequest
			message = err.Error()
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("request failed",
				"method", c.Method(),
				"path", c.Path(),
				"status", code,
				"error", err,
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error":   true,
			"message": message,
		})
	}
}
