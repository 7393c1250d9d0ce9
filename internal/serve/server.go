// Package serve exposes the latest aggregated report over HTTP when the
// tool runs in serve mode.
package serve

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Dipendra15-cmd/weather-data-analyzer/internal/store"
)

// Server wraps the fiber app and the report store it reads from.
type Server struct {
	app   *fiber.App
	store *store.ReportStore
}

// New builds the fiber app with its routes.
func New(reports *store.ReportStore) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "weather-data-analyzer",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-data-analyzer",
		})
	})

	app.Get("/report", func(c *fiber.Ctx) error {
		rep, err := reports.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load report")
		}
		return c.JSON(rep.Flatten())
	})

	app.Get("/history", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"runs": reports.History(),
		})
	})

	return &Server{app: app, store: reports}
}

// Listen blocks serving on addr until the server is shut down.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
