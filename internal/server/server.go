package server

import (
	"log"
	"os"
	"path/filepath"

	"product-guide-be/internal/bootstrap"
	"product-guide-be/internal/config"
	"product-guide-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024, // 1MB, chat payloads are tiny
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.App.CorsAllowedOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept",
		AllowMethods:  "GET, POST, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Type",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Widget assets load from /static/*, index.html is served at /.
	app.Static("/static", cfg.App.WebDir)

	registerRoutes(app, cfg, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"ok": true})
	})

	app.Get("/", func(ctx *fiber.Ctx) error {
		indexPath := filepath.Join(cfg.App.WebDir, "index.html")
		if _, err := os.Stat(indexPath); err != nil {
			return ctx.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"detail": "UI not found. Put your index.html under /web."})
		}
		return ctx.SendFile(indexPath)
	})

	c.ChatController.RegisterRoutes(app)

	api := app.Group("/api")
	c.CatalogController.RegisterRoutes(api)
}
