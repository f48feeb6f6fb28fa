package restapi

import (
	"net/http"

	"github.com/andreyxaxa/Image-Ingestor/config"
	v1 "github.com/andreyxaxa/Image-Ingestor/internal/controller/restapi/v1"
	"github.com/andreyxaxa/Image-Ingestor/internal/usecase"
	"github.com/andreyxaxa/Image-Ingestor/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// @title Image ingestor
// @version 1.0.0
// @host localhost:8080
// @BasePath /
func NewRouter(app *fiber.App, cfg *config.Config, ing usecase.IngestUseCase, l logger.Interface) {
	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// Health
	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	// Routers
	v1.NewIngestRoutes(app, ing, cfg.QRCode.ExposeText, l)
}
