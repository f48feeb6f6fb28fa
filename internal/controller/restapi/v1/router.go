package v1

import (
	"github.com/andreyxaxa/Image-Ingestor/internal/usecase"
	"github.com/andreyxaxa/Image-Ingestor/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

func NewIngestRoutes(group fiber.Router, ing usecase.IngestUseCase, exposeText bool, l logger.Interface) {
	r := &V1{ing: ing, exposeText: exposeText, logger: l}

	{
		group.Post("/", r.ingest)
	}
}
