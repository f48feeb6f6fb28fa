package dto

import (
	"image"

	"github.com/andreyxaxa/Image-Ingestor/internal/entity"
	"github.com/google/uuid"
)

type Ingestion struct {
	ID     uuid.UUID
	Image  image.Image
	Format string
}

type Code struct {
	Text   string
	Format string
}

type Outcome struct {
	ID        uuid.UUID
	Operation string
	Status    entity.Status

	Width  int
	Height int

	// resize
	ArtifactKey *string

	// qrcode
	Code *Code
}
