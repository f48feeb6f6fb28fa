package infrastructure

import (
	"context"
	"image"

	"github.com/andreyxaxa/Image-Ingestor/internal/dto"
	"github.com/andreyxaxa/Image-Ingestor/internal/entity"
)

type (
	ImageProcessor interface {
		Decode(data []byte) (image.Image, string, error)
		Resize(img image.Image, width, height int) image.Image
		Grayscale(img image.Image) image.Image
		Encode(img image.Image, format string) ([]byte, string, error)
	}

	CodeReader interface {
		Read(ctx context.Context, img image.Image) (dto.Code, error)
	}

	EventsSender interface {
		SendEvents(ctx context.Context, events []*entity.OutboxEvent) error
		Close() error
	}
)
