package processor

import (
	"bytes"
	"fmt"
	"image"

	"github.com/andreyxaxa/Image-Ingestor/pkg/types/errs"
	"github.com/disintegration/imaging"

	// jpeg, png, gif, bmp and tiff come with imaging
	_ "golang.org/x/image/webp"
)

const _defaultMaxPixels = 50_000_000

type ImageProcessor struct {
	maxPixels int
}

func New(opts ...Option) *ImageProcessor {
	p := &ImageProcessor{
		maxPixels: _defaultMaxPixels,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *ImageProcessor) Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("ImageProcessor - Decode: empty data: %w", errs.ErrUndecodableImage)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("ImageProcessor - Decode - image.DecodeConfig: %w: %w", errs.ErrUndecodableImage, err)
	}

	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > int64(p.maxPixels) {
		return nil, "", fmt.Errorf("ImageProcessor - Decode: %dx%d exceeds %d pixels: %w",
			cfg.Width, cfg.Height, p.maxPixels, errs.ErrUndecodableImage)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("ImageProcessor - Decode - imaging.Decode: %w: %w", errs.ErrUndecodableImage, err)
	}

	return img, format, nil
}

func (p *ImageProcessor) Resize(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

func (p *ImageProcessor) Grayscale(img image.Image) image.Image {
	return imaging.Grayscale(img)
}

// format - расширение без точки
func (p *ImageProcessor) Encode(img image.Image, format string) ([]byte, string, error) {
	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return nil, "", fmt.Errorf("ImageProcessor - Encode - imaging.FormatFromExtension: %w", err)
	}

	var buf bytes.Buffer

	err = imaging.Encode(&buf, img, f)
	if err != nil {
		return nil, "", fmt.Errorf("ImageProcessor - Encode - imaging.Encode: %w", err)
	}

	return buf.Bytes(), contentType(f), nil
}

func contentType(f imaging.Format) string {
	switch f {
	case imaging.JPEG:
		return "image/jpeg"
	case imaging.PNG:
		return "image/png"
	case imaging.GIF:
		return "image/gif"
	case imaging.TIFF:
		return "image/tiff"
	case imaging.BMP:
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}
