package operation

import (
	"context"
	"fmt"

	"github.com/andreyxaxa/Image-Ingestor/internal/dto"
	"github.com/andreyxaxa/Image-Ingestor/internal/entity"
	"github.com/andreyxaxa/Image-Ingestor/internal/infrastructure"
	"github.com/andreyxaxa/Image-Ingestor/internal/repo"
	"github.com/andreyxaxa/Image-Ingestor/pkg/logger"
)

const artifactPrefix = "processed"

type ResizeOptions struct {
	Width     int
	Height    int
	Grayscale bool
	Format    string // file extension, "png" or "jpg"
}

type Resize struct {
	p         infrastructure.ImageProcessor
	artifacts repo.ArtifactRepo
	logger    logger.Interface

	opts ResizeOptions
}

func NewResize(p infrastructure.ImageProcessor, artifacts repo.ArtifactRepo, l logger.Interface, opts ResizeOptions) *Resize {
	if opts.Format == "" {
		opts.Format = "png"
	}

	return &Resize{
		p:         p,
		artifacts: artifacts,
		logger:    l,
		opts:      opts,
	}
}

func (o *Resize) Name() string {
	return entity.OperationResize
}

func (o *Resize) Apply(ctx context.Context, in dto.Ingestion) (*dto.Outcome, error) {
	bounds := in.Image.Bounds()

	out := &dto.Outcome{
		ID:        in.ID,
		Operation: entity.OperationResize,
		Status:    entity.Processed,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
	}

	o.logger.Debug("Resize - Apply - id=%s width=%d height=%d", in.ID, out.Width, out.Height)

	src := in.Image
	if o.opts.Grayscale {
		src = o.p.Grayscale(src)
	}

	resized := o.p.Resize(src, o.opts.Width, o.opts.Height)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("Resize - Apply: %w", err)
	}

	data, contentType, err := o.p.Encode(resized, o.opts.Format)
	if err != nil {
		return nil, fmt.Errorf("Resize - Apply - o.p.Encode: %w", err)
	}

	key := fmt.Sprintf("%s/%s.%s", artifactPrefix, in.ID, o.opts.Format)

	err = o.artifacts.Save(ctx, key, data, contentType)
	if err != nil {
		o.logger.Error(err, "Resize - Apply - o.artifacts.Save")
		out.Status = entity.StoreFailed

		return out, nil
	}

	o.logger.Info("Resize - Apply - stored key=%s", key)
	out.ArtifactKey = &key

	return out, nil
}
