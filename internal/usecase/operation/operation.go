package operation

import (
	"fmt"

	"github.com/andreyxaxa/Image-Ingestor/internal/entity"
	"github.com/andreyxaxa/Image-Ingestor/internal/infrastructure"
	"github.com/andreyxaxa/Image-Ingestor/internal/repo"
	"github.com/andreyxaxa/Image-Ingestor/internal/usecase"
	"github.com/andreyxaxa/Image-Ingestor/pkg/logger"
	"github.com/andreyxaxa/Image-Ingestor/pkg/types/errs"
)

type Deps struct {
	Processor infrastructure.ImageProcessor
	Artifacts repo.ArtifactRepo
	Reader    infrastructure.CodeReader
	Logger    logger.Interface

	Resize ResizeOptions
}

func New(name string, d Deps) (usecase.Operation, error) {
	switch name {
	case entity.OperationResize:
		if d.Processor == nil || d.Artifacts == nil {
			return nil, fmt.Errorf("operation - New - %s: processor and artifacts are required", name)
		}

		return NewResize(d.Processor, d.Artifacts, d.Logger, d.Resize), nil
	case entity.OperationQRCode:
		if d.Reader == nil {
			return nil, fmt.Errorf("operation - New - %s: code reader is required", name)
		}

		return NewQRCode(d.Reader, d.Logger), nil
	default:
		return nil, fmt.Errorf("operation - New - %q: %w", name, errs.ErrUnknownOperation)
	}
}
