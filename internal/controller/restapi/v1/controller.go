package v1

import (
	"github.com/andreyxaxa/Image-Ingestor/internal/usecase"
	"github.com/andreyxaxa/Image-Ingestor/pkg/logger"
)

type V1 struct {
	ing        usecase.IngestUseCase
	exposeText bool
	logger     logger.Interface
}
