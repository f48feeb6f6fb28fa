package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/andreyxaxa/Image-Ingestor/internal/dto"
	"github.com/andreyxaxa/Image-Ingestor/internal/entity"
	"github.com/andreyxaxa/Image-Ingestor/internal/infrastructure"
	"github.com/andreyxaxa/Image-Ingestor/internal/usecase"
	"github.com/andreyxaxa/Image-Ingestor/pkg/logger"
	"github.com/andreyxaxa/Image-Ingestor/pkg/types/errs"
	"github.com/google/uuid"
)

const _journalTimeout = 5 * time.Second

type IngestUseCase struct {
	p       infrastructure.ImageProcessor
	op      usecase.Operation
	journal usecase.Journal

	processTimeout time.Duration

	logger logger.Interface
}

func New(
	p infrastructure.ImageProcessor,
	op usecase.Operation,
	journal usecase.Journal,
	processTimeout time.Duration,
	l logger.Interface,
) *IngestUseCase {
	return &IngestUseCase{
		p:              p,
		op:             op,
		journal:        journal,
		processTimeout: processTimeout,
		logger:         l,
	}
}

func (uc *IngestUseCase) Ingest(ctx context.Context, dataURL string) (*dto.Outcome, error) {
	// 1. разбираем data url
	_, payload, err := parseDataURL(dataURL)
	if err != nil {
		return nil, fmt.Errorf("IngestUseCase - Ingest - parseDataURL: %w", err)
	}

	// 2. декодируем base64
	data, err := decodeBase64(payload)
	if err != nil {
		return nil, fmt.Errorf("IngestUseCase - Ingest - decodeBase64: %w", err)
	}

	if uc.processTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.processTimeout)
		defer cancel()
	}

	// 3. декодируем изображение
	img, format, err := uc.p.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("IngestUseCase - Ingest - uc.p.Decode: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("IngestUseCase - Ingest: %w", err)
	}

	id := uuid.New()
	bounds := img.Bounds()
	uc.logger.Info("IngestUseCase - Ingest - id=%s format=%s width=%d height=%d",
		id, format, bounds.Dx(), bounds.Dy())

	// 4. терминальная операция
	outcome, err := uc.op.Apply(ctx, dto.Ingestion{ID: id, Image: img, Format: format})
	if err != nil {
		return nil, fmt.Errorf("IngestUseCase - Ingest - uc.op.Apply: %w", err)
	}

	// 5. журнал, в том числе для промахов; без дедлайна запроса
	journalCtx, journalCancel := context.WithTimeout(context.WithoutCancel(ctx), _journalTimeout)
	defer journalCancel()

	err = uc.journal.Record(journalCtx, outcome)
	if err != nil {
		return nil, fmt.Errorf("IngestUseCase - Ingest - uc.journal.Record: %w", err)
	}

	if outcome.Status == entity.CodeNotFound {
		return outcome, fmt.Errorf("IngestUseCase - Ingest: %w", errs.ErrCodeNotFound)
	}

	return outcome, nil
}
