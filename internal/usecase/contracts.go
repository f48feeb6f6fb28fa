package usecase

import (
	"context"

	"github.com/andreyxaxa/Image-Ingestor/internal/dto"
	"github.com/andreyxaxa/Image-Ingestor/internal/entity"
)

type (
	IngestUseCase interface {
		Ingest(ctx context.Context, dataURL string) (*dto.Outcome, error)
	}

	Operation interface {
		Name() string
		Apply(ctx context.Context, in dto.Ingestion) (*dto.Outcome, error)
	}

	Journal interface {
		Record(ctx context.Context, outcome *dto.Outcome) error
	}

	OutboxUseCase interface {
		GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error
		IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) (int64, error)
		CleanupOutbox(ctx context.Context) (int64, error)
	}
)
