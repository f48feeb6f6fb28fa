package repo

import (
	"context"

	"github.com/andreyxaxa/Image-Ingestor/internal/entity"
	"github.com/google/uuid"
)

type (
	ArtifactRepo interface {
		Save(ctx context.Context, key string, data []byte, contentType string) error
	}

	IngestionRepo interface {
		Create(ctx context.Context, ingestion *entity.Ingestion) error
	}

	OutboxRepo interface {
		Create(ctx context.Context, event *entity.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int, maxRetries int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkAsProcessedBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) (int64, error)
		IncrementRetryCountBatch(ctx context.Context, IDs uuid.UUIDs) error
		DeleteOldProcessedAndFailed(ctx context.Context) (int64, error)
	}

	Transactor interface {
		WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error
	}
)
