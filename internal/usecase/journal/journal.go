package journal

import (
	"context"
	"fmt"

	"github.com/andreyxaxa/Image-Ingestor/internal/dto"
	"github.com/andreyxaxa/Image-Ingestor/internal/entity"
	"github.com/andreyxaxa/Image-Ingestor/internal/repo"
	"github.com/andreyxaxa/Image-Ingestor/pkg/logger"
	"github.com/google/uuid"
)

type JournalUseCase struct {
	ingestionRepo repo.IngestionRepo
	outboxRepo    repo.OutboxRepo
	transactor    repo.Transactor

	logger logger.Interface
}

func New(
	ingestionRepo repo.IngestionRepo,
	outboxRepo repo.OutboxRepo,
	transactor repo.Transactor,
	l logger.Interface,
) *JournalUseCase {
	return &JournalUseCase{
		ingestionRepo: ingestionRepo,
		outboxRepo:    outboxRepo,
		transactor:    transactor,
		logger:        l,
	}
}

// Record - ингестия и событие аутбокса одной транзакцией, без распознанного текста.
func (uc *JournalUseCase) Record(ctx context.Context, outcome *dto.Outcome) error {
	ingestion := newIngestion(outcome)

	event, err := uc.createOutboxEvent(ingestion)
	if err != nil {
		return fmt.Errorf("JournalUseCase - Record - uc.createOutboxEvent: %w", err)
	}

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		// 1. основная таблица
		if err := uc.ingestionRepo.Create(ctx, ingestion); err != nil {
			return fmt.Errorf("JournalUseCase - Record - uc.ingestionRepo.Create: %w", err)
		}

		// 2. аутбокс
		if err := uc.outboxRepo.Create(ctx, event); err != nil {
			return fmt.Errorf("JournalUseCase - Record - uc.outboxRepo.Create: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("JournalUseCase - Record - uc.transactor.WithinTransaction: %w", err)
	}

	uc.logger.Debug("JournalUseCase - Record - ingestion %s status %s, event %s", ingestion.ID, ingestion.Status, event.ID)

	return nil
}

func (uc *JournalUseCase) GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error) {
	events, err := uc.outboxRepo.GetPendingEvents(ctx, limit, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("JournalUseCase - GetPendingEvents - uc.outboxRepo.GetPendingEvents: %w", err)
	}

	return events, nil
}

func (uc *JournalUseCase) MarkAsProcessingBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outboxRepo.MarkAsProcessingBatch(ctx, eventIDs(events))
	if err != nil {
		return fmt.Errorf("JournalUseCase - MarkAsProcessingBatch - uc.outboxRepo.MarkAsProcessingBatch: %w", err)
	}

	return nil
}

func (uc *JournalUseCase) MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outboxRepo.MarkAsProcessedBatch(ctx, eventIDs(events))
	if err != nil {
		return fmt.Errorf("JournalUseCase - MarkAsProcessedBatch - uc.outboxRepo.MarkAsProcessedBatch: %w", err)
	}

	return nil
}

func (uc *JournalUseCase) IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outboxRepo.IncrementRetryCountBatch(ctx, eventIDs(events))
	if err != nil {
		return fmt.Errorf("JournalUseCase - IncrementRetryCountBatch - uc.outboxRepo.IncrementRetryCountBatch: %w", err)
	}

	return nil
}

func (uc *JournalUseCase) MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) (int64, error) {
	count, err := uc.outboxRepo.MarkMaxRetriesAsFailed(ctx, maxRetries)
	if err != nil {
		return 0, fmt.Errorf("JournalUseCase - MarkMaxRetriesAsFailed - uc.outboxRepo.MarkMaxRetriesAsFailed: %w", err)
	}

	return count, nil
}

func (uc *JournalUseCase) CleanupOutbox(ctx context.Context) (int64, error) {
	count, err := uc.outboxRepo.DeleteOldProcessedAndFailed(ctx)
	if err != nil {
		return 0, fmt.Errorf("JournalUseCase - CleanupOutbox - uc.outboxRepo.DeleteOldProcessedAndFailed: %w", err)
	}

	return count, nil
}

func eventIDs(events []*entity.OutboxEvent) uuid.UUIDs {
	IDs := make(uuid.UUIDs, 0, len(events))

	for _, event := range events {
		IDs = append(IDs, event.ID)
	}

	return IDs
}
