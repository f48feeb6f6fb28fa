package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/andreyxaxa/Image-Ingestor/internal/dto"
	"github.com/andreyxaxa/Image-Ingestor/internal/entity"
	"github.com/google/uuid"
)

// Nop - журнал без postgres.
type Nop struct{}

func (Nop) Record(context.Context, *dto.Outcome) error {
	return nil
}

func newIngestion(outcome *dto.Outcome) *entity.Ingestion {
	ingestion := &entity.Ingestion{
		ID:          outcome.ID,
		Operation:   outcome.Operation,
		Width:       outcome.Width,
		Height:      outcome.Height,
		ArtifactKey: outcome.ArtifactKey,
		Status:      outcome.Status,
		CreatedAt:   time.Now(),
	}

	if outcome.Code != nil {
		format := outcome.Code.Format
		ingestion.CodeFormat = &format
	}

	return ingestion
}

func (uc *JournalUseCase) createOutboxEvent(ingestion *entity.Ingestion) (*entity.OutboxEvent, error) {
	payload := map[string]interface{}{
		"id":           ingestion.ID,
		"operation":    ingestion.Operation,
		"width":        ingestion.Width,
		"height":       ingestion.Height,
		"artifact_key": ingestion.ArtifactKey,
		"code_format":  ingestion.CodeFormat,
		"status":       ingestion.Status,
		"created_at":   ingestion.CreatedAt.Format(time.RFC3339Nano),
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("JournalUseCase - createOutboxEvent - json.Marshal: %w", err)
	}

	return &entity.OutboxEvent{
		ID:          uuid.New(),
		IngestionID: ingestion.ID,
		Payload:     b,
		Status:      entity.Pending,
		CreatedAt:   ingestion.CreatedAt,
		RetryCount:  0,
	}, nil
}
