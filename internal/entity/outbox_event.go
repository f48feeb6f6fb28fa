package entity

import (
	"time"

	"github.com/google/uuid"
)

// OutboxEvent - событие об ингестии, ожидающее отправки в kafka.
// Payload - json без распознанного текста.
type OutboxEvent struct {
	ID          uuid.UUID  `json:"id"`
	IngestionID uuid.UUID  `json:"ingestion_id"`
	Payload     []byte     `json:"payload"`
	Status      Status     `json:"status"` // pending, processing, processed, failed
	RetryCount  int        `json:"retry_count"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}
