package entity

import (
	"time"

	"github.com/google/uuid"
)

type Ingestion struct {
	ID        uuid.UUID `json:"id"`
	Operation string    `json:"operation"` // resize, qrcode

	// original dimensions
	Width  int `json:"width"`
	Height int `json:"height"`

	ArtifactKey *string `json:"artifact_key,omitempty"`
	CodeFormat  *string `json:"code_format,omitempty"`

	Status    Status    `json:"status"` // processed, store_failed, code_not_found
	CreatedAt time.Time `json:"created_at"`
}
