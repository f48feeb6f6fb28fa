package persistent

import (
	"context"
	"fmt"

	"github.com/andreyxaxa/Image-Ingestor/internal/entity"
	"github.com/andreyxaxa/Image-Ingestor/pkg/postgres"
)

const (
	// Table
	ingestionsTable = "ingestions"

	// Columns
	idColumn          = "id"
	operationColumn   = "operation"
	widthColumn       = "width"
	heightColumn      = "height"
	artifactKeyColumn = "artifact_key"
	codeFormatColumn  = "code_format"
	statusColumn      = "status"
	createdAtColumn   = "created_at"
)

type IngestionRepo struct {
	*postgres.Postgres
}

func NewIngestionRepo(pg *postgres.Postgres) *IngestionRepo {
	return &IngestionRepo{pg}
}

func (r *IngestionRepo) Create(ctx context.Context, ingestion *entity.Ingestion) error {
	sql, args, err := r.Builder.
		Insert(ingestionsTable).
		Columns(
			idColumn,
			operationColumn,
			widthColumn,
			heightColumn,
			artifactKeyColumn,
			codeFormatColumn,
			statusColumn,
			createdAtColumn,
		).
		Values(
			ingestion.ID,
			ingestion.Operation,
			ingestion.Width,
			ingestion.Height,
			ingestion.ArtifactKey,
			ingestion.CodeFormat,
			ingestion.Status,
			ingestion.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("IngestionRepo - Create - r.Builder.ToSql: %w", err)
	}

	// Pool / Tx
	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("IngestionRepo - Create - executor.Exec: %w", err)
	}

	return nil
}
