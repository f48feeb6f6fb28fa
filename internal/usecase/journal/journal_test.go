package journal

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/andreyxaxa/Image-Ingestor/internal/dto"
	"github.com/andreyxaxa/Image-Ingestor/internal/entity"
	"github.com/andreyxaxa/Image-Ingestor/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIngestionRepo struct {
	err     error
	created []*entity.Ingestion
}

func (r *fakeIngestionRepo) Create(_ context.Context, ingestion *entity.Ingestion) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, ingestion)

	return nil
}

type fakeOutboxRepo struct {
	err     error
	created []*entity.OutboxEvent

	pendingLimit, pendingMaxRetries int
	processing, processed, retried  uuid.UUIDs
	deleted, failed                 int64
}

func (r *fakeOutboxRepo) Create(_ context.Context, event *entity.OutboxEvent) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, event)

	return nil
}

func (r *fakeOutboxRepo) GetPendingEvents(_ context.Context, limit int, maxRetries int) ([]*entity.OutboxEvent, error) {
	r.pendingLimit, r.pendingMaxRetries = limit, maxRetries

	return r.created, r.err
}

func (r *fakeOutboxRepo) MarkAsProcessingBatch(_ context.Context, IDs uuid.UUIDs) error {
	r.processing = IDs

	return r.err
}

func (r *fakeOutboxRepo) MarkAsProcessedBatch(_ context.Context, IDs uuid.UUIDs) error {
	r.processed = IDs

	return r.err
}

func (r *fakeOutboxRepo) MarkMaxRetriesAsFailed(context.Context, int) (int64, error) {
	return r.failed, r.err
}

func (r *fakeOutboxRepo) IncrementRetryCountBatch(_ context.Context, IDs uuid.UUIDs) error {
	r.retried = IDs

	return r.err
}

func (r *fakeOutboxRepo) DeleteOldProcessedAndFailed(context.Context) (int64, error) {
	return r.deleted, r.err
}

// fakeTransactor runs f in place.
type fakeTransactor struct {
	calls int
}

func (tr *fakeTransactor) WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error {
	tr.calls++

	return f(ctx)
}

func TestRecord(t *testing.T) {
	ingestions := &fakeIngestionRepo{}
	outbox := &fakeOutboxRepo{}
	tr := &fakeTransactor{}
	uc := New(ingestions, outbox, tr, logger.Nop())

	key := "processed/x.png"
	outcome := &dto.Outcome{
		ID:          uuid.New(),
		Operation:   "qrcode",
		Status:      entity.Processed,
		Width:       640,
		Height:      480,
		ArtifactKey: &key,
		Code:        &dto.Code{Text: "secret", Format: "QR_CODE"},
	}

	require.NoError(t, uc.Record(context.Background(), outcome))
	assert.Equal(t, 1, tr.calls)

	require.Len(t, ingestions.created, 1)
	ing := ingestions.created[0]
	assert.Equal(t, outcome.ID, ing.ID)
	assert.Equal(t, 640, ing.Width)
	require.NotNil(t, ing.CodeFormat)
	assert.Equal(t, "QR_CODE", *ing.CodeFormat)

	require.Len(t, outbox.created, 1)
	ev := outbox.created[0]
	assert.Equal(t, outcome.ID, ev.IngestionID)
	assert.Equal(t, entity.Pending, ev.Status)
	assert.NotContains(t, string(ev.Payload), "secret")

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(ev.Payload, &payload))
	assert.Equal(t, "qrcode", payload["operation"])
	assert.Equal(t, key, payload["artifact_key"])
	assert.EqualValues(t, 480, payload["height"])
}

func TestRecordRepoError(t *testing.T) {
	boom := errors.New("insert failed")
	outbox := &fakeOutboxRepo{}
	uc := New(&fakeIngestionRepo{err: boom}, outbox, &fakeTransactor{}, logger.Nop())

	err := uc.Record(context.Background(), &dto.Outcome{ID: uuid.New(), Status: entity.StoreFailed})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, outbox.created)
}

func TestOutboxBatches(t *testing.T) {
	outbox := &fakeOutboxRepo{deleted: 4, failed: 2}
	uc := New(&fakeIngestionRepo{}, outbox, &fakeTransactor{}, logger.Nop())
	events := []*entity.OutboxEvent{{ID: uuid.New()}, {ID: uuid.New()}}

	_, err := uc.GetPendingEvents(context.Background(), 3, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, outbox.pendingLimit)
	assert.Equal(t, 3, outbox.pendingMaxRetries)

	require.NoError(t, uc.MarkAsProcessingBatch(context.Background(), events))
	require.NoError(t, uc.MarkAsProcessedBatch(context.Background(), events))
	require.NoError(t, uc.IncrementRetryCountBatch(context.Background(), events))

	deleted, err := uc.CleanupOutbox(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)

	failed, err := uc.MarkMaxRetriesAsFailed(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), failed)

	want := uuid.UUIDs{events[0].ID, events[1].ID}
	assert.Equal(t, want, outbox.processing)
	assert.Equal(t, want, outbox.processed)
	assert.Equal(t, want, outbox.retried)
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Record(context.Background(), &dto.Outcome{}))
}
