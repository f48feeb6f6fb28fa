package ingest

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/andreyxaxa/Image-Ingestor/internal/dto"
	"github.com/andreyxaxa/Image-Ingestor/internal/entity"
	"github.com/andreyxaxa/Image-Ingestor/internal/infrastructure/processor"
	"github.com/andreyxaxa/Image-Ingestor/pkg/logger"
	"github.com/andreyxaxa/Image-Ingestor/pkg/types/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOperation struct {
	status entity.Status
	err    error
	got    []dto.Ingestion

	// ждет дедлайна и только потом возвращает результат
	untilDeadline bool
}

func (o *fakeOperation) Name() string { return "fake" }

func (o *fakeOperation) Apply(ctx context.Context, in dto.Ingestion) (*dto.Outcome, error) {
	o.got = append(o.got, in)
	if o.untilDeadline {
		<-ctx.Done()
	}
	if o.err != nil {
		return nil, o.err
	}

	b := in.Image.Bounds()

	return &dto.Outcome{ID: in.ID, Operation: "fake", Status: o.status, Width: b.Dx(), Height: b.Dy()}, nil
}

type fakeJournal struct {
	err      error
	recorded []*dto.Outcome
	ctxErrs  []error
}

func (j *fakeJournal) Record(ctx context.Context, outcome *dto.Outcome) error {
	j.recorded = append(j.recorded, outcome)
	j.ctxErrs = append(j.ctxErrs, ctx.Err())

	return j.err
}

func dataURL(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func newUseCase(op *fakeOperation, j *fakeJournal) *IngestUseCase {
	return New(processor.New(), op, j, time.Second, logger.Nop())
}

func TestIngest(t *testing.T) {
	op := &fakeOperation{status: entity.Processed}
	j := &fakeJournal{}

	outcome, err := newUseCase(op, j).Ingest(context.Background(), dataURL(t, 33, 21))
	require.NoError(t, err)

	assert.Equal(t, 33, outcome.Width)
	assert.Equal(t, 21, outcome.Height)
	require.Len(t, op.got, 1)
	assert.Equal(t, "png", op.got[0].Format)
	assert.Equal(t, outcome.ID, op.got[0].ID)
	require.Len(t, j.recorded, 1)
	assert.Same(t, outcome, j.recorded[0])
}

func TestIngestUniqueIDs(t *testing.T) {
	op := &fakeOperation{status: entity.Processed}
	uc := newUseCase(op, &fakeJournal{})
	url := dataURL(t, 4, 4)

	first, err := uc.Ingest(context.Background(), url)
	require.NoError(t, err)
	second, err := uc.Ingest(context.Background(), url)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestIngestValidationChain(t *testing.T) {
	tests := []struct {
		name    string
		dataURL string
		want    error
	}{
		{name: "no comma", dataURL: "data:image/png;base64", want: errs.ErrInvalidDataURL},
		{name: "empty", dataURL: "", want: errs.ErrInvalidDataURL},
		{name: "bad base64", dataURL: "data:image/png;base64,@@@@", want: errs.ErrInvalidBase64},
		{name: "not an image", dataURL: "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hello")), want: errs.ErrUndecodableImage},
		{name: "empty payload", dataURL: "data:image/png;base64,", want: errs.ErrUndecodableImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := &fakeOperation{status: entity.Processed}
			j := &fakeJournal{}

			_, err := newUseCase(op, j).Ingest(context.Background(), tt.dataURL)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, op.got, "operation must not run")
			assert.Empty(t, j.recorded, "nothing is journaled before the operation")
		})
	}
}

func TestIngestCodeNotFound(t *testing.T) {
	op := &fakeOperation{status: entity.CodeNotFound}
	j := &fakeJournal{}

	outcome, err := newUseCase(op, j).Ingest(context.Background(), dataURL(t, 8, 8))
	assert.ErrorIs(t, err, errs.ErrCodeNotFound)
	require.NotNil(t, outcome)
	require.Len(t, j.recorded, 1)
	assert.Equal(t, entity.CodeNotFound, j.recorded[0].Status)
}

func TestIngestOperationError(t *testing.T) {
	boom := errors.New("boom")
	j := &fakeJournal{}

	_, err := newUseCase(&fakeOperation{err: boom}, j).Ingest(context.Background(), dataURL(t, 8, 8))
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, j.recorded)
}

func TestIngestJournalError(t *testing.T) {
	boom := errors.New("db down")

	_, err := newUseCase(&fakeOperation{status: entity.Processed}, &fakeJournal{err: boom}).
		Ingest(context.Background(), dataURL(t, 8, 8))
	assert.ErrorIs(t, err, boom)
}

func TestIngestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	op := &fakeOperation{status: entity.Processed}

	_, err := newUseCase(op, &fakeJournal{}).Ingest(ctx, dataURL(t, 8, 8))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, op.got)
}

func TestIngestJournalOutlivesProcessTimeout(t *testing.T) {
	op := &fakeOperation{status: entity.Processed, untilDeadline: true}
	j := &fakeJournal{}
	uc := New(processor.New(), op, j, 20*time.Millisecond, logger.Nop())

	outcome, err := uc.Ingest(context.Background(), dataURL(t, 8, 8))
	require.NoError(t, err)
	require.NotNil(t, outcome)

	require.Len(t, j.recorded, 1)
	assert.NoError(t, j.ctxErrs[0])
}
