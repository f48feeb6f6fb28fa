package operation

import (
	"context"
	"errors"
	"fmt"

	"github.com/andreyxaxa/Image-Ingestor/internal/dto"
	"github.com/andreyxaxa/Image-Ingestor/internal/entity"
	"github.com/andreyxaxa/Image-Ingestor/internal/infrastructure"
	"github.com/andreyxaxa/Image-Ingestor/pkg/logger"
	"github.com/andreyxaxa/Image-Ingestor/pkg/types/errs"
)

type QRCode struct {
	reader infrastructure.CodeReader
	logger logger.Interface
}

func NewQRCode(reader infrastructure.CodeReader, l logger.Interface) *QRCode {
	return &QRCode{
		reader: reader,
		logger: l,
	}
}

func (o *QRCode) Name() string {
	return entity.OperationQRCode
}

func (o *QRCode) Apply(ctx context.Context, in dto.Ingestion) (*dto.Outcome, error) {
	bounds := in.Image.Bounds()

	out := &dto.Outcome{
		ID:        in.ID,
		Operation: entity.OperationQRCode,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
	}

	code, err := o.reader.Read(ctx, in.Image)
	if err != nil {
		if errors.Is(err, errs.ErrCodeNotFound) {
			o.logger.Info("QRCode - Apply - no code found id=%s", in.ID)
			out.Status = entity.CodeNotFound

			return out, nil
		}

		return nil, fmt.Errorf("QRCode - Apply - o.reader.Read: %w", err)
	}

	o.logger.Info("QRCode - Apply - id=%s format=%s text=%q", in.ID, code.Format, code.Text)

	out.Status = entity.Processed
	out.Code = &code

	return out, nil
}
