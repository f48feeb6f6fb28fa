package codereader

import (
	"context"
	"fmt"
	"image"

	"github.com/andreyxaxa/Image-Ingestor/internal/dto"
	"github.com/andreyxaxa/Image-Ingestor/pkg/types/errs"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
)

type CodeReader struct {
	tryHarder bool
}

func New(tryHarder bool) *CodeReader {
	return &CodeReader{tryHarder: tryHarder}
}

// QR, затем EAN-13 и Code 128
func (r *CodeReader) Read(ctx context.Context, img image.Image) (dto.Code, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return dto.Code{}, fmt.Errorf("CodeReader - Read - gozxing.NewBinaryBitmapFromImage: %w", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{}
	if r.tryHarder {
		hints[gozxing.DecodeHintType_TRY_HARDER] = true
	}

	// новый набор ридеров на каждый вызов
	readers := []gozxing.Reader{
		qrcode.NewQRCodeReader(),
		oned.NewEAN13Reader(),
		oned.NewCode128Reader(),
	}

	for _, reader := range readers {
		if err := ctx.Err(); err != nil {
			return dto.Code{}, fmt.Errorf("CodeReader - Read: %w", err)
		}

		result, err := reader.Decode(bmp, hints)
		if err != nil {
			continue
		}

		return dto.Code{
			Text:   result.GetText(),
			Format: result.GetBarcodeFormat().String(),
		}, nil
	}

	return dto.Code{}, fmt.Errorf("CodeReader - Read: %w", errs.ErrCodeNotFound)
}
