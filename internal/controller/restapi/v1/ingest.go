package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/andreyxaxa/Image-Ingestor/internal/controller/restapi/v1/request"
	"github.com/andreyxaxa/Image-Ingestor/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/Image-Ingestor/internal/entity"
	"github.com/andreyxaxa/Image-Ingestor/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
)

// @Summary  	Ingest image
// @Description Decodes a base64 data URL image and runs the configured operation (resize or qrcode)
// @Tags 		images
// @Accept 		json
// @Produce 	json
// @Param 		request body request.Ingest true "Data URL image"
// @Success 	200 {object} response.Resize "resize operation"
// @Success 	200 {object} response.QRCode "qrcode operation"
// @Failure 	400 {object} response.Error "Missing image, bad data URL, bad base64, unreadable image or no code"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/ [post]
func (r *V1) ingest(ctx *fiber.Ctx) error {
	// 1. тело запроса
	var req request.Ingest

	err := json.Unmarshal(ctx.Body(), &req)
	if err != nil || req.Image == nil {
		return errorResponse(ctx, http.StatusBadRequest, msgMissingImage)
	}

	// 2. валидация и обработка
	outcome, err := r.ing.Ingest(ctx.UserContext(), *req.Image)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidDataURL):
			return errorResponse(ctx, http.StatusBadRequest, msgInvalidDataURL)
		case errors.Is(err, errs.ErrInvalidBase64):
			return errorResponse(ctx, http.StatusBadRequest, msgInvalidBase64)
		case errors.Is(err, errs.ErrUndecodableImage):
			r.logger.Debug(err, "restapi - v1 - ingest")

			return errorResponse(ctx, http.StatusBadRequest, msgUndecodableImage)
		case errors.Is(err, errs.ErrCodeNotFound):
			return errorResponse(ctx, http.StatusBadRequest, msgCodeNotFound)
		}

		r.logger.Error(err, "restapi - v1 - ingest")

		return errorResponse(ctx, http.StatusInternalServerError, msgInternal)
	}

	// 3. ответ
	switch outcome.Operation {
	case entity.OperationQRCode:
		resp := response.QRCode{
			Message: msgCodeDecode,
			ID:      outcome.ID.String(),
		}
		if r.exposeText && outcome.Code != nil {
			resp.Text = outcome.Code.Text
			resp.Format = outcome.Code.Format
		}

		return ctx.Status(http.StatusOK).JSON(resp)
	default:
		return ctx.Status(http.StatusOK).JSON(response.Resize{
			Message: msgResized,
			Width:   outcome.Width,
			Height:  outcome.Height,
			ID:      outcome.ID.String(),
		})
	}
}
