package errs

import "errors"

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrUnknownOperation = errors.New("unknown operation")

	// Ingestion validation chain.
	ErrMissingImage     = errors.New("missing image data")
	ErrInvalidDataURL   = errors.New("invalid data url format")
	ErrInvalidBase64    = errors.New("invalid base64 data")
	ErrUndecodableImage = errors.New("could not open image")
	ErrCodeNotFound     = errors.New("could not read code in image")
)
