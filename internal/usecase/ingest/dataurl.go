package ingest

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode"

	"github.com/andreyxaxa/Image-Ingestor/pkg/types/errs"
)

// parseDataURL режет строку по первой запятой.
func parseDataURL(s string) (string, string, error) {
	header, payload, ok := strings.Cut(s, ",")
	if !ok {
		return "", "", fmt.Errorf("parseDataURL: %w", errs.ErrInvalidDataURL)
	}

	return header, payload, nil
}

// decodeBase64 требует стандартный алфавит с паддингом, пробельные символы
// отбрасываются.
func decodeBase64(payload string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, payload)

	data, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("decodeBase64 - base64.StdEncoding.DecodeString: %w: %w", errs.ErrInvalidBase64, err)
	}

	return data, nil
}
