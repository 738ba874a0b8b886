package hosting

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// ImageHost uploads a base64-encoded image to a hosting provider and
// returns a publicly fetchable URL for it.
type ImageHost interface {
	Upload(ctx context.Context, imageBase64 string) (string, error)
}

// stripDataURI drops a leading "data:image/...;base64," prefix, which the
// extension includes when it captures images from a canvas.
func stripDataURI(imageBase64 string) string {
	if i := strings.Index(imageBase64, ";base64,"); i >= 0 {
		return imageBase64[i+len(";base64,"):]
	}
	return imageBase64
}

// decodeImage decodes the payload after stripping a data-URI prefix.
func decodeImage(imageBase64 string) ([]byte, error) {
	raw := stripDataURI(strings.TrimSpace(imageBase64))
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		// some encoders omit padding
		if data, rawErr := base64.RawStdEncoding.DecodeString(raw); rawErr == nil {
			return data, nil
		}
		return nil, fmt.Errorf("decode base64 image: %w", err)
	}
	return data, nil
}
