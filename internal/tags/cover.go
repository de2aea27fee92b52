package tags

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // cover art may be PNG

	"github.com/nfnt/resize"
)

// MaxCoverSize bounds the embedded cover art, in pixels per side.
const MaxCoverSize = 600

// NormalizeCover decodes cover art and re-encodes it as JPEG no larger
// than maxSide on either side. Smaller JPEG input is returned unchanged.
func NormalizeCover(data []byte, maxSide uint) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode cover: %w", err)
	}
	b := img.Bounds()
	fits := uint(b.Dx()) <= maxSide && uint(b.Dy()) <= maxSide //nolint:gosec // image bounds are non-negative
	if fits && format == "jpeg" {
		return data, nil
	}
	if !fits {
		img = resize.Thumbnail(maxSide, maxSide, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("encode cover: %w", err)
	}
	return buf.Bytes(), nil
}
