package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"

	"github.com/disintegration/imaging"
)

// LoadImage opens and decodes a page image from disk. Supported formats are
// PNG, JPEG, and GIF.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// DecodeImage decodes an in-memory encoded image (PNG, JPEG, or GIF).
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image bytes: %w", err)
	}
	return img, nil
}

// normalize reformats arbitrary decoded input into the single-channel
// representation the oracles consume. Color is discarded up front so every
// downstream stage sees the same pixels.
func normalize(img image.Image) *image.NRGBA {
	return imaging.Grayscale(img)
}
