// Package clipboard publishes finished drawings to the system clipboard.
package clipboard

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// WriteImage encodes img as PNG and places it on the clipboard.
func WriteImage(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode clipboard image: %w", err)
	}
	return WritePNG(buf.Bytes())
}
