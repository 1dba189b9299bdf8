package render

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultGlyphSize is the point size used for sticker glyphs when none is
// configured.
const DefaultGlyphSize = 32

var (
	defaultFaceOnce sync.Once
	defaultFace     font.Face
)

// DefaultFace returns Go Regular at DefaultGlyphSize.
func DefaultFace() font.Face {
	defaultFaceOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			panic(fmt.Sprintf("parse embedded font: %v", err))
		}
		defaultFace, err = newFace(f, DefaultGlyphSize)
		if err != nil {
			panic(fmt.Sprintf("embedded font face: %v", err))
		}
	})
	return defaultFace
}

// LoadFace opens an OpenType or TrueType font file at the given size. An
// empty path selects the embedded Go Regular font.
func LoadFace(path string, size float64) (font.Face, error) {
	if size <= 0 {
		size = DefaultGlyphSize
	}
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		data = b
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", path, err)
	}
	return newFace(f, size)
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
}
