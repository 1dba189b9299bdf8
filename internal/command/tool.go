package command

import "fmt"

// Kind tags the variant of a Tool.
type Kind int

const (
	KindLine Kind = iota
	KindSticker
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindSticker:
		return "sticker"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Tool is what the next pointer-down will draw: a line of a fixed width or
// a sticker with a fixed glyph.
type Tool struct {
	Name  string
	Kind  Kind
	Width float64
	Glyph string
}

// LineTool returns a pen drawing strokes of the given width.
func LineTool(name string, width float64) Tool {
	return Tool{Name: name, Kind: KindLine, Width: width}
}

// StickerTool returns a stamp placing glyph.
func StickerTool(name, glyph string) Tool {
	return Tool{Name: name, Kind: KindSticker, Glyph: glyph}
}

// Label is the short text shown on a toolbar button.
func (t Tool) Label() string {
	switch t.Kind {
	case KindLine:
		return fmt.Sprintf("%gpx", t.Width)
	case KindSticker:
		return t.Glyph
	}
	return t.Name
}

func (t Tool) String() string {
	switch t.Kind {
	case KindLine:
		return fmt.Sprintf("%s (line %g)", t.Name, t.Width)
	case KindSticker:
		return fmt.Sprintf("%s (sticker %s)", t.Name, t.Glyph)
	}
	return t.Name
}
