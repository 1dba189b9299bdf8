package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/quaintpaint/internal/config"
)

func testRoot(t *testing.T) (*root, *bytes.Buffer) {
	t.Helper()
	t.Setenv("QUAINTPAINT_THEME", "")
	t.Setenv("QUAINTPAINT_LOG_FILE", "")
	var out bytes.Buffer
	r := newRoot(config.New())
	r.stdout = &out
	return r, &out
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

func rgba(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

const lineScript = `
width: 120
height: 100
events:
  - {type: select, tool: thick}
  - {type: down, x: 10, y: 20}
  - {type: move, x: 110, y: 20}
  - {type: up}
  - {type: down, x: 10, y: 60}
  - {type: move, x: 110, y: 60}
  - {type: up}
  - {type: undo}
  - {type: move, x: 60, y: 85}
`

func TestReplayWritesDrawing(t *testing.T) {
	r, _ := testRoot(t)
	in := writeFile(t, "script.yaml", lineScript)
	out := filepath.Join(t.TempDir(), "out.png")

	if err := r.Run([]string{"replay", "-input", in, "-output", out, "-background", "#FF0000"}); err != nil {
		t.Fatalf("replay: %v", err)
	}
	img := readPNG(t, out)
	if img.Bounds() != image.Rect(0, 0, 120, 100) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := rgba(img.At(60, 20)); got.R > 0x20 {
		t.Fatalf("kept line missing: %v", got)
	}
	red := color.RGBA{0xff, 0, 0, 0xff}
	if got := rgba(img.At(60, 60)); got != red {
		t.Fatalf("undone line still drawn: %v", got)
	}
	if got := rgba(img.At(60, 85)); got != red {
		t.Fatalf("hover preview exported: %v", got)
	}
}

func TestReplayJSONWithShadow(t *testing.T) {
	r, _ := testRoot(t)
	in := writeFile(t, "script.json", `{"width": 40, "height": 30, "events": [
		{"type": "select", "width": 4},
		{"type": "down", "x": 5, "y": 5},
		{"type": "move", "x": 35, "y": 25}
	]}`)
	out := filepath.Join(t.TempDir(), "out.png")

	if err := r.Run([]string{"replay", "-input", in, "-output", out, "-shadow", "4,3,3,0.5"}); err != nil {
		t.Fatalf("replay: %v", err)
	}
	b := readPNG(t, out).Bounds()
	if b.Dx() <= 40 || b.Dy() <= 30 {
		t.Fatalf("shadow did not expand canvas: %v", b)
	}
}

func TestReplaySizeFlagsOverrideScript(t *testing.T) {
	r, _ := testRoot(t)
	in := writeFile(t, "script.yaml", "width: 10\nheight: 10\nevents: []\n")
	out := filepath.Join(t.TempDir(), "out.png")
	if err := r.Run([]string{"replay", "-input", in, "-output", out, "-width", "64", "-height", "32"}); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if b := readPNG(t, out).Bounds(); b != image.Rect(0, 0, 64, 32) {
		t.Fatalf("bounds = %v", b)
	}
}

func TestReplayBadEvent(t *testing.T) {
	r, _ := testRoot(t)
	in := writeFile(t, "script.yaml", "events:\n  - {type: down}\n  - {type: wiggle}\n")
	err := r.Run([]string{"replay", "-input", in, "-output", filepath.Join(t.TempDir(), "o.png")})
	if err == nil || !containsAll(err.Error(), []string{"event 2", "wiggle"}) {
		t.Fatalf("expected event error, got %v", err)
	}
}

func TestReplayUnknownTool(t *testing.T) {
	r, _ := testRoot(t)
	in := writeFile(t, "script.yaml", "events:\n  - {type: select, tool: crayon}\n")
	err := r.Run([]string{"replay", "-input", in, "-output", filepath.Join(t.TempDir(), "o.png")})
	if err == nil || !strings.Contains(err.Error(), "crayon") {
		t.Fatalf("expected unknown tool error, got %v", err)
	}
}

func TestReplayMissingInputIsUsageError(t *testing.T) {
	r, _ := testRoot(t)
	err := r.Run([]string{"replay", "-output", "x.png"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(uerr.Error(), "quaintpaint replay") {
		t.Fatalf("help does not name the command:\n%s", uerr.Error())
	}
}

func TestParseColor(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"white", color.RGBA{255, 255, 255, 255}, true},
		{" Navy ", color.RGBA{0, 0, 128, 255}, true},
		{"#102030", color.RGBA{0x10, 0x20, 0x30, 0xff}, true},
		{"#10203080", color.RGBA{0x10, 0x20, 0x30, 0x80}, true},
		{"", color.RGBA{}, false},
		{"#12", color.RGBA{}, false},
		{"blurple", color.RGBA{}, false},
	} {
		got, err := parseColor(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("parseColor(%q) err = %v", tc.in, err)
			continue
		}
		if tc.ok && got != tc.want {
			t.Errorf("parseColor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
