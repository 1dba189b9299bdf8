package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"
)

// ShadowOptions configures the drop shadow added behind an exported drawing.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// ShadowResult captures the output of ApplyShadow.
type ShadowResult struct {
	// Image is the composited image that includes the blurred shadow.
	Image *image.RGBA
	// Offset reports how far the drawing was translated when rebasing onto
	// the expanded canvas.
	Offset image.Point
}

// DefaultShadowOptions returns a soft shadow sized for small drawings.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  12,
		Offset:  image.Pt(8, 8),
		Opacity: 0.45,
	}
}

// ParseShadowOptions reads "radius,dx,dy,opacity". Empty fields keep the
// defaults, so "16" or "16,,,0.8" are both valid.
func ParseShadowOptions(s string) (ShadowOptions, error) {
	opts := DefaultShadowOptions()
	s = strings.TrimSpace(s)
	if s == "" {
		return opts, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) > 4 {
		return opts, fmt.Errorf("shadow: want at most 4 fields, got %d", len(parts))
	}
	ints := []*int{&opts.Radius, &opts.Offset.X, &opts.Offset.Y}
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if i == 3 {
			v, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return opts, fmt.Errorf("shadow opacity: %w", err)
			}
			opts.Opacity = v
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return opts, fmt.Errorf("shadow field %d: %w", i+1, err)
		}
		*ints[i] = v
	}
	return opts, nil
}

// ApplyShadow lays img on a larger transparent canvas with a blurred copy of
// its alpha behind it, so an exported sheet looks lifted off the page. The
// result starts at the origin; Offset is where img's corner ended up.
func ApplyShadow(img *image.RGBA, opts ShadowOptions) ShadowResult {
	if img == nil || img.Bounds().Empty() || opts.Opacity <= 0 {
		return ShadowResult{Image: img}
	}
	r := max(opts.Radius, 0)
	src := img.Bounds()
	shadow := src.Inset(-r).Add(opts.Offset)
	canvas := src.Union(shadow)

	mask := image.NewAlpha(src.Inset(-r))
	draw.Draw(mask, src, img, src.Min, draw.Src)
	boxBlur(mask.Pix, mask.Rect.Dx(), mask.Rect.Dy(), mask.Stride, r)

	out := image.NewRGBA(canvas.Sub(canvas.Min))
	tint := image.NewUniform(color.NRGBA{A: uint8(min(opts.Opacity, 1)*255 + 0.5)})
	draw.DrawMask(out, shadow.Sub(canvas.Min), tint, image.Point{}, mask, mask.Rect.Min, draw.Over)
	draw.Draw(out, src.Sub(canvas.Min), img, src.Min, draw.Over)
	return ShadowResult{Image: out, Offset: src.Min.Sub(canvas.Min)}
}

// boxBlur averages each pixel with its neighbours within r, along rows and
// then along columns, in place.
func boxBlur(pix []uint8, w, h, stride, r int) {
	if r <= 0 {
		return
	}
	sum := make([]int, max(w, h)+1)
	line := func(start, n, step int) {
		for i := 0; i < n; i++ {
			sum[i+1] = sum[i] + int(pix[start+i*step])
		}
		for i := 0; i < n; i++ {
			lo, hi := max(i-r, 0), min(i+r, n-1)
			pix[start+i*step] = uint8((sum[hi+1] - sum[lo]) / (hi - lo + 1))
		}
	}
	for y := 0; y < h; y++ {
		line(y*stride, w, 1)
	}
	for x := 0; x < w; x++ {
		line(x, h, stride)
	}
}
