package render

import (
	"image"
	"image/color"
	"testing"
)

func TestApplyShadowExpandsBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	subject := image.Pt(5, 5)
	img.Set(subject.X, subject.Y, color.RGBA{R: 255, A: 255})

	opts := ShadowOptions{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5}
	out := ApplyShadow(img, opts).Image
	if out == nil {
		t.Fatal("expected output image")
	}
	expected := image.Rect(0, 0, 22, 20)
	if !out.Bounds().Eq(expected) {
		t.Fatalf("unexpected bounds %v, want %v", out.Bounds(), expected)
	}
	shadowPt := subject.Add(opts.Offset)
	if out.RGBAAt(shadowPt.X, shadowPt.Y).A == 0 {
		t.Fatalf("expected shadow alpha at %v", shadowPt)
	}
}

func TestApplyShadowNoShadowWhenOpacityZero(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, fill)
		}
	}
	res := ApplyShadow(img, ShadowOptions{Radius: 12, Offset: image.Pt(20, 10), Opacity: 0})
	out := res.Image
	if out == nil {
		t.Fatal("expected output image")
	}
	if !out.Bounds().Eq(img.Bounds()) {
		t.Fatalf("bounds changed unexpectedly: %v vs %v", out.Bounds(), img.Bounds())
	}
	if res.Offset != (image.Point{}) {
		t.Fatalf("offset = %v, want zero", res.Offset)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := out.RGBAAt(x, y); got != fill {
				t.Fatalf("pixel mismatch at (%d,%d): got %+v want %+v", x, y, got, fill)
			}
		}
	}
}

func TestApplyShadowBlurredAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{A: 255})
	opts := ShadowOptions{Radius: 2, Offset: image.Pt(3, 0), Opacity: 1}

	out := ApplyShadow(img, opts).Image
	if out == nil {
		t.Fatal("expected output image")
	}
	if out.Bounds().Dx() <= img.Bounds().Dx() {
		t.Fatalf("expected wider output bounds")
	}
	res := ApplyShadow(img, opts)
	base := img.Bounds().Min.Add(opts.Offset).Add(res.Offset)
	baseAlpha := out.RGBAAt(base.X, base.Y).A
	if baseAlpha == 0 {
		t.Fatal("expected alpha at base shadow location")
	}
	neighbor := out.RGBAAt(base.X+1, base.Y)
	if neighbor.A == 0 {
		t.Fatalf("expected blurred alpha to reach neighbor, base alpha=%d", baseAlpha)
	}
}

func TestApplyShadowBehindSheet(t *testing.T) {
	paper := color.RGBA{255, 255, 255, 255}
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	res := ApplyShadow(img, DefaultShadowOptions())
	if res.Offset != image.Pt(4, 4) {
		t.Fatalf("offset = %v, want (4,4)", res.Offset)
	}
	sheet := image.Rectangle{Min: res.Offset, Max: res.Offset.Add(img.Bounds().Size())}
	for _, p := range []image.Point{sheet.Min, sheet.Max.Sub(image.Pt(1, 1))} {
		if got := res.Image.RGBAAt(p.X, p.Y); got != paper {
			t.Fatalf("sheet pixel %v = %v, want %v", p, got, paper)
		}
	}
	below := res.Image.RGBAAt(sheet.Min.X+10, sheet.Max.Y+2)
	if below.A == 0 || below.R != 0 {
		t.Fatalf("expected dark shadow under the sheet, got %v", below)
	}
	if above := res.Image.RGBAAt(sheet.Min.X+10, sheet.Min.Y-2); above.A >= below.A {
		t.Fatalf("shadow above the sheet (%d) not lighter than below (%d)", above.A, below.A)
	}
}

func TestBoxBlurSpreadsWithinRadius(t *testing.T) {
	pix := make([]uint8, 9*9)
	pix[4*9+4] = 255
	boxBlur(pix, 9, 9, 9, 1)
	for _, i := range []int{3*9 + 3, 4*9 + 4, 5*9 + 5} {
		if pix[i] != 28 {
			t.Errorf("pix[%d] = %d, want 28", i, pix[i])
		}
	}
	if pix[2*9+4] != 0 {
		t.Errorf("blur spread beyond radius: %d", pix[2*9+4])
	}
}

func TestParseShadowOptions(t *testing.T) {
	tests := []struct {
		in   string
		want ShadowOptions
	}{
		{"", DefaultShadowOptions()},
		{"16", ShadowOptions{Radius: 16, Offset: image.Pt(8, 8), Opacity: 0.45}},
		{"4,2,3,0.8", ShadowOptions{Radius: 4, Offset: image.Pt(2, 3), Opacity: 0.8}},
		{"4,,,1", ShadowOptions{Radius: 4, Offset: image.Pt(8, 8), Opacity: 1}},
	}
	for _, tc := range tests {
		got, err := ParseShadowOptions(tc.in)
		if err != nil {
			t.Fatalf("ParseShadowOptions(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseShadowOptions(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"x", "1,2,3,4,5", "1,2,3,nope"} {
		if _, err := ParseShadowOptions(bad); err == nil {
			t.Errorf("ParseShadowOptions(%q) succeeded, want error", bad)
		}
	}
}
