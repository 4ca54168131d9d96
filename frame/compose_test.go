package frame

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/photonicat/photonicat2_lcd_pages/glyph"
)

func countColor(f *Frame, c Color) int {
	n := 0
	for _, p := range f.Pix {
		if p == c {
			n++
		}
	}
	return n
}

func TestRotateSinglePixel(t *testing.T) {
	const w, h = 5, 9
	for cy := 0; cy < w; cy++ {
		for cx := 0; cx < h; cx++ {
			canvas := New(h, w)
			canvas.SetPixel(cx, cy, White)
			dst := New(w, h)
			if err := Rotate(dst, canvas); err != nil {
				t.Fatal(err)
			}
			if n := countColor(dst, White); n != 1 {
				t.Fatalf("canvas (%d,%d): %d marked pixels, want 1", cx, cy, n)
			}
			if dst.Pixel(w-1-cy, cx) != White {
				t.Errorf("canvas (%d,%d) not at native (%d,%d)", cx, cy, w-1-cy, cx)
			}
		}
	}
}

func TestRotatePanelCorners(t *testing.T) {
	const w, h = 172, 320
	tests := []struct {
		cx, cy int
		fx, fy int
	}{
		{0, 0, w - 1, 0},
		{h - 1, 0, w - 1, h - 1},
		{0, w - 1, 0, 0},
		{h - 1, w - 1, 0, h - 1},
	}
	for _, tt := range tests {
		canvas := New(h, w)
		canvas.SetPixel(tt.cx, tt.cy, Red)
		dst := New(w, h)
		if err := Rotate(dst, canvas); err != nil {
			t.Fatal(err)
		}
		if dst.Pixel(tt.fx, tt.fy) != Red {
			t.Errorf("canvas (%d,%d): want native (%d,%d)", tt.cx, tt.cy, tt.fx, tt.fy)
		}
	}
}

func TestRotateMismatch(t *testing.T) {
	if err := Rotate(New(172, 320), New(172, 320)); err == nil {
		t.Error("Rotate should reject a canvas that is not transposed")
	}
}

// The canvas path and the direct landscape plotter must produce the same
// native frame.
func TestRotateMatchesLandscapePlotter(t *testing.T) {
	const w, h = 172, 320
	font := glyph.Default()
	draw := func(p *Plotter) {
		lw, lh := p.Size()
		p.SetPixel(0, 0, Red)
		p.SetPixel(lw-1, 0, Green)
		p.SetPixel(0, lh-1, Yellow)
		p.SetPixel(lw-1, lh-1, Cyan)
		p.DrawString(4, 4, "== landscape ==", Cyan, Black)
		p.DrawString(300, 150, "edge", White, Grey)
		p.DrawGlyph(-3, lh-10, 'Q', White, Red)
	}

	canvas := New(h, w)
	draw(NewPortrait(canvas, font))
	viaCanvas := New(w, h)
	if err := Rotate(viaCanvas, canvas); err != nil {
		t.Fatal(err)
	}

	direct := New(w, h)
	draw(NewLandscape(direct, font))

	if diff := cmp.Diff(viaCanvas.Pix, direct.Pix); diff != "" {
		t.Errorf("canvas rotation and direct plotting diverge (-canvas +direct):\n%s", diff)
	}
}

func TestLandscapeOrigin(t *testing.T) {
	f := New(172, 320)
	p := NewLandscape(f, glyph.Default())
	if w, h := p.Size(); w != 320 || h != 172 {
		t.Fatalf("Size() = %d,%d", w, h)
	}
	p.SetPixel(0, 0, White)
	if f.Pixel(171, 0) != White {
		t.Error("logical (0,0) should map to native (171,0)")
	}
	p.SetPixel(320, 0, Red)
	p.SetPixel(0, 172, Red)
	if countColor(f, Red) != 0 {
		t.Error("out-of-range logical writes reached the frame")
	}
}

func TestCenterBlit(t *testing.T) {
	dst := New(10, 8)
	src := New(4, 2)
	src.Fill(Green)
	CenterBlit(dst, src)

	for y := 0; y < dst.H; y++ {
		for x := 0; x < dst.W; x++ {
			in := x >= 3 && x < 7 && y >= 3 && y < 5
			if got := dst.Pixel(x, y) == Green; got != in {
				t.Errorf("(%d,%d) green=%v, want %v", x, y, got, in)
			}
		}
	}
}

func TestCenterBlitClips(t *testing.T) {
	src := New(6, 6)
	for i := range src.Pix {
		src.Pix[i] = Color(i + 1)
	}
	dst := New(4, 4)
	CenterBlit(dst, src)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if want := src.Pixel(x+1, y+1); dst.Pixel(x, y) != want {
				t.Errorf("dst(%d,%d) = %#x, want %#x", x, y, dst.Pixel(x, y), want)
			}
		}
	}
}
