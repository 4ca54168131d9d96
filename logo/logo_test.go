package logo

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/photonicat/photonicat2_lcd_pages/frame"
)

func TestBuiltin(t *testing.T) {
	fr, err := Builtin(120, 80)
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	if fr.W != 120 || fr.H != 80 {
		t.Fatalf("size = %dx%d, want 120x80", fr.W, fr.H)
	}
	if fr.Pixel(0, 0) != frame.Black {
		t.Errorf("corner outside the rounded frame should stay black, got %#x", fr.Pixel(0, 0))
	}
	lit := 0
	for _, p := range fr.Pix {
		if p != frame.Black {
			lit++
		}
	}
	if lit < len(fr.Pix)/4 {
		t.Errorf("only %d of %d pixels drawn", lit, len(fr.Pix))
	}

	if _, err := Builtin(0, 10); err == nil {
		t.Error("Builtin should reject an empty size")
	}
}

func TestForSurface(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"portrait", 172, 320},
		{"landscape", 320, 172},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fr, err := ForSurface("", tt.w, tt.h)
			if err != nil {
				t.Fatal(err)
			}
			if fr.W > tt.w || fr.H > tt.h {
				t.Errorf("logo %dx%d does not fit %dx%d", fr.W, fr.H, tt.w, tt.h)
			}
			if (tt.w > tt.h) != (fr.W > fr.H) {
				t.Errorf("logo %dx%d does not follow the surface orientation", fr.W, fr.H)
			}
		})
	}
}

func TestLoadPNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			src.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	path := filepath.Join(t.TempDir(), "logo.png")
	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(out, src); err != nil {
		t.Fatal(err)
	}
	out.Close()

	fr, err := Load(path, 100, 100)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if fr.W != 100 || fr.H != 50 {
		t.Errorf("size = %dx%d, want 100x50", fr.W, fr.H)
	}
	if got := fr.Pixel(50, 25); got != frame.Red {
		t.Errorf("center = %#x, want red", got)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("/nonexistent/logo.png", 10, 10); err == nil {
		t.Error("Load should fail for a missing file")
	}

	path := filepath.Join(t.TempDir(), "logo.bmp")
	if err := os.WriteFile(path, []byte("BM"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path, 10, 10)
	if err == nil || !strings.Contains(err.Error(), "unsupported image format") {
		t.Errorf("Load(.bmp) error = %v", err)
	}
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		sw, sh, mw, mh int
		w, h           int
	}{
		{40, 20, 100, 100, 100, 50},
		{20, 40, 100, 100, 50, 100},
		{320, 172, 172, 320, 172, 92},
		{0, 10, 5, 5, 1, 1},
	}
	for _, tt := range tests {
		w, h := fitSize(tt.sw, tt.sh, tt.mw, tt.mh)
		if w != tt.w || h != tt.h {
			t.Errorf("fitSize(%d,%d,%d,%d) = %d,%d, want %d,%d", tt.sw, tt.sh, tt.mw, tt.mh, w, h, tt.w, tt.h)
		}
	}
}
