// Package logo produces the static bitmaps shown on the image pages.
package logo

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"

	"github.com/photonicat/photonicat2_lcd_pages/frame"
)

// ForSurface returns the logo for a w x h logical surface: the image at path
// scaled to fit, or the builtin logo when path is empty.
func ForSurface(path string, w, h int) (*frame.Frame, error) {
	if path != "" {
		return Load(path, w, h)
	}
	side := min(w, h) * 5 / 6
	bw := side
	if w > h {
		bw = min(side*5/3, w)
	}
	return Builtin(bw, side)
}

// Builtin renders the generated cat logo at w x h.
func Builtin(w, h int) (*frame.Frame, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("logo: invalid size %dx%d", w, h)
	}
	img, err := rasterSVG(bytes.NewReader(builtinSVG(w, h)), w, h)
	if err != nil {
		return nil, err
	}
	fr := frame.New(w, h)
	draw.Draw(fr, fr.Bounds(), img, image.Point{}, draw.Over)
	return fr, nil
}

func builtinSVG(w, h int) []byte {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(w, h, 0, 0, w, h)
	canvas.Roundrect(2, 2, w-4, h-4, 12, 12, "fill:#101820;stroke:#FFE500;stroke-width:3")

	cx, cy := w/2, h/2+h/12
	r := min(w, h) / 3
	// ears
	canvas.Polygon([]int{cx - r, cx - r/3, cx - r}, []int{cy - r/3, cy - r*4/5, cy - r*3/2}, "fill:#FFE500")
	canvas.Polygon([]int{cx + r, cx + r/3, cx + r}, []int{cy - r/3, cy - r*4/5, cy - r*3/2}, "fill:#FFE500")
	canvas.Circle(cx, cy, r, "fill:#FFE500")
	// eyes
	canvas.Circle(cx-r/3, cy-r/5, r/7+1, "fill:#101820")
	canvas.Circle(cx+r/3, cy-r/5, r/7+1, "fill:#101820")
	if w > h {
		canvas.Rect(8, h-14, w-16, 4, "fill:#46EB91")
	}
	canvas.End()
	return buf.Bytes()
}

func rasterSVG(r io.Reader, w, h int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, err
	}
	if w == 0 || h == 0 {
		w, h = int(icon.ViewBox.W), int(icon.ViewBox.H)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("logo: svg has no intrinsic size")
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return img, nil
}

// Load decodes a PNG, JPEG, GIF or SVG file and scales it, preserving the
// aspect ratio, to the largest size fitting in maxW x maxH. Transparent areas
// become black.
func Load(path string, maxW, maxH int) (*frame.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var img image.Image
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		img, err = png.Decode(f)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(f)
	case ".gif":
		img, err = gif.Decode(f)
	case ".svg":
		img, err = rasterSVG(f, 0, 0)
	default:
		return nil, fmt.Errorf("unsupported image format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	b := img.Bounds()
	w, h := fitSize(b.Dx(), b.Dy(), maxW, maxH)
	fr := frame.New(w, h)
	xdraw.CatmullRom.Scale(fr, fr.Bounds(), img, b, xdraw.Over, nil)
	return fr, nil
}

func fitSize(sw, sh, maxW, maxH int) (int, int) {
	if sw <= 0 || sh <= 0 {
		return 1, 1
	}
	w, h := maxW, sh*maxW/sw
	if h > maxH {
		w, h = sw*maxH/sh, maxH
	}
	return max(w, 1), max(h, 1)
}
