package frame

import "fmt"

// Rotate copies a landscape canvas into dst in native scan order. The canvas
// must be dst.H wide and dst.W tall; canvas (cx, cy) lands on native
// (dst.W-1-cy, cx), the same mapping Rotate90 applies per pixel.
func Rotate(dst, canvas *Frame) error {
	if canvas.W != dst.H || canvas.H != dst.W {
		return fmt.Errorf("frame: canvas %dx%d does not rotate onto %dx%d", canvas.W, canvas.H, dst.W, dst.H)
	}
	for cy := 0; cy < canvas.H; cy++ {
		row := canvas.Pix[cy*canvas.W : (cy+1)*canvas.W]
		fx := dst.W - 1 - cy
		for cx, c := range row {
			dst.Pix[cx*dst.W+fx] = c
		}
	}
	return nil
}

// CenterBlit copies src into dst at offset ((dst.W-src.W)/2, (dst.H-src.H)/2).
// Any part of src falling outside dst is clipped.
func CenterBlit(dst, src *Frame) {
	ox := (dst.W - src.W) / 2
	oy := (dst.H - src.H) / 2
	for y := 0; y < src.H; y++ {
		dy := oy + y
		if dy < 0 || dy >= dst.H {
			continue
		}
		for x := 0; x < src.W; x++ {
			dst.SetPixel(ox+x, dy, src.Pix[y*src.W+x])
		}
	}
}
