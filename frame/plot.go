package frame

import "github.com/photonicat/photonicat2_lcd_pages/glyph"

// Transform maps a logical coordinate onto the native buffer.
type Transform func(x, y int) (int, int)

// Identity is the native portrait convention.
func Identity(x, y int) (int, int) {
	return x, y
}

// Rotate90 returns the logical landscape convention for a native buffer
// nativeW pixels wide: logical (lx, ly) lands on native (nativeW-1-ly, lx).
func Rotate90(nativeW int) Transform {
	return func(lx, ly int) (int, int) {
		return nativeW - 1 - ly, lx
	}
}

// Plotter draws pixels, glyphs and strings into a frame through a coordinate
// transform. Bounds are checked in logical coordinates.
type Plotter struct {
	dst  *Frame
	w, h int
	xf   Transform
	font *glyph.Table
}

// NewPortrait plots in the frame's own coordinates.
func NewPortrait(dst *Frame, font *glyph.Table) *Plotter {
	return &Plotter{dst: dst, w: dst.W, h: dst.H, xf: Identity, font: font}
}

// NewLandscape plots on a logical dst.H x dst.W surface rotated onto dst.
func NewLandscape(dst *Frame, font *glyph.Table) *Plotter {
	return &Plotter{dst: dst, w: dst.H, h: dst.W, xf: Rotate90(dst.W), font: font}
}

// Size returns the logical width and height.
func (p *Plotter) Size() (w, h int) {
	return p.w, p.h
}

// SetPixel writes c at logical (x, y), ignoring coordinates off the surface.
func (p *Plotter) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= p.w || y >= p.h {
		return
	}
	fx, fy := p.xf(x, y)
	p.dst.SetPixel(fx, fy, c)
}

// DrawGlyph plots the 8x16 cell for r with its top-left corner at (x0, y0).
func (p *Plotter) DrawGlyph(x0, y0 int, r rune, fg, bg Color) {
	cell := p.font.Cell(r)
	for row := 0; row < glyph.Height; row++ {
		bits := cell[row]
		for col := 0; col < glyph.Width; col++ {
			c := bg
			if bits&(0x80>>uint(col)) != 0 {
				c = fg
			}
			p.SetPixel(x0+col, y0+row, c)
		}
	}
}

// DrawString draws s left to right without wrapping. It stops at the first
// glyph that would not fit entirely inside the logical width and returns the
// number of glyphs drawn.
func (p *Plotter) DrawString(x, y int, s string, fg, bg Color) int {
	n := 0
	for _, r := range s {
		if x+glyph.Width > p.w {
			break
		}
		p.DrawGlyph(x, y, r, fg, bg)
		x += glyph.Width
		n++
	}
	return n
}
