// Package frame holds the RGB565 pixel buffers pushed to the panel and the
// primitives that draw into them: pixel and glyph plotting in native or
// rotated coordinates, canvas rotation, and centered bitmap copies.
//
// Out-of-range coordinates are clipped silently everywhere in this package.
package frame

import (
	"image"
	"image/color"
)

// Color is a 16-bit RGB565 pixel.
type Color uint16

// Palette used by the pages.
const (
	Black  Color = 0x0000
	White  Color = 0xFFFF
	Green  Color = 0x07E0
	Cyan   Color = 0x071F
	Yellow Color = 0xFFE0
	Red    Color = 0xF800
	Grey   Color = 0x8410
)

// RGB packs 8-bit channels into RGB565.
func RGB(r, g, b uint8) Color {
	return Color(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

// RGB expands the pixel back to 8-bit channels.
func (c Color) RGB() (r, g, b uint8) {
	r5 := uint8(c>>11) & 0x1F
	g6 := uint8(c>>5) & 0x3F
	b5 := uint8(c) & 0x1F
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.RGB()
	r = uint32(r8) * 0x101
	g = uint32(g8) * 0x101
	b = uint32(b8) * 0x101
	return r, g, b, 0xFFFF
}

// Model converts any color to RGB565, dropping alpha.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	if v, ok := c.(Color); ok {
		return v
	}
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
})

// Frame is a dense W x H grid of pixels in row-major order.
type Frame struct {
	W, H int
	Pix  []Color
}

// New allocates a w x h frame cleared to Black.
func New(w, h int) *Frame {
	return &Frame{W: w, H: h, Pix: make([]Color, w*h)}
}

// SizeOf returns the number of bytes a w x h frame occupies.
func SizeOf(w, h int) int {
	return w * h * 2
}

// SetPixel writes c at (x, y) when it is inside the frame.
func (f *Frame) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return
	}
	f.Pix[y*f.W+x] = c
}

// Pixel reads (x, y); outside the frame it returns Black.
func (f *Frame) Pixel(x, y int) Color {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return Black
	}
	return f.Pix[y*f.W+x]
}

// Fill sets every pixel to c.
func (f *Frame) Fill(c Color) {
	for i := range f.Pix {
		f.Pix[i] = c
	}
}

// Clone returns a deep copy.
func (f *Frame) Clone() *Frame {
	out := &Frame{W: f.W, H: f.H, Pix: make([]Color, len(f.Pix))}
	copy(out.Pix, f.Pix)
	return out
}

// ColorModel implements draw.Image.
func (f *Frame) ColorModel() color.Model {
	return Model
}

// Bounds implements draw.Image.
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.W, f.H)
}

// At implements draw.Image.
func (f *Frame) At(x, y int) color.Color {
	return f.Pixel(x, y)
}

// Set implements draw.Image.
func (f *Frame) Set(x, y int, c color.Color) {
	f.SetPixel(x, y, Model.Convert(c).(Color))
}
