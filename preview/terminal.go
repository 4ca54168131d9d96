package preview

import (
	"bytes"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"

	"github.com/photonicat/photonicat2_lcd_pages/frame"
)

// Terminal draws a downsampled copy of each frame on stdout with ANSI 256
// color blocks.
type Terminal struct {
	w       io.Writer
	palette ansi256.Palette
	step    int

	buf bytes.Buffer
}

// NewTerminal samples every step-th pixel horizontally and every 2*step-th
// row, since terminal cells are about twice as tall as wide.
func NewTerminal(step int) *Terminal {
	return newTerminal(colorable.NewColorableStdout(), step)
}

func newTerminal(w io.Writer, step int) *Terminal {
	if step < 1 {
		step = 1
	}
	return &Terminal{w: w, palette: *ansi256.Default, step: step}
}

// TransferFrame redraws the preview from the top-left of the terminal.
func (t *Terminal) TransferFrame(f *frame.Frame, x0, y0, width, height int) error {
	t.buf.Reset()
	_, _ = t.buf.WriteString("\033[H")
	for y := y0; y < y0+height; y += 2 * t.step {
		for x := x0; x < x0+width; x += t.step {
			r, g, b := f.Pixel(x, y).RGB()
			_, _ = io.WriteString(&t.buf, t.palette.Block(color.NRGBA{r, g, b, 255}))
		}
		_, _ = t.buf.WriteString("\033[0m\n")
	}
	_, err := t.buf.WriteTo(t.w)
	return err
}
