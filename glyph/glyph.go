// Package glyph provides the fixed 8x16 monochrome cell table used to draw
// status text on the panel.
//
// Cells are rasterized once, before rendering starts, from any
// golang.org/x/image/font.Face. The table is read-only afterwards.
package glyph

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	// Width and Height are the cell size in pixels.
	Width  = 8
	Height = 16
	// Count is the number of addressable codes (7-bit).
	Count = 128
	// Fallback is drawn for any code outside the table.
	Fallback = '?'
)

// Cell is one glyph, one byte per row, most significant bit leftmost.
type Cell [Height]uint8

// Table maps 7-bit character codes to cells.
type Table struct {
	cells [Count]Cell
}

// FromCells returns a table holding a copy of cells.
func FromCells(cells [Count]Cell) *Table {
	return &Table{cells: cells}
}

// Cell returns the cell for r, substituting Fallback for codes above the
// 7-bit range.
func (t *Table) Cell(r rune) Cell {
	if r < 0 || r >= Count {
		r = Fallback
	}
	return t.cells[r]
}

// Build rasterizes the printable ASCII range of face into 8x16 cells. Each
// glyph is vertically centered on the face's line height and clipped to the
// cell; control codes stay blank.
func Build(face font.Face) *Table {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	top := (Height - (ascent + m.Descent.Ceil())) / 2
	if top < 0 {
		top = 0
	}
	dot := fixed.P(0, top+ascent)

	t := &Table{}
	for code := rune(' '); code < 0x7f; code++ {
		dr, mask, maskp, _, ok := face.Glyph(dot, code)
		if !ok {
			continue
		}
		var cell Cell
		for y := dr.Min.Y; y < dr.Max.Y; y++ {
			if y < 0 || y >= Height {
				continue
			}
			for x := dr.Min.X; x < dr.Max.X; x++ {
				if x < 0 || x >= Width {
					continue
				}
				_, _, _, a := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
				if a >= 0x8000 {
					cell[y] |= 0x80 >> uint(x)
				}
			}
		}
		t.cells[code] = cell
	}
	return t
}

// Default returns the table built from basicfont.Face7x13.
func Default() *Table {
	return Build(basicfont.Face7x13)
}

// LoadTTF parses a TrueType/OpenType file and rasterizes it at size points.
// Sizes much above 13pt will be clipped by the 8x16 cell.
func LoadTTF(path string, size float64) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading font file: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	defer face.Close()
	return Build(face), nil
}
