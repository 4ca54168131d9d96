// Package panel drives an ST7789-class RGB565 LCD controller over SPI.
//
// Only what the page daemon needs is implemented: bring-up in the panel's
// native portrait orientation and full-window RAM writes.
package panel

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/photonicat/photonicat2_lcd_pages/frame"
)

const (
	_SWRESET = 0x01
	_SLPOUT  = 0x11
	_NORON   = 0x13
	_INVON   = 0x21
	_DISPOFF = 0x28
	_DISPON  = 0x29
	_CASET   = 0x2A
	_RASET   = 0x2B
	_RAMWR   = 0x2C
	_MADCTL  = 0x36
	_COLMOD  = 0x3A
)

// Opts describes the panel geometry and bus speed.
type Opts struct {
	W, H int
	// ColumnOffset and RowOffset are the gap between controller RAM and
	// the visible glass.
	ColumnOffset int
	RowOffset    int
	Invert       bool
	Speed        physic.Frequency
}

// DefaultOpts matches the 1.47" 172x320 module.
var DefaultOpts = Opts{
	W:            172,
	H:            320,
	ColumnOffset: 34,
	Invert:       true,
	Speed:        80 * physic.MegaHertz,
}

// Replaced in tests.
var sleep = time.Sleep

// Dev is an open handle to the panel.
type Dev struct {
	c     spi.Conn
	dc    gpio.PinOut
	rst   gpio.PinOut
	bl    gpio.PinOut
	opts  Opts
	maxTx int
	buf   []byte
}

// New connects to the controller on p and brings it up. rst and bl may be
// nil when the board ties them off.
func New(p spi.Port, dc, rst, bl gpio.PinOut, opts *Opts) (*Dev, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, errors.New("panel: dc pin is required")
	}
	if opts.W <= 0 || opts.H <= 0 {
		return nil, fmt.Errorf("panel: invalid size %dx%d", opts.W, opts.H)
	}
	c, err := p.Connect(opts.Speed, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	d := &Dev{c: c, dc: dc, rst: rst, bl: bl, opts: *opts, maxTx: 4096}
	if l, ok := c.(conn.Limits); ok && l.MaxTxSize() > 0 {
		d.maxTx = l.MaxTxSize()
	}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("ST7789{%s, %dx%d}", d.c, d.opts.W, d.opts.H)
}

type initStep struct {
	cmd   byte
	data  []byte
	delay time.Duration
}

func (d *Dev) init() error {
	if d.rst != nil {
		for _, l := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
			if err := d.rst.Out(l); err != nil {
				return err
			}
			sleep(10 * time.Millisecond)
		}
		sleep(110 * time.Millisecond)
	}
	steps := []initStep{
		{_SWRESET, nil, 150 * time.Millisecond},
		{_SLPOUT, nil, 120 * time.Millisecond},
		{_COLMOD, []byte{0x55}, 10 * time.Millisecond}, // 16 bpp
		{_MADCTL, []byte{0x00}, 0},
	}
	if d.opts.Invert {
		steps = append(steps, initStep{cmd: _INVON})
	}
	for _, s := range steps {
		if err := d.command(s.cmd, s.data...); err != nil {
			return err
		}
		if s.delay > 0 {
			sleep(s.delay)
		}
	}
	if err := d.command(_NORON); err != nil {
		return err
	}
	if err := d.command(_DISPON); err != nil {
		return err
	}
	return d.EnableBacklight(true)
}

// EnableBacklight switches the backlight pin, if any.
func (d *Dev) EnableBacklight(on bool) error {
	if d.bl == nil {
		return nil
	}
	return d.bl.Out(gpio.Level(on))
}

// TransferFrame writes the w x h region of f at (x0, y0) to the same region
// of the panel. It returns once the last SPI transaction completes.
func (d *Dev) TransferFrame(f *frame.Frame, x0, y0, w, h int) error {
	if w <= 0 || h <= 0 || x0 < 0 || y0 < 0 || x0+w > f.W || y0+h > f.H || x0+w > d.opts.W || y0+h > d.opts.H {
		return fmt.Errorf("panel: region %dx%d@%d,%d outside %dx%d", w, h, x0, y0, d.opts.W, d.opts.H)
	}
	xs, xe := x0+d.opts.ColumnOffset, x0+w-1+d.opts.ColumnOffset
	ys, ye := y0+d.opts.RowOffset, y0+h-1+d.opts.RowOffset
	if err := d.command(_CASET, byte(xs>>8), byte(xs), byte(xe>>8), byte(xe)); err != nil {
		return err
	}
	if err := d.command(_RASET, byte(ys>>8), byte(ys), byte(ye>>8), byte(ye)); err != nil {
		return err
	}
	if err := d.command(_RAMWR); err != nil {
		return err
	}
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}

	d.buf = d.buf[:0]
	for y := y0; y < y0+h; y++ {
		for _, c := range f.Pix[y*f.W+x0 : y*f.W+x0+w] {
			if len(d.buf)+2 > d.maxTx {
				if err := d.c.Tx(d.buf, nil); err != nil {
					return err
				}
				d.buf = d.buf[:0]
			}
			d.buf = append(d.buf, byte(c>>8), byte(c))
		}
	}
	if len(d.buf) > 0 {
		return d.c.Tx(d.buf, nil)
	}
	return nil
}

// Halt turns the display and backlight off.
func (d *Dev) Halt() error {
	if err := d.command(_DISPOFF); err != nil {
		return err
	}
	return d.EnableBacklight(false)
}

func (d *Dev) command(cmd byte, data ...byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	if err := d.c.Tx([]byte{cmd}, nil); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.c.Tx(data, nil)
}
