// Package display runs the four-page LCD user interface: a single render
// task owns the frame buffers and the page state, advances pages on
// debounced button wakes and refreshes status pages on an idle tick.
package display

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/photonicat/photonicat2_lcd_pages/frame"
	"github.com/photonicat/photonicat2_lcd_pages/glyph"
	"github.com/photonicat/photonicat2_lcd_pages/input"
	"github.com/photonicat/photonicat2_lcd_pages/logo"
	"github.com/photonicat/photonicat2_lcd_pages/status"
)

// ErrResourceExhausted is returned by Initialize when the frame buffers do
// not fit in the configured budget.
var ErrResourceExhausted = errors.New("display: buffer allocation failed")

// Config wires the display to its collaborators.
type Config struct {
	// Width and Height are the native panel size; Width < Height.
	Width, Height int
	Title         string
	// Tick is the idle refresh period for status pages.
	Tick time.Duration
	// Debounce is the quiet window after an accepted button edge.
	Debounce time.Duration
	// BufferBudget caps the bytes used by the frame buffer and canvas.
	// Zero means no cap.
	BufferBudget int

	// Font defaults to glyph.Default().
	Font *glyph.Table
	// Logos default to the builtin logo sized for each orientation.
	LogoPortrait  *frame.Frame
	LogoLandscape *frame.Frame

	Providers status.Providers
	Sink      Sink
	// Input is optional; without it pages only change through Wake.
	Input input.Source
}

// Display is the page UI. All page state belongs to the render task started
// by Start.
type Display struct {
	cfg      Config
	r        *Renderer
	pager    Pager
	wake     *input.Wake
	debounce *input.Debounce
	after    func(time.Duration) <-chan time.Time
	started  atomic.Bool
}

// Initialize validates cfg, allocates both buffers and arms the input.
func Initialize(cfg Config) (*Display, error) {
	if cfg.Width <= 0 || cfg.Height <= cfg.Width {
		return nil, fmt.Errorf("display: %dx%d is not a portrait panel", cfg.Width, cfg.Height)
	}
	if cfg.Tick <= 0 {
		return nil, fmt.Errorf("display: tick must be positive, got %v", cfg.Tick)
	}
	if cfg.Debounce < 0 {
		return nil, fmt.Errorf("display: negative debounce %v", cfg.Debounce)
	}
	if cfg.Sink == nil || cfg.Providers == nil {
		return nil, errors.New("display: sink and providers are required")
	}
	need := 2 * frame.SizeOf(cfg.Width, cfg.Height)
	if cfg.BufferBudget > 0 && need > cfg.BufferBudget {
		return nil, fmt.Errorf("%w: need %d bytes, budget is %d", ErrResourceExhausted, need, cfg.BufferBudget)
	}
	if cfg.Font == nil {
		cfg.Font = glyph.Default()
	}
	if cfg.Title == "" {
		cfg.Title = "photonicat"
	}
	var err error
	if cfg.LogoPortrait == nil {
		if cfg.LogoPortrait, err = logo.ForSurface("", cfg.Width, cfg.Height); err != nil {
			return nil, err
		}
	}
	if cfg.LogoLandscape == nil {
		if cfg.LogoLandscape, err = logo.ForSurface("", cfg.Height, cfg.Width); err != nil {
			return nil, err
		}
	}

	fb := frame.New(cfg.Width, cfg.Height)
	canvas := frame.New(cfg.Height, cfg.Width)
	d := &Display{
		cfg:      cfg,
		r:        newRenderer(fb, canvas, cfg.Font, cfg.LogoPortrait, cfg.LogoLandscape, cfg.Providers, cfg.Sink, cfg.Title),
		wake:     input.NewWake(),
		debounce: input.NewDebounce(cfg.Debounce),
		after:    time.After,
	}
	if cfg.Input != nil {
		if err := cfg.Input.Arm(); err != nil {
			return nil, fmt.Errorf("display: arming input: %w", err)
		}
	}
	log.Printf("display: initialized %dx%d, tick %v, debounce %v", cfg.Width, cfg.Height, cfg.Tick, cfg.Debounce)
	return d, nil
}

// Wake is the render task's notification. Edge producers may only call
// Notify on it.
func (d *Display) Wake() *input.Wake {
	return d.wake
}

// Start launches the render task, which draws the first page before it
// starts waiting, and the input watcher if one is configured.
func (d *Display) Start(ctx context.Context) error {
	if !d.started.CompareAndSwap(false, true) {
		return errors.New("display: already started")
	}
	if d.cfg.Input != nil {
		go func() {
			if err := d.cfg.Input.Watch(ctx, d.wake); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("display: input stopped: %v", err)
			}
		}()
	}
	go d.run(ctx)
	return nil
}

func (d *Display) run(ctx context.Context) {
	log.Printf("display: task started on page %d (%s)", d.pager.Index(), d.pager.Kind())
	d.r.Render(d.pager.Kind())
	for d.step(ctx) {
	}
}

// step waits once for a wake or the tick and handles it. It returns false
// when ctx is done.
func (d *Display) step(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-d.wake.C():
		d.debounce.Settle(d.wake)
		k := d.pager.Advance()
		log.Printf("display: button -> page %d (%s)", d.pager.Index(), k)
		d.r.Render(k)
	case <-d.after(d.cfg.Tick):
		if d.pager.RefreshDue() {
			d.r.Render(d.pager.Kind())
		}
	}
	return true
}
