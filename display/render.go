package display

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/photonicat/photonicat2_lcd_pages/frame"
	"github.com/photonicat/photonicat2_lcd_pages/glyph"
	"github.com/photonicat/photonicat2_lcd_pages/status"
)

// Sink receives finished frames. TransferFrame is synchronous: the frame may
// be reused as soon as it returns.
type Sink interface {
	TransferFrame(f *frame.Frame, x0, y0, w, h int) error
}

// MultiSink transfers to every sink in order.
type MultiSink []Sink

func (m MultiSink) TransferFrame(f *frame.Frame, x0, y0, w, h int) error {
	var errs []error
	for _, s := range m {
		if err := s.TransferFrame(f, x0, y0, w, h); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

const marginX = 4

// Status page rows, from the top of the logical surface.
var statusRows = [...]int{4, 24, 42, 60, 78, 96}

// Renderer draws pages into the native frame buffer and hands it to the sink.
type Renderer struct {
	fb     *frame.Frame
	canvas *frame.Frame

	portrait  *frame.Plotter
	landscape *frame.Plotter

	logoPortrait  *frame.Frame
	logoLandscape *frame.Frame

	providers status.Providers
	sink      Sink
	title     string
}

func newRenderer(fb, canvas *frame.Frame, font *glyph.Table, logoPortrait, logoLandscape *frame.Frame, providers status.Providers, sink Sink, title string) *Renderer {
	return &Renderer{
		fb:            fb,
		canvas:        canvas,
		portrait:      frame.NewPortrait(fb, font),
		landscape:     frame.NewLandscape(fb, font),
		logoPortrait:  logoPortrait,
		logoLandscape: logoLandscape,
		providers:     providers,
		sink:          sink,
		title:         title,
	}
}

// Render redraws the whole frame for k and transfers it. A failed transfer
// is logged; the next render supersedes it.
func (r *Renderer) Render(k Kind) {
	if k.Status() {
		r.renderStatus(k)
	} else {
		r.renderImage(k)
	}
	if err := r.sink.TransferFrame(r.fb, 0, 0, r.fb.W, r.fb.H); err != nil {
		log.Printf("display: transfer of %s failed: %v", k, err)
	}
}

func (r *Renderer) renderStatus(k Kind) {
	p, tag := r.portrait, "PORT"
	if k.Landscape() {
		p, tag = r.landscape, "LAND"
	}
	r.fb.Fill(frame.Black)
	snap := status.Take(r.providers)

	p.DrawString(marginX, statusRows[0], "== "+r.title+" ==", frame.Cyan, frame.Black)
	if snap.Connected {
		p.DrawString(marginX, statusRows[1], "Net: OK", frame.Green, frame.Black)
		p.DrawString(marginX, statusRows[2], "IP: "+snap.Address, frame.White, frame.Black)
	} else {
		p.DrawString(marginX, statusRows[1], "Net: --", frame.Red, frame.Black)
		p.DrawString(marginX, statusRows[2], "IP: --", frame.Grey, frame.Black)
	}
	p.DrawString(marginX, statusRows[3], memLine(snap.Free), frame.White, frame.Black)
	p.DrawString(marginX, statusRows[4], uptimeLine(snap.Uptime), frame.Yellow, frame.Black)
	p.DrawString(marginX, statusRows[5], fmt.Sprintf("P%d/%d[%s]", int(k)+1, NumPages, tag), frame.Grey, frame.Black)
}

func (r *Renderer) renderImage(k Kind) {
	if !k.Landscape() {
		r.fb.Fill(frame.Black)
		frame.CenterBlit(r.fb, r.logoPortrait)
		return
	}
	r.canvas.Fill(frame.Black)
	frame.CenterBlit(r.canvas, r.logoLandscape)
	if err := frame.Rotate(r.fb, r.canvas); err != nil {
		log.Printf("display: %v", err)
	}
}

// memLine formats free bytes per region in MiB, e.g. "Mem:512M/64M".
func memLine(free []uint64) string {
	parts := make([]string, len(free))
	for i, b := range free {
		parts[i] = fmt.Sprintf("%dM", b>>20)
	}
	return "Mem:" + strings.Join(parts, "/")
}

func uptimeLine(d time.Duration) string {
	s := int64(d / time.Second)
	if s < 3600 {
		return fmt.Sprintf("Up:%dm%ds", s/60, s%60)
	}
	return fmt.Sprintf("Up:%dh%02dm%02ds", s/3600, s/60%60, s%60)
}
