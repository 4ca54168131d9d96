// Package preview mirrors transferred frames somewhere a developer can see
// them without the panel: a browser or a terminal.
//
// Every sink here copies the frame it is given. None keeps a reference to the
// render task's buffer.
package preview

import (
	"bytes"
	"image/png"
	"log"
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/photonicat/photonicat2_lcd_pages/frame"
)

const indexHTML = `<!DOCTYPE html>
<html><head><meta http-equiv="refresh" content="2"><title>pcat2 lcd</title></head>
<body style="background:#222"><img src="/frame" style="image-rendering:pixelated;width:344px"></body></html>`

// Web serves the last transferred frame as a PNG at GET /frame.
type Web struct {
	mu     sync.RWMutex
	last   *frame.Frame
	frames int

	app *fiber.App
}

// NewWeb returns a Web sink with its routes registered.
func NewWeb() *Web {
	w := &Web{
		app: fiber.New(fiber.Config{DisableStartupMessage: true}),
	}
	w.app.Get("/", w.index)
	w.app.Get("/frame", w.serveFrame)
	return w
}

// TransferFrame copies the region into the preview frame.
func (w *Web) TransferFrame(f *frame.Frame, x0, y0, width, height int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.last == nil || w.last.W != f.W || w.last.H != f.H {
		w.last = frame.New(f.W, f.H)
	}
	for y := y0; y < y0+height && y < f.H; y++ {
		row := y * f.W
		copy(w.last.Pix[row+x0:row+min(x0+width, f.W)], f.Pix[row+x0:row+min(x0+width, f.W)])
	}
	w.frames++
	return nil
}

// Listen serves until the listener fails or Shutdown is called.
func (w *Web) Listen(addr string) error {
	log.Println("Starting Fiber server on", addr)
	return w.app.Listen(addr)
}

// Shutdown stops the server.
func (w *Web) Shutdown() error {
	return w.app.Shutdown()
}

func (w *Web) index(c *fiber.Ctx) error {
	c.Type("html")
	return c.SendString(indexHTML)
}

func (w *Web) serveFrame(c *fiber.Ctx) error {
	var buf bytes.Buffer

	w.mu.RLock()
	if w.last == nil {
		w.mu.RUnlock()
		return c.Status(fiber.StatusServiceUnavailable).SendString("No frame available")
	}
	err := png.Encode(&buf, w.last)
	frames := w.frames
	w.mu.RUnlock()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to encode image")
	}

	c.Set("Content-Type", "image/png")
	c.Set("Content-Length", strconv.Itoa(buf.Len()))
	c.Set("X-Frame-Count", strconv.Itoa(frames))
	return c.Send(buf.Bytes())
}
