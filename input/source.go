package input

import (
	"context"
	"fmt"
	"log"
	"time"

	evdev "github.com/holoplot/go-evdev"
	"periph.io/x/conn/v3/gpio"
)

// Source produces raw button edges.
type Source interface {
	// Arm configures the edge source. It is called once at initialization.
	Arm() error
	// Watch posts to w on every falling edge until ctx is done.
	Watch(ctx context.Context, w *Wake) error
}

// GPIO watches a pulled-up button pin for falling edges.
type GPIO struct {
	Pin gpio.PinIn
	// Poll bounds each edge wait so Watch notices cancellation.
	Poll time.Duration
}

// NewGPIO returns a GPIO source for pin.
func NewGPIO(pin gpio.PinIn) *GPIO {
	return &GPIO{Pin: pin, Poll: 500 * time.Millisecond}
}

func (g *GPIO) Arm() error {
	if g.Pin == nil || g.Pin == gpio.INVALID {
		return fmt.Errorf("input: no button pin")
	}
	if err := g.Pin.In(gpio.PullUp, gpio.FallingEdge); err != nil {
		return fmt.Errorf("input: arming %s: %w", g.Pin, err)
	}
	return nil
}

func (g *GPIO) Watch(ctx context.Context, w *Wake) error {
	for ctx.Err() == nil {
		if g.Pin.WaitForEdge(g.Poll) {
			w.Notify()
		}
	}
	return ctx.Err()
}

// Evdev watches a Linux input device key, such as the PMIC power key.
type Evdev struct {
	Name string
	Code evdev.EvCode

	dev *evdev.InputDevice
}

// NewEvdev returns a source for key (e.g. "KEY_POWER") on the input device
// called name.
func NewEvdev(name, key string) (*Evdev, error) {
	code, ok := evdev.KEYFromString[key]
	if !ok {
		return nil, fmt.Errorf("input: unknown key %q", key)
	}
	return &Evdev{Name: name, Code: code}, nil
}

func (e *Evdev) Arm() error {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return fmt.Errorf("input: listing devices: %w", err)
	}
	var devPath string
	for _, ip := range paths {
		if ip.Name == e.Name {
			devPath = ip.Path
			break
		}
	}
	if devPath == "" {
		return fmt.Errorf("input: no device named %q", e.Name)
	}
	dev, err := evdev.Open(devPath)
	if err != nil {
		return fmt.Errorf("input: open %s: %w", devPath, err)
	}
	if err := dev.Grab(); err != nil {
		log.Printf("warning: failed to grab device: %v", err)
	}
	log.Printf("using input device: %s (%s)", devPath, e.Name)
	e.dev = dev
	return nil
}

func (e *Evdev) Watch(ctx context.Context, w *Wake) error {
	if e.dev == nil {
		return fmt.Errorf("input: %q not armed", e.Name)
	}
	go func() {
		<-ctx.Done()
		_ = e.dev.Ungrab()
		_ = e.dev.Close()
	}()
	for {
		ev, err := e.dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("read error: %v", err)
			time.Sleep(100 * time.Millisecond)
			continue
		}
		if ev.Type == evdev.EV_KEY && ev.Code == e.Code && ev.Value == 1 {
			w.Notify()
		}
	}
}
