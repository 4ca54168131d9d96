package main

import (
	"context"
	"flag"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/photonicat/photonicat2_lcd_pages/display"
	"github.com/photonicat/photonicat2_lcd_pages/frame"
	"github.com/photonicat/photonicat2_lcd_pages/glyph"
	"github.com/photonicat/photonicat2_lcd_pages/input"
	"github.com/photonicat/photonicat2_lcd_pages/logo"
	"github.com/photonicat/photonicat2_lcd_pages/panel"
	"github.com/photonicat/photonicat2_lcd_pages/preview"
	"github.com/photonicat/photonicat2_lcd_pages/status"
)

func main() {
	configPath := flag.String("config", "/etc/pcat2_lcd_pages.json", "path to the JSON config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	var sinks display.MultiSink
	if cfg.SPIPort != "" {
		port, err := spireg.Open(cfg.SPIPort)
		if err != nil {
			log.Fatal(err)
		}
		defer port.Close()
		dev, err := panel.New(port, pin(cfg.DCPin), pin(cfg.ResetPin), pin(cfg.BacklightPin), &panel.Opts{
			W:            cfg.Width,
			H:            cfg.Height,
			ColumnOffset: cfg.ColumnOffset,
			RowOffset:    cfg.RowOffset,
			Invert:       true,
			Speed:        physic.Frequency(cfg.SPISpeedKHz) * physic.KiloHertz,
		})
		if err != nil {
			log.Fatalf("Failed to bring up panel: %v", err)
		}
		defer dev.Halt()
		log.Println("Panel:", dev)
		sinks = append(sinks, dev)
	}
	if cfg.WebListen != "" {
		web := preview.NewWeb()
		go func() {
			if err := web.Listen(cfg.WebListen); err != nil {
				log.Printf("preview server stopped: %v", err)
			}
		}()
		sinks = append(sinks, web)
	}
	if cfg.TerminalPreview {
		sinks = append(sinks, preview.NewTerminal(2))
	}
	if len(sinks) == 0 {
		log.Fatal("no output configured: set spi_port, web_listen or terminal_preview")
	}

	var reach *status.Reachability
	if cfg.PingHost != "" {
		reach = status.NewReachability(cfg.PingHost, time.Duration(cfg.PingIntervalSeconds)*time.Second)
		go reach.Run(ctx)
	}

	var src input.Source
	switch cfg.InputSource {
	case "gpio":
		p := gpioreg.ByName(cfg.ButtonPin)
		if p == nil {
			log.Fatalf("button pin %s not found", cfg.ButtonPin)
		}
		src = input.NewGPIO(p)
	case "evdev":
		if src, err = input.NewEvdev(cfg.EvdevName, cfg.EvdevKey); err != nil {
			log.Fatal(err)
		}
	}

	font := glyph.Default()
	if cfg.FontPath != "" {
		if font, err = glyph.LoadTTF(cfg.FontPath, cfg.FontSize); err != nil {
			log.Fatalf("Failed to load font: %v", err)
		}
	}
	portrait, landscape := loadLogos(&cfg)

	d, err := display.Initialize(display.Config{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Title:         cfg.Title,
		Tick:          cfg.tick(),
		Debounce:      cfg.debounce(),
		BufferBudget:  cfg.BufferBudget,
		Font:          font,
		LogoPortrait:  portrait,
		LogoLandscape: landscape,
		Providers:     status.NewSystem(reach),
		Sink:          sinks,
		Input:         src,
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := d.Start(ctx); err != nil {
		log.Fatal(err)
	}
	select {}
}

// pin looks up an output pin by name. An empty name means the board ties
// the line off.
func pin(name string) gpio.PinOut {
	if name == "" {
		return nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		log.Fatalf("pin %s not found", name)
	}
	return p
}

// loadLogos falls back to the builtin logo when a configured file cannot be
// used.
func loadLogos(cfg *Config) (portrait, landscape *frame.Frame) {
	load := func(path string, w, h int) *frame.Frame {
		f, err := logo.ForSurface(path, w, h)
		if err != nil {
			log.Printf("logo %s: %v, using builtin", path, err)
			if f, err = logo.Builtin(w, h); err != nil {
				log.Fatal(err)
			}
		}
		return f
	}
	return load(cfg.LogoPortrait, cfg.Width, cfg.Height), load(cfg.LogoLandscape, cfg.Height, cfg.Width)
}
