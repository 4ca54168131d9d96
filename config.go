package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Config is the daemon configuration file.
type Config struct {
	SPIPort      string `json:"spi_port"`
	SPISpeedKHz  int    `json:"spi_speed_khz"`
	ResetPin     string `json:"reset_pin"`
	DCPin        string `json:"dc_pin"`
	BacklightPin string `json:"backlight_pin"`

	// InputSource is "gpio", "evdev" or "none".
	InputSource string `json:"input_source"`
	ButtonPin   string `json:"button_pin"`
	EvdevName   string `json:"evdev_name"`
	EvdevKey    string `json:"evdev_key"`

	Width        int `json:"width"`
	Height       int `json:"height"`
	ColumnOffset int `json:"column_offset"`
	RowOffset    int `json:"row_offset"`

	Title        string `json:"title"`
	TickSeconds  int    `json:"tick_seconds"`
	DebounceMs   int    `json:"debounce_ms"`
	BufferBudget int    `json:"buffer_budget"`

	FontPath      string  `json:"font_path"`
	FontSize      float64 `json:"font_size"`
	LogoPortrait  string  `json:"logo_portrait"`
	LogoLandscape string  `json:"logo_landscape"`

	PingHost            string `json:"ping_host"`
	PingIntervalSeconds int    `json:"ping_interval_seconds"`

	WebListen       string `json:"web_listen"`
	TerminalPreview bool   `json:"terminal_preview"`
}

func defaultConfig() Config {
	return Config{
		SPIPort:             "SPI1.0",
		SPISpeedKHz:         80000,
		ResetPin:            "GPIO122",
		DCPin:               "GPIO121",
		BacklightPin:        "GPIO117",
		InputSource:         "evdev",
		EvdevName:           "rk805 pwrkey",
		EvdevKey:            "KEY_POWER",
		Width:               172,
		Height:              320,
		ColumnOffset:        34,
		Title:               "photonicat",
		TickSeconds:         5,
		DebounceMs:          200,
		FontSize:            13,
		PingHost:            "1.1.1.1",
		PingIntervalSeconds: 10,
	}
}

// loadConfig reads path over the defaults. A missing file yields the
// defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, cfg.validate()
	}
	if err != nil {
		return Config{}, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Width <= 0 || c.Width >= c.Height {
		return fmt.Errorf("config: %dx%d is not a portrait panel", c.Width, c.Height)
	}
	if c.TickSeconds <= 0 {
		return fmt.Errorf("config: tick_seconds must be positive, got %d", c.TickSeconds)
	}
	if c.DebounceMs <= 0 {
		return fmt.Errorf("config: debounce_ms must be positive, got %d", c.DebounceMs)
	}
	switch c.InputSource {
	case "gpio":
		if c.ButtonPin == "" {
			return errors.New("config: input_source gpio needs button_pin")
		}
	case "evdev":
		if c.EvdevName == "" || c.EvdevKey == "" {
			return errors.New("config: input_source evdev needs evdev_name and evdev_key")
		}
	case "none", "":
	default:
		return fmt.Errorf("config: unknown input_source %q", c.InputSource)
	}
	if c.PingHost != "" && c.PingIntervalSeconds <= 0 {
		return fmt.Errorf("config: ping_interval_seconds must be positive, got %d", c.PingIntervalSeconds)
	}
	if c.SPIPort != "" && c.DCPin == "" {
		return errors.New("config: dc_pin is required with spi_port")
	}
	return nil
}

func (c *Config) tick() time.Duration {
	return time.Duration(c.TickSeconds) * time.Second
}

func (c *Config) debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}
