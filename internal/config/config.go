package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 480
	WindowHeight = 480
	WidgetSize   = 300

	DefaultRingThickness = 10

	DefaultAboveWaveColor = "#ffffff"
	DefaultBelowWaveColor = "#ffffff"
	DefaultAboveWaveAlpha = 50
	DefaultBelowWaveAlpha = 30

	// Ring gradient, top to bottom
	DefaultRingStartColor = "#fe0464"
	DefaultRingEndColor   = "#7d0eb1"
	DefaultTextColor      = "#00ff00"

	DefaultPercent = "0%"
)

// Config is the full runtime configuration.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Wave   WaveConfig   `yaml:"wave"`
}

// WindowConfig sizes the host window and the square widget inside it.
type WindowConfig struct {
	Width      int    `yaml:"width" validate:"gt=0"`
	Height     int    `yaml:"height" validate:"gt=0"`
	Title      string `yaml:"title"`
	WidgetSize int    `yaml:"widget_size" validate:"gt=0,ltefield=Width,ltefield=Height"`
}

// WaveConfig holds the widget styling options.
type WaveConfig struct {
	AboveWaveColor string `yaml:"above_wave_color" validate:"hexcolor"`
	BelowWaveColor string `yaml:"below_wave_color" validate:"hexcolor"`
	AboveWaveAlpha int    `yaml:"above_wave_alpha" validate:"gte=0,lte=255"`
	BelowWaveAlpha int    `yaml:"below_wave_alpha" validate:"gte=0,lte=255"`
	RingThickness  int    `yaml:"ring_thickness" validate:"gte=0"`
	RingStartColor string `yaml:"ring_start_color" validate:"hexcolor"`
	RingEndColor   string `yaml:"ring_end_color" validate:"hexcolor"`
	TextColor      string `yaml:"text_color" validate:"hexcolor"`

	// Size classes: large, middle or little. Unknown names give a flat wave.
	WaveHeight    string `yaml:"wave_height"`
	WaveLength    string `yaml:"wave_length"`
	WaveFrequency string `yaml:"wave_frequency"`

	InitialPercent string `yaml:"initial_percent" validate:"required,contains=%"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      WindowWidth,
			Height:     WindowHeight,
			Title:      "Wave Progress - Esc/Q: Quit",
			WidgetSize: WidgetSize,
		},
		Wave: WaveConfig{
			AboveWaveColor: DefaultAboveWaveColor,
			BelowWaveColor: DefaultBelowWaveColor,
			AboveWaveAlpha: DefaultAboveWaveAlpha,
			BelowWaveAlpha: DefaultBelowWaveAlpha,
			RingThickness:  DefaultRingThickness,
			RingStartColor: DefaultRingStartColor,
			RingEndColor:   DefaultRingEndColor,
			TextColor:      DefaultTextColor,
			WaveHeight:     "middle",
			WaveLength:     "middle",
			WaveFrequency:  "middle",
			InitialPercent: DefaultPercent,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and color formats.
func (c *Config) Validate() error {
	if err := get().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	// The ring must leave room for the inscribed circle.
	if 2*c.Wave.RingThickness >= c.Window.WidgetSize {
		return fmt.Errorf("invalid config: ring_thickness %d leaves no room inside widget_size %d",
			c.Wave.RingThickness, c.Window.WidgetSize)
	}
	return nil
}

//nolint:gochecknoglobals // Shared validator singleton.
var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

func get() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validatorInst
}
