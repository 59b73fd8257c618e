package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/wave-progress/internal/config"
)

// palette holds the resolved paint colors.
type palette struct {
	above     color.NRGBA
	below     color.NRGBA
	ringStart colorful.Color
	ringEnd   colorful.Color
	text      color.NRGBA
}

func newPalette(cfg config.WaveConfig) (palette, error) {
	above, err := parseColor(cfg.AboveWaveColor, cfg.AboveWaveAlpha)
	if err != nil {
		return palette{}, err
	}
	below, err := parseColor(cfg.BelowWaveColor, cfg.BelowWaveAlpha)
	if err != nil {
		return palette{}, err
	}
	text, err := parseColor(cfg.TextColor, 255)
	if err != nil {
		return palette{}, err
	}
	start, err := colorful.Hex(cfg.RingStartColor)
	if err != nil {
		return palette{}, fmt.Errorf("ring start color: %w", err)
	}
	end, err := colorful.Hex(cfg.RingEndColor)
	if err != nil {
		return palette{}, fmt.Errorf("ring end color: %w", err)
	}
	return palette{above: above, below: below, ringStart: start, ringEnd: end, text: text}, nil
}

// ringColor returns the vertical gradient color at ratio (0 top, 1 bottom).
func (p palette) ringColor(ratio float64) color.NRGBA {
	r, g, b := p.ringStart.BlendRgb(p.ringEnd, clamp01(ratio)).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func parseColor(hex string, alpha int) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Max(0, math.Min(255, float64(alpha))))}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// percentLabel formats a fraction as the "<n>%" string the driver accepts.
func percentLabel(fraction float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(clamp01(fraction)*100)))
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
