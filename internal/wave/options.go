package wave

import "strings"

// SizeClass selects one of the three wave presets.
type SizeClass int

const (
	Large  SizeClass = 1
	Middle SizeClass = 2
	Little SizeClass = 3
)

// Preset tables, indexed by SizeClass.
const (
	waveHeightLarge  = 16
	waveHeightMiddle = 8
	waveHeightLittle = 5

	waveLengthMultipleLarge  = 1.5
	waveLengthMultipleMiddle = 1.0
	waveLengthMultipleLittle = 0.5

	waveSpeedFast   = 0.13
	waveSpeedNormal = 0.09
	waveSpeedSlow   = 0.05

	// backgroundLag is the share of the amplitude the background layer starts ahead by.
	backgroundLag = 0.4
)

// ParseSizeClass maps a styling name to a SizeClass. An empty name selects Middle,
// an unknown one returns 0 which resolves to a flat, invisible wave.
func ParseSizeClass(name string) SizeClass {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return Middle
	case "large":
		return Large
	case "middle":
		return Middle
	case "little":
		return Little
	}
	return 0
}

func (s SizeClass) String() string {
	switch s {
	case Large:
		return "large"
	case Middle:
		return "middle"
	case Little:
		return "little"
	}
	return "unknown"
}

// Options are the three size selectors supplied by the host's styling input.
type Options struct {
	WaveHeight    SizeClass
	WaveLength    SizeClass
	WaveFrequency SizeClass
}

// DefaultOptions selects the middle preset for every selector.
func DefaultOptions() Options {
	return Options{WaveHeight: Middle, WaveLength: Middle, WaveFrequency: Middle}
}

// WaveConfig holds the resolved wave constants. It does not change after construction.
type WaveConfig struct {
	Amplitude        float64 // wave height in pixels
	LengthMultiplier float64 // wavelength as a multiple of the viewport width
	Speed            float64 // phase advance per tick, radians
}

// Resolve turns the size selectors into concrete constants.
func Resolve(o Options) WaveConfig {
	return WaveConfig{
		Amplitude:        amplitudeFor(o.WaveHeight),
		LengthMultiplier: multiplierFor(o.WaveLength),
		Speed:            speedFor(o.WaveFrequency),
	}
}

// BackgroundOffset is the initial phase of the background layer.
func (c WaveConfig) BackgroundOffset() float64 {
	return c.Amplitude * backgroundLag
}

func amplitudeFor(s SizeClass) float64 {
	switch s {
	case Large:
		return waveHeightLarge
	case Middle:
		return waveHeightMiddle
	case Little:
		return waveHeightLittle
	}
	return 0
}

func multiplierFor(s SizeClass) float64 {
	switch s {
	case Large:
		return waveLengthMultipleLarge
	case Middle:
		return waveLengthMultipleMiddle
	case Little:
		return waveLengthMultipleLittle
	}
	return 0
}

func speedFor(s SizeClass) float64 {
	switch s {
	case Large:
		return waveSpeedFast
	case Middle:
		return waveSpeedNormal
	case Little:
		return waveSpeedSlow
	}
	return 0
}
