package wave

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FillLevel is the current fill fraction and the label it was set from.
type FillLevel struct {
	Fraction float64
	Label    string
}

// EmptyFill is the level before any percent is set.
var EmptyFill = FillLevel{Label: "0%"}

// ParseFillPercent reads a "<number>%" string. The fraction is number/100 and
// the label keeps the input verbatim.
func ParseFillPercent(s string) (FillLevel, error) {
	idx := strings.Index(s, "%")
	if idx < 0 {
		return FillLevel{}, fmt.Errorf("fill percent %q: missing %%", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s[:idx]), 64)
	if err != nil {
		return FillLevel{}, fmt.Errorf("fill percent %q: %w", s, err)
	}
	if math.IsNaN(v) {
		return FillLevel{}, fmt.Errorf("fill percent %q: not a number", s)
	}
	return FillLevel{Fraction: v / 100, Label: s}, nil
}
