package wave

import "math"

// ArcSpec is the part of the inscribed circle painted under the waves, in degrees.
// 0° points at 3 o'clock and angles grow clockwise in y-down screen space.
type ArcSpec struct {
	Start float64
	Sweep float64
}

// ArcFor computes the arc below a baseline at curY, measured from the top of a
// circle with radius r. The arc's chord is the baseline itself.
func ArcFor(curY, r float64) ArcSpec {
	if r <= 0 {
		return ArcSpec{}
	}
	if curY >= r {
		start := degrees(math.Asin(clampUnit((curY - r) / r)))
		return ArcSpec{Start: start, Sweep: (90 - start) * 2}
	}
	start := -degrees(math.Asin(clampUnit((r - curY) / r)))
	return ArcSpec{Start: start, Sweep: 360 - (90+start)*2}
}

// End is the angle where the arc stops.
func (a ArcSpec) End() float64 { return a.Start + a.Sweep }

func degrees(rad float64) float64 { return rad / math.Pi * 180 }

// Radians returns the start and end angles in radians.
func (a ArcSpec) Radians() (float64, float64) {
	return a.Start / 180 * math.Pi, a.End() / 180 * math.Pi
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
