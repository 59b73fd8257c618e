package wave

import "math"

const twoPi = 2 * math.Pi

// Viewport is the square drawing area reported by the host layout.
type Viewport struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

func (v Viewport) Right() float64  { return v.Left + v.Width }
func (v Viewport) Bottom() float64 { return v.Top + v.Height }

// Geometry is the viewport plus the constants derived from it once it is sized.
type Geometry struct {
	Viewport
	Ring       float64 // ring thickness
	Wavelength float64
	Omega      float64 // angular frequency, 2π / Wavelength
}

// bindGeometry derives wavelength and ω for a sized viewport. It reports false
// when the viewport has no width yet.
func bindGeometry(vp Viewport, ring, multiplier float64) (Geometry, bool) {
	if vp.Width <= 0 {
		return Geometry{}, false
	}
	g := Geometry{
		Viewport:   vp,
		Ring:       ring,
		Wavelength: vp.Width * multiplier,
	}
	if g.Wavelength > 0 {
		g.Omega = twoPi / g.Wavelength
	}
	return g, true
}

// InnerRadius is the radius of the circle inscribed inside the ring.
func (g Geometry) InnerRadius() float64 {
	return (g.Height - 2*g.Ring) / 2
}

// Center returns the center of the inscribed circle.
func (g Geometry) Center() (float64, float64) {
	r := g.InnerRadius()
	return g.Left + g.Ring + r, g.Top + g.Ring + r
}

// Baseline is the y of the fill level: the bottom of the inscribed circle at 0,
// its top at 1. Fractions outside [0,1] are clamped.
func (g Geometry) Baseline(fraction float64) float64 {
	return g.Top + g.Ring + (1-clamp01(fraction))*(g.Height-2*g.Ring)
}

// Intercepts returns where the horizontal line at y crosses the inscribed circle.
// A line outside the circle collapses to the center x.
func (g Geometry) Intercepts(y float64) (float64, float64) {
	r := g.InnerRadius()
	cx, cy := g.Center()
	d := r*r - (y-cy)*(y-cy)
	if d < 0 {
		d = 0
	}
	half := math.Sqrt(d)
	return cx - half, cx + half
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
