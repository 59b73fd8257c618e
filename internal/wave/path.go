package wave

import "math"

// xSpace is the horizontal distance between wave samples.
const xSpace = 20.0

// Point is a vertex of a wave polyline.
type Point struct {
	X, Y float64
}

// WavePath is an open polyline from the left to the right circle intercept of the
// baseline. Both ends sit on the baseline so the fill closes against the circle.
type WavePath []Point

// BuildPath samples y = amplitude·sin(ω·x + phase) + baseline between the two
// intercepts every xSpace pixels.
func BuildPath(g Geometry, amplitude, phase, baseline float64) WavePath {
	x1, x2 := g.Intercepts(baseline)
	n := int(math.Ceil((x2 - x1) / xSpace))
	if n < 0 {
		n = 0
	}

	path := make(WavePath, 0, n+2)
	path = append(path, Point{X: x1, Y: baseline})
	for k := 0; k < n; k++ {
		x := x1 + float64(k)*xSpace
		path = append(path, Point{X: x, Y: amplitude*math.Sin(g.Omega*x+phase) + baseline})
	}
	path = append(path, Point{X: x2, Y: baseline})
	return path
}

// First and Last return the endpoints. Paths built by BuildPath are never empty.
func (p WavePath) First() Point { return p[0] }
func (p WavePath) Last() Point  { return p[len(p)-1] }
