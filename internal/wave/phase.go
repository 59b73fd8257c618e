package wave

import "math"

// Phase is a sine phase offset kept in [0, 2π).
type Phase float64

// NewPhase normalizes v into [0, 2π).
func NewPhase(v float64) Phase {
	return Phase(0).Advance(v)
}

// Advance returns the phase moved forward by step, wrapped in a single step.
func (p Phase) Advance(step float64) Phase {
	v := math.Mod(float64(p)+step, twoPi)
	if v < 0 {
		v += twoPi
	}
	return Phase(v)
}

func (p Phase) Radians() float64 { return float64(p) }
