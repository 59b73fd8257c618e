package wave

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPhase_StaysBounded(t *testing.T) {
	p := Phase(0)
	for i := 0; i < 100000; i++ {
		p = p.Advance(0.13)
		require.GreaterOrEqual(t, p.Radians(), 0.0)
		require.Less(t, p.Radians(), 2*math.Pi)
	}
}

func TestPhase_WrapsInOneStep(t *testing.T) {
	p := NewPhase(2*math.Pi - 0.05)
	next := p.Advance(0.09)
	require.InDelta(t, 0.04, next.Radians(), 1e-12)

	wraps := 0
	prev := Phase(0)
	for i := 0; i < 200; i++ {
		cur := prev.Advance(0.09)
		if cur < prev {
			wraps++
			require.Less(t, cur.Radians(), 0.09)
		}
		prev = cur
	}
	require.Equal(t, int(math.Floor(200*0.09/(2*math.Pi))), wraps)
	require.Equal(t, 2, wraps)
}

func TestNewPhase_Normalizes(t *testing.T) {
	require.InDelta(t, 1.0, NewPhase(2*math.Pi+1).Radians(), 1e-12)
	require.InDelta(t, 2*math.Pi-1, NewPhase(-1).Radians(), 1e-12)
	require.InDelta(t, 3.2, NewPhase(3.2).Radians(), 1e-12)
}
