package game

import (
	"sync"

	"github.com/faiface/beep"
)

// progressTap wraps a beep.Streamer and counts the samples handed to the speaker
// so the renderer can show how much of the track has played.
type progressTap struct {
	Source beep.Streamer
	total  int
	played int
	mu     sync.RWMutex
}

func newProgressTap(src beep.Streamer, total int) *progressTap {
	return &progressTap{
		Source: src,
		total:  total,
	}
}

func (t *progressTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		t.played += n
		if t.total > 0 && t.played > t.total {
			t.played = t.total
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *progressTap) Err() error { return t.Source.Err() }

// position returns the number of samples played so far.
func (t *progressTap) position() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.played
}

// progress returns the played share of the track in [0,1].
func (t *progressTap) progress() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.total <= 0 {
		return 0
	}
	return clamp01(float64(t.played) / float64(t.total))
}

// finish marks the whole track as played.
func (t *progressTap) finish() {
	t.mu.Lock()
	t.played = t.total
	t.mu.Unlock()
}
