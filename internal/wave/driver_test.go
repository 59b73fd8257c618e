package wave

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{delay: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) active() []*fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// fire runs the single pending timer, failing if there is not exactly one.
func (s *fakeScheduler) fire(t *testing.T) *fakeTimer {
	t.Helper()
	pending := s.active()
	require.Len(t, pending, 1)
	timer := pending[0]
	timer.fired = true
	timer.f()
	return timer
}

// steppingClock advances by step on every read.
func steppingClock(step time.Duration) func() time.Time {
	var mu sync.Mutex
	now := time.Unix(0, 0)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(step)
		return now
	}
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newTestDriver(t *testing.T, opts ...DriverOption) (*Driver, *fakeScheduler) {
	t.Helper()
	sched := &fakeScheduler{}
	opts = append([]DriverOption{
		WithScheduler(sched),
		WithClock(steppingClock(time.Millisecond)),
		WithLogger(quietLogger()),
	}, opts...)
	return NewDriver(NewRenderer(Resolve(DefaultOptions()), 10), opts...), sched
}

func TestDriver_StartsOnFirstBinding(t *testing.T) {
	d, sched := newTestDriver(t)
	require.Equal(t, Stopped, d.State())

	d.OnLayout(Viewport{})
	require.Equal(t, Stopped, d.State())
	require.Empty(t, sched.active())

	d.OnLayout(square(0, 0, 200))
	require.Equal(t, Running, d.State())
	require.Len(t, sched.active(), 1)
	require.Zero(t, sched.active()[0].delay)

	// A second layout neither rebinds nor adds a timer.
	d.OnLayout(square(0, 0, 400))
	require.Len(t, sched.active(), 1)
	d.mu.Lock()
	require.Equal(t, 200.0, d.r.Geometry().Width)
	d.mu.Unlock()
}

func TestDriver_TickReschedulesWithPacing(t *testing.T) {
	var frames []Frame
	d, sched := newTestDriver(t,
		WithClock(steppingClock(5*time.Millisecond)),
		WithFrameHandler(func(f Frame) { frames = append(frames, f) }),
	)
	d.OnLayout(square(0, 0, 200))

	sched.fire(t)
	require.Len(t, frames, 1)
	require.True(t, frames[0].Bound)
	require.EqualValues(t, 1, d.Ticks())

	next := sched.active()
	require.Len(t, next, 1)
	require.Equal(t, 11*time.Millisecond, next[0].delay)
}

func TestDriver_PacingIncludesRedrawRequest(t *testing.T) {
	var mu sync.Mutex
	now := time.Unix(0, 0)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	d, sched := newTestDriver(t,
		WithClock(clock),
		WithFrameHandler(func(Frame) {
			mu.Lock()
			now = now.Add(10 * time.Millisecond)
			mu.Unlock()
		}),
	)
	d.OnLayout(square(0, 0, 200))

	sched.fire(t)
	require.Equal(t, 6*time.Millisecond, sched.active()[0].delay)
}

func TestDriver_StopDuringRedrawRequestSchedulesNothing(t *testing.T) {
	var d *Driver
	d, sched := newTestDriver(t, WithFrameHandler(func(Frame) { d.OnDetached() }))
	d.OnLayout(square(0, 0, 200))

	sched.fire(t)
	require.Equal(t, Stopped, d.State())
	require.Empty(t, sched.active())
}

func TestDriver_SlowTickSchedulesImmediately(t *testing.T) {
	d, sched := newTestDriver(t, WithClock(steppingClock(40*time.Millisecond)))
	d.OnLayout(square(0, 0, 200))

	sched.fire(t)
	require.Zero(t, sched.active()[0].delay)
}

func TestDriver_SetFillPercentReplacesPendingTick(t *testing.T) {
	d, sched := newTestDriver(t)
	d.OnLayout(square(0, 0, 200))
	sched.fire(t)

	require.NoError(t, d.SetFillPercent("20%"))
	require.NoError(t, d.SetFillPercent("60%"))
	require.Len(t, sched.active(), 1)

	sched.fire(t)
	f := d.Frame()
	require.Equal(t, "60%", f.Fill.Label)
	require.Equal(t, f.Geometry.Baseline(0.6), f.Baseline)
}

func TestDriver_SetFillPercentStartsWhenStopped(t *testing.T) {
	d, sched := newTestDriver(t)
	require.NoError(t, d.SetFillPercent("10%"))
	require.Equal(t, Running, d.State())

	// Unbound ticks keep running and carry the label.
	sched.fire(t)
	require.False(t, d.Frame().Bound)
	require.Equal(t, "10%", d.Frame().Fill.Label)
	require.Len(t, sched.active(), 1)
}

func TestDriver_SetFillPercentMalformed(t *testing.T) {
	d, sched := newTestDriver(t)
	require.NoError(t, d.SetFillPercent("30%"))
	sched.fire(t)

	require.Error(t, d.SetFillPercent("thirty"))
	require.Error(t, d.SetFillPercent("NaN%"))
	sched.fire(t)
	require.Equal(t, "30%", d.Frame().Fill.Label)
}

func TestDriver_StopCancelsPendingTick(t *testing.T) {
	d, sched := newTestDriver(t)
	d.OnLayout(square(0, 0, 200))
	pending := sched.active()[0]

	d.OnVisibilityChanged(false)
	require.Equal(t, Stopped, d.State())
	require.True(t, pending.stopped)
	require.Empty(t, sched.active())

	d.OnVisibilityChanged(true)
	require.Equal(t, Running, d.State())
	require.Len(t, sched.active(), 1)

	d.OnDetached()
	require.Equal(t, Stopped, d.State())
	require.Empty(t, sched.active())
}

func TestDriver_StaleTickIsDiscarded(t *testing.T) {
	d, sched := newTestDriver(t)
	d.OnLayout(square(0, 0, 200))
	stale := sched.active()[0]

	// The timer fired but lost the race with a stop.
	d.OnFocusChanged(false)
	stale.f()

	require.Zero(t, d.Ticks())
	require.Empty(t, sched.active())
}

func TestDriver_FocusRetriesBinding(t *testing.T) {
	d, sched := newTestDriver(t)
	d.OnLayout(Viewport{Height: 200})
	d.OnFocusChanged(true)
	require.Equal(t, Stopped, d.State())

	d.OnLayout(Viewport{})
	d.OnFocusChanged(true)
	require.Equal(t, Stopped, d.State())

	// The host resized the view without a layout pass.
	d.mu.Lock()
	d.viewport = square(0, 0, 120)
	d.mu.Unlock()
	d.OnFocusChanged(true)
	require.Equal(t, Running, d.State())
	require.Len(t, sched.active(), 1)

	d.OnFocusChanged(true)
	require.Len(t, sched.active(), 1, "restart replaces the pending tick")
}

func TestDriver_VisibleWhileUnboundStaysStopped(t *testing.T) {
	d, sched := newTestDriver(t)
	d.OnVisibilityChanged(true)
	require.Equal(t, Stopped, d.State())
	require.Empty(t, sched.active())
}

func TestDriver_SystemScheduler(t *testing.T) {
	done := make(chan Frame, 1)
	d := NewDriver(NewRenderer(Resolve(DefaultOptions()), 10),
		WithLogger(quietLogger()),
		WithFrameHandler(func(f Frame) {
			select {
			case done <- f:
			default:
			}
		}),
	)
	d.OnLayout(square(0, 0, 200))
	defer d.OnDetached()

	select {
	case f := <-done:
		require.True(t, f.Bound)
	case <-time.After(2 * time.Second):
		t.Fatal("no frame delivered")
	}
}
