package wave

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// FrameInterval is the target tick period (~60 Hz).
const FrameInterval = 16 * time.Millisecond

// State of the animation driver.
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Driver runs the renderer on a self-rescheduling tick and maps host lifecycle
// events onto start and stop. All renderer state is mutated under one mutex.
type Driver struct {
	mu sync.Mutex

	r       *Renderer
	sched   Scheduler
	now     func() time.Time
	onFrame func(Frame)
	log     *logrus.Entry

	state    State
	pending  Timer
	gen      uint64
	viewport Viewport
	ticks    uint64
}

// DriverOption customizes a Driver.
type DriverOption func(*Driver)

// WithScheduler replaces the runtime timer scheduler.
func WithScheduler(s Scheduler) DriverOption {
	return func(d *Driver) { d.sched = s }
}

// WithClock replaces time.Now for frame pacing.
func WithClock(now func() time.Time) DriverOption {
	return func(d *Driver) { d.now = now }
}

// WithFrameHandler registers the redraw request made after every tick.
// It is called without the driver lock held.
func WithFrameHandler(f func(Frame)) DriverOption {
	return func(d *Driver) { d.onFrame = f }
}

// WithLogger sets the log entry used for state transitions.
func WithLogger(l *logrus.Entry) DriverOption {
	return func(d *Driver) { d.log = l }
}

// NewDriver creates a stopped driver for r.
func NewDriver(r *Renderer, opts ...DriverOption) *Driver {
	d := &Driver{
		r:     r,
		sched: SystemScheduler(),
		now:   time.Now,
		log:   logrus.WithField("component", "wave"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// OnLayout binds the geometry the first time the viewport has a width and
// starts the animation. Later layouts are ignored.
func (d *Driver) OnLayout(vp Viewport) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.viewport = vp
	if d.r.Bound() {
		return
	}
	if d.bindLocked() {
		d.restartLocked("bound")
	}
}

// OnFocusChanged restarts on focus gain, retrying the binding if the viewport
// was still unsized, and stops on focus loss.
func (d *Driver) OnFocusChanged(focused bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !focused {
		d.stopLocked("focus lost")
		return
	}
	if !d.r.Bound() {
		if d.bindLocked() {
			d.restartLocked("bound on focus")
		}
		return
	}
	d.restartLocked("focus gained")
}

// OnVisibilityChanged stops the animation while hidden and restarts it when shown.
func (d *Driver) OnVisibilityChanged(visible bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !visible {
		d.stopLocked("hidden")
		return
	}
	if d.r.Bound() {
		d.restartLocked("visible")
	}
}

// OnDetached stops the animation for good until another event restarts it.
func (d *Driver) OnDetached() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked("detached")
}

// SetFillPercent parses a "<number>%" value, stores it and restarts the
// animation. On a parse error the previous level is kept.
func (d *Driver) SetFillPercent(s string) error {
	level, err := ParseFillPercent(s)
	if err != nil {
		d.log.WithError(err).Warn("ignoring fill percent")
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.r.SetFill(level)
	d.restartLocked("fill " + level.Label)
	return nil
}

// State reports whether a tick chain is active.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Frame returns the last computed frame for drawing.
func (d *Driver) Frame() Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.r.Frame()
}

// Ticks counts completed ticks.
func (d *Driver) Ticks() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ticks
}

func (d *Driver) bindLocked() bool {
	if !d.r.Bind(d.viewport) {
		d.log.Debug("viewport has no width yet, binding deferred")
		return false
	}
	g := d.r.Geometry()
	d.log.WithFields(logrus.Fields{
		"width":      g.Width,
		"wavelength": g.Wavelength,
		"omega":      g.Omega,
	}).Debug("viewport bound")
	return true
}

// cancelLocked drops the pending tick. Bumping gen also discards a tick whose
// timer already fired and is waiting for the lock.
func (d *Driver) cancelLocked() {
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
	d.gen++
}

func (d *Driver) stopLocked(reason string) {
	d.cancelLocked()
	if d.state == Running {
		d.log.WithField("reason", reason).Debug("animation stopped")
	}
	d.state = Stopped
}

func (d *Driver) restartLocked(reason string) {
	d.cancelLocked()
	if d.state == Stopped {
		d.log.WithField("reason", reason).Debug("animation started")
	}
	d.state = Running
	d.scheduleLocked(0)
}

func (d *Driver) scheduleLocked(delay time.Duration) {
	gen := d.gen
	d.pending = d.sched.AfterFunc(delay, func() { d.tick(gen) })
}

func (d *Driver) tick(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.state != Running {
		d.mu.Unlock()
		return
	}

	start := d.now()
	frame := d.r.Tick()
	d.ticks++
	onFrame := d.onFrame
	d.mu.Unlock()

	// The redraw request counts toward the frame budget.
	if onFrame != nil {
		onFrame(frame)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen || d.state != Running {
		return
	}
	delay := FrameInterval - d.now().Sub(start)
	if delay < 0 {
		delay = 0
	}
	d.scheduleLocked(delay)
}
