package wave

// Frame is everything the render callback needs for one redraw.
type Frame struct {
	Geometry Geometry
	Bound    bool
	Baseline float64
	Above    WavePath // foreground layer
	Below    WavePath // background layer
	Arc      ArcSpec
	Fill     FillLevel
}

// Renderer computes the wave paths and the boundary arc tick by tick.
// It is not safe for concurrent use; Driver serializes access to it.
type Renderer struct {
	cfg  WaveConfig
	ring float64

	geom  Geometry
	bound bool

	fill  FillLevel
	above Phase
	below Phase

	frame Frame
}

// NewRenderer creates a renderer for the given wave constants and ring thickness.
func NewRenderer(cfg WaveConfig, ringThickness float64) *Renderer {
	r := &Renderer{
		cfg:   cfg,
		ring:  ringThickness,
		fill:  EmptyFill,
		below: NewPhase(cfg.BackgroundOffset()),
	}
	r.frame = Frame{Fill: r.fill}
	return r
}

func (r *Renderer) Config() WaveConfig { return r.cfg }

// Bind derives the geometry from a sized viewport. It returns false, leaving the
// renderer unbound, while the viewport has no width.
func (r *Renderer) Bind(vp Viewport) bool {
	g, ok := bindGeometry(vp, r.ring, r.cfg.LengthMultiplier)
	if !ok {
		return false
	}
	r.geom = g
	r.bound = true
	return true
}

func (r *Renderer) Bound() bool        { return r.bound }
func (r *Renderer) Geometry() Geometry { return r.geom }

func (r *Renderer) SetFill(level FillLevel) { r.fill = level }
func (r *Renderer) Fill() FillLevel         { return r.fill }

// Phases returns the foreground and background offsets for the next tick.
func (r *Renderer) Phases() (Phase, Phase) { return r.above, r.below }

// Tick rebuilds both paths and the arc from the current phases, then advances
// the phases for the next tick. An unbound renderer only refreshes the label.
func (r *Renderer) Tick() Frame {
	if !r.bound {
		r.frame = Frame{Fill: r.fill}
		return r.frame
	}

	g := r.geom
	baseline := g.Baseline(r.fill.Fraction)
	r.frame = Frame{
		Geometry: g,
		Bound:    true,
		Baseline: baseline,
		Above:    BuildPath(g, r.cfg.Amplitude, r.above.Radians(), baseline),
		Below:    BuildPath(g, r.cfg.Amplitude, r.below.Radians(), baseline),
		Arc:      ArcFor(baseline-(g.Top+g.Ring), g.InnerRadius()),
		Fill:     r.fill,
	}

	r.above = r.above.Advance(r.cfg.Speed)
	r.below = r.below.Advance(r.cfg.Speed)
	return r.frame
}

// Frame returns the last computed frame.
func (r *Renderer) Frame() Frame { return r.frame }
