package game

import (
	"fmt"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/wave-progress/internal/config"
	"github.com/iburimskiy/wave-progress/internal/wave"
)

// Game hosts a single wave progress widget in an ebiten window and feeds it the
// window's lifecycle events.
type Game struct {
	cfg      *config.Config
	driver   *wave.Driver
	palette  palette
	viewport wave.Viewport

	player    *player
	lastLabel string

	// last lifecycle state reported to the driver
	started bool
	focused bool
	visible bool

	redraws atomic.Uint64
	lastErr error
}

// New builds the widget from cfg. The animation starts once ebiten lays out
// the window.
func New(cfg *config.Config) (*Game, error) {
	pal, err := newPalette(cfg.Wave)
	if err != nil {
		return nil, err
	}

	opts := wave.Options{
		WaveHeight:    wave.ParseSizeClass(cfg.Wave.WaveHeight),
		WaveLength:    wave.ParseSizeClass(cfg.Wave.WaveLength),
		WaveFrequency: wave.ParseSizeClass(cfg.Wave.WaveFrequency),
	}
	waveCfg := wave.Resolve(opts)
	logrus.WithFields(logrus.Fields{
		"amplitude":  waveCfg.Amplitude,
		"multiplier": waveCfg.LengthMultiplier,
		"speed":      waveCfg.Speed,
	}).Debug("wave resolved")

	g := &Game{
		cfg:      cfg,
		palette:  pal,
		viewport: widgetViewport(cfg.Window),
	}
	renderer := wave.NewRenderer(waveCfg, float64(cfg.Wave.RingThickness))
	g.driver = wave.NewDriver(renderer, wave.WithFrameHandler(func(wave.Frame) {
		g.redraws.Add(1)
	}))

	if err := g.driver.SetFillPercent(cfg.Wave.InitialPercent); err != nil {
		return nil, fmt.Errorf("initial percent: %w", err)
	}
	return g, nil
}

// widgetViewport centers the square widget in the window.
func widgetViewport(w config.WindowConfig) wave.Viewport {
	size := float64(w.WidgetSize)
	return wave.Viewport{
		Left:   (float64(w.Width) - size) / 2,
		Top:    (float64(w.Height) - size) / 2,
		Width:  size,
		Height: size,
	}
}

// SetFillPercent forwards a "<n>%" value to the widget.
func (g *Game) SetFillPercent(s string) error {
	return g.driver.SetFillPercent(s)
}

// Play starts an audio file whose playback position drives the fill level.
func (g *Game) Play(path string) error {
	if g.player != nil {
		g.player.close()
		g.player = nil
	}
	p, err := startPlayer(path)
	if err != nil {
		return err
	}
	g.player = p
	g.lastLabel = ""
	return nil
}

func (g *Game) Update() error {
	g.syncLifecycle(ebiten.IsFocused(), !ebiten.IsWindowMinimized())

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && g.player != nil {
		g.player.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.shutdown()
		return ebiten.Termination
	}

	g.updatePlaybackProgress()
	return nil
}

// syncLifecycle reports focus and visibility changes to the driver.
func (g *Game) syncLifecycle(focused, visible bool) {
	if !g.started || focused != g.focused {
		g.focused = focused
		g.driver.OnFocusChanged(focused)
	}
	if !g.started || visible != g.visible {
		g.visible = visible
		g.driver.OnVisibilityChanged(visible)
	}
	g.started = true
}

func (g *Game) updatePlaybackProgress() {
	if g.player == nil {
		return
	}
	label := percentLabel(g.player.progress())
	if label == g.lastLabel {
		return
	}
	g.lastLabel = label
	if err := g.driver.SetFillPercent(label); err != nil {
		g.lastErr = err
	}
}

func (g *Game) shutdown() {
	g.driver.OnDetached()
	if g.player != nil {
		g.player.close()
		g.player = nil
	}
	logrus.WithField("redraws", g.redraws.Load()).Debug("widget detached")
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.driver.OnLayout(g.viewport)
	return g.cfg.Window.Width, g.cfg.Window.Height
}
