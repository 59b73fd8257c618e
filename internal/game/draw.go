package game

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/iburimskiy/wave-progress/internal/wave"
)

var backgroundColor = color.RGBA{R: 18, G: 20, B: 28, A: 255}

//nolint:gochecknoglobals // Shared drawing resources, created on first draw.
var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
	labelFace     = text.NewGoXFace(basicfont.Face7x13)
)

func whiteTexture() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	frame := g.driver.Frame()
	if frame.Bound {
		g.drawRing(screen, frame.Geometry)
	}
	g.drawLabel(screen, frame)
	if frame.Bound {
		fillPath(screen, wavePath(frame.Below), g.palette.below)
		fillPath(screen, wavePath(frame.Above), g.palette.above)
		g.drawArc(screen, frame)
	}

	g.drawStatus(screen)
}

// drawRing paints the full background circle with a top-to-bottom gradient,
// one horizontal line per row.
func (g *Game) drawRing(screen *ebiten.Image, geom wave.Geometry) {
	radius := geom.Width / 2
	cx := geom.Left + radius
	cy := geom.Top + geom.Height/2

	for y := math.Floor(cy - radius); y < cy+radius; y++ {
		dy := y + 0.5 - cy
		d := radius*radius - dy*dy
		if d <= 0 {
			continue
		}
		half := math.Sqrt(d)
		ratio := (y - geom.Top) / geom.Height
		clr := g.palette.ringColor(ratio)
		vector.StrokeLine(screen, float32(cx-half), float32(y+0.5), float32(cx+half), float32(y+0.5), 1, clr, true)
	}
}

func (g *Game) drawLabel(screen *ebiten.Image, frame wave.Frame) {
	vp := g.viewport
	op := &text.DrawOptions{}
	op.GeoM.Translate(vp.Left+vp.Width/2, vp.Top+vp.Height/2)
	op.ColorScale.ScaleWithColor(g.palette.text)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, frame.Fill.Label, labelFace, op)
}

// drawArc fills the circle segment below the baseline so the waves read as
// liquid inside a round vessel.
func (g *Game) drawArc(screen *ebiten.Image, frame wave.Frame) {
	if frame.Arc.Sweep <= 0 {
		return
	}
	cx, cy := frame.Geometry.Center()
	r := frame.Geometry.InnerRadius()
	start, end := frame.Arc.Radians()

	var p vector.Path
	p.MoveTo(float32(cx+r*math.Cos(start)), float32(cy+r*math.Sin(start)))
	p.Arc(float32(cx), float32(cy), float32(r), float32(start), float32(end), vector.Clockwise)
	p.Close()
	fillPath(screen, &p, g.palette.above)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	status := "Esc/Q: Quit"
	if g.player != nil {
		state := "Playing"
		if g.player.paused {
			state = "Paused"
		}
		status = state + " - Space to pause, Esc/Q to quit"

		times := formatDuration(g.player.position()) + " / " + formatDuration(g.player.duration)
		ebitenutil.DebugPrintAt(screen, times, int(g.viewport.Left), int(g.viewport.Top+g.viewport.Height+12))
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

// wavePath turns a wave polyline into a closed vector path. The closing edge
// runs along the baseline.
func wavePath(points wave.WavePath) *vector.Path {
	var p vector.Path
	if len(points) == 0 {
		return &p
	}
	p.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, pt := range points[1:] {
		p.LineTo(float32(pt.X), float32(pt.Y))
	}
	p.Close()
	return &p
}

func fillPath(dst *ebiten.Image, p *vector.Path, clr color.Color) {
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	if len(is) == 0 {
		return
	}
	r, g, b, a := clr.RGBA()
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		FillRule:  ebiten.NonZero,
	}
	dst.DrawTriangles(vs, is, whiteTexture(), op)
}
