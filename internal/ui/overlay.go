//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mipli/miasma/internal/core"
	"github.com/mipli/miasma/internal/render"
	"github.com/mipli/miasma/pkg/fluid"
)

type pressureMaskProvider interface {
	PressureMask() []float32
}

type gridProvider interface {
	Grid() *fluid.Grid
}

// Overlay draws optional debugging visuals on top of the base simulation.
type Overlay struct {
	sim          core.Sim
	scale        int
	showPressure bool
	showFlow     bool
	maskImg      *ebiten.Image
	maskBuf      []byte

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: max(scale, 1), showPressure: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles layers: 1 for pressure, 2 for flow arrows.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showPressure = !o.showPressure
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showFlow = !o.showFlow
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	total := size.W * size.H
	if total <= 0 {
		return
	}

	if provider, ok := o.sim.(pressureMaskProvider); ok && o.showPressure {
		if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
			o.maskImg = ebiten.NewImage(size.W, size.H)
			o.maskBuf = make([]byte, 4*total)
		}
		o.drawMask(screen, provider.PressureMask())
	}

	if provider, ok := o.sim.(gridProvider); ok && o.showFlow {
		o.drawFlow(screen, provider.Grid())
	}
}

func (o *Overlay) drawMask(screen *ebiten.Image, mask []float32) {
	if len(mask)*4 != len(o.maskBuf) {
		return
	}
	for i, v := range mask {
		base := i * 4
		if v <= 0 {
			clear(o.maskBuf[base : base+4])
			continue
		}
		col := render.PressureGradient.At(float64(v))
		// WritePixels expects premultiplied alpha.
		a := float64(col.A) / 255
		o.maskBuf[base+0] = uint8(math.Round(float64(col.R) * a))
		o.maskBuf[base+1] = uint8(math.Round(float64(col.G) * a))
		o.maskBuf[base+2] = uint8(math.Round(float64(col.B) * a))
		o.maskBuf[base+3] = col.A
	}
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.maskImg, op)
}

// drawFlow marks each wet cell with a short stroke pointing where its fluid
// last came from, tinted by level.
func (o *Overlay) drawFlow(screen *ebiten.Image, g *fluid.Grid) {
	if g == nil {
		return
	}
	scale := float64(o.scale)
	shades := render.FluidGradient.Colors(render.Levels)
	for p, level := range g.All() {
		v, _ := g.Velocity(p)
		if level <= 0 || v == (image.Point{}) {
			continue
		}
		cx := (float64(p.X) + 0.5) * scale
		cy := (float64(p.Y) + 0.5) * scale
		length := scale * 0.45
		tipX := cx + float64(v.X)*length
		tipY := cy + float64(v.Y)*length
		col := shades[render.Level(level)]
		o.drawLine(screen, cx, cy, tipX, tipY, math.Max(1, scale*0.15), col)
		o.drawPoint(screen, tipX, tipY, math.Max(2, scale*0.3), col)
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 || thickness <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
