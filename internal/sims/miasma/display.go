package miasma

import (
	"image"
	"image/color"

	"github.com/mipli/miasma/internal/render"
	"github.com/mipli/miasma/internal/world"
)

// Display buffer values. Fluid shades occupy render.Levels entries from
// cellFluid upwards.
const (
	cellFloor uint8 = iota
	cellWall
	cellDoorClosed
	cellDoorOpen
	cellBoulder
	cellCrate
	cellCursor
	cellFluid
)

var miasmaPalette = buildPalette()

// Palette exposes the colour palette used for rendering the display buffer.
func (s *Sim) Palette() []color.RGBA {
	return miasmaPalette
}

func buildPalette() []color.RGBA {
	palette := []color.RGBA{
		cellFloor:      {R: 24, G: 22, B: 20, A: 255},
		cellWall:       {R: 110, G: 104, B: 96, A: 255},
		cellDoorClosed: {R: 140, G: 90, B: 40, A: 255},
		cellDoorOpen:   {R: 70, G: 50, B: 30, A: 255},
		cellBoulder:    {R: 154, G: 140, B: 122, A: 255},
		cellCrate:      {R: 176, G: 122, B: 60, A: 255},
		cellCursor:     {R: 178, G: 0, B: 0, A: 255},
	}
	return append(palette, render.FluidGradient.Colors(render.Levels)...)
}

func tileCell(t world.Tile) uint8 {
	switch t {
	case world.TileFloor:
		return cellFloor
	case world.TileDoorClosed:
		return cellDoorClosed
	case world.TileDoorOpen:
		return cellDoorOpen
	default:
		return cellWall
	}
}

// rebuildDisplay layers terrain, fluid, entities and the cursor the same
// way render.Frame does for text.
func (s *Sim) rebuildDisplay() {
	for p, t := range s.world.Map.All() {
		s.canvas.Set(p, tileCell(t))
	}
	for p, v := range s.grid.All() {
		if v > 0 {
			s.canvas.Set(p, cellFluid+uint8(render.Level(v)))
		}
	}
	for _, id := range s.world.Entities.IDs() {
		ph, ok := s.world.Entities.Physics(id)
		if !ok {
			continue
		}
		cell := cellBoulder
		if vis, ok := s.world.Entities.Visual(id); ok && vis.Glyph == world.GlyphCrate {
			cell = cellCrate
		}
		s.canvas.Set(ph.Position, cell)
	}
	s.canvas.Set(s.cursor, cellCursor)
}

// PressureMask returns per-cell pressure scaled to [0, 1] against the
// highest pressure on the grid. Open cells read 0.
func (s *Sim) PressureMask() []float32 {
	b := s.grid.Bounds()
	w := b.Dx()
	if len(s.mask) != w*b.Dy() {
		s.mask = make([]float32, w*b.Dy())
	}
	peak := 0.0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if v, _ := s.grid.Pressure(image.Pt(x, y)); v > peak {
				peak = v
			}
		}
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v, _ := s.grid.Pressure(image.Pt(x, y))
			if peak > 0 {
				s.mask[x+y*w] = float32(v / peak)
			} else {
				s.mask[x+y*w] = 0
			}
		}
	}
	return s.mask
}
