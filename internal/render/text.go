package render

import (
	"image"
	"strings"

	"github.com/mipli/miasma/internal/world"
	"github.com/mipli/miasma/pkg/fluid"
)

// CursorGlyph marks the player position in text frames.
const CursorGlyph = '@'

// Frame draws the world as text. Layers go terrain, then fluid digits on
// cells holding any fluid, then entities, then the cursor.
func Frame(w *world.World, g *fluid.Grid, cursor image.Point) string {
	m := w.Map
	cells := make([]rune, m.Width*m.Height)
	for p, t := range m.All() {
		cells[p.X+p.Y*m.Width] = t.Glyph()
	}
	if g != nil {
		for p, v := range g.All() {
			if v > 0 && m.InBounds(p) {
				cells[p.X+p.Y*m.Width] = Glyph(v)
			}
		}
	}
	for _, id := range w.Entities.IDs() {
		ph, ok := w.Entities.Physics(id)
		if !ok || !m.InBounds(ph.Position) {
			continue
		}
		if vis, ok := w.Entities.Visual(id); ok {
			cells[ph.Position.X+ph.Position.Y*m.Width] = vis.Glyph
		}
	}
	if m.InBounds(cursor) {
		cells[cursor.X+cursor.Y*m.Width] = CursorGlyph
	}

	var b strings.Builder
	b.Grow(len(cells) + m.Height)
	for y := 0; y < m.Height; y++ {
		b.WriteString(string(cells[y*m.Width : (y+1)*m.Width]))
		b.WriteByte('\n')
	}
	return b.String()
}
