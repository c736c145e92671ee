package fluid

import (
	"fmt"
	"strings"
)

// String renders the fluid layer as a table, one row per line.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			fmt.Fprintf(&b, " %06.3f ", g.fluid[x+y*g.w])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// VelocityString renders the velocity layer as dx,dy pairs.
func (g *Grid) VelocityString() string {
	var b strings.Builder
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			v := g.velocity[x+y*g.w]
			fmt.Fprintf(&b, " %02d,%02d ", v.X, v.Y)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
