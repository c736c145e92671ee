package world

import (
	"image"
	"iter"
	"slices"
	"strings"

	"github.com/mipli/miasma/pkg/fluid"
)

// Placement records an entity glyph found while parsing a map.
type Placement struct {
	Kind rune
	Pos  image.Point
}

// Map is a fixed-size tile layout. It is the static connection grid: walls
// and closed doors are solid, everything else lets fluid through.
type Map struct {
	Width, Height int
	tiles         []Tile

	// Spawn is where the player cursor starts.
	Spawn image.Point
	// Placements lists entities to create when the map becomes a World.
	Placements []Placement
}

var _ fluid.ConnectionGrid = (*Map)(nil)

// NewMap returns a map of the given size filled with walls.
func NewMap(w, h int) *Map {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Map{Width: w, Height: h, tiles: make([]Tile, w*h)}
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	c := *m
	c.tiles = slices.Clone(m.tiles)
	c.Placements = slices.Clone(m.Placements)
	return &c
}

// Bounds returns the rectangle of valid positions.
func (m *Map) Bounds() image.Rectangle { return image.Rect(0, 0, m.Width, m.Height) }

// InBounds reports whether p lies on the map.
func (m *Map) InBounds(p image.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.Width && p.Y < m.Height
}

// At returns the tile at p. Positions off the map read as walls.
func (m *Map) At(p image.Point) Tile {
	if !m.InBounds(p) {
		return TileWall
	}
	return m.tiles[p.X+p.Y*m.Width]
}

// Set replaces the tile at p. It reports false for positions off the map.
func (m *Map) Set(p image.Point, t Tile) bool {
	if !m.InBounds(p) {
		return false
	}
	m.tiles[p.X+p.Y*m.Width] = t
	return true
}

// All yields every tile in row-major order.
func (m *Map) All() iter.Seq2[image.Point, Tile] {
	return func(yield func(image.Point, Tile) bool) {
		for i, t := range m.tiles {
			if !yield(image.Point{X: i % m.Width, Y: i / m.Width}, t) {
				return
			}
		}
	}
}

// IsSolid reports whether p is a wall, a closed door or off the map.
func (m *Map) IsSolid(p image.Point) bool {
	return m.At(p).Solid()
}

// Connections lists the open neighbours of p. Solid cells list theirs too so
// that fluid pressing against them registers as pressure.
func (m *Map) Connections(p image.Point) []image.Point {
	return openNeighbours(p, m.IsSolid)
}

func openNeighbours(p image.Point, solid func(image.Point) bool) []image.Point {
	out := make([]image.Point, 0, 4)
	for _, n := range fluid.Neighbours(p) {
		if !solid(n) {
			out = append(out, n)
		}
	}
	return out
}

// String renders the tiles in map-file form without placements.
func (m *Map) String() string {
	var b strings.Builder
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			b.WriteRune(m.tiles[x+y*m.Width].Glyph())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
