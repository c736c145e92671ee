package fluid

import "image"

// ConnectionGrid reports which cells fluid may pass between. Implementations
// are queried fresh on every Flow call, so obstacles may change between steps
// without notifying the grid.
type ConnectionGrid interface {
	// Connections lists the von Neumann neighbours of p that are open for
	// flow this step. The answers need not be symmetric.
	Connections(p image.Point) []image.Point
	// IsSolid reports whether p is impassable: a wall, a blocking
	// occupant or a position outside the map.
	IsSolid(p image.Point) bool
}

// Neighbours returns the four von Neumann offsets of p in the order west,
// north, east, south. Callers filter the result for their own openness rules.
func Neighbours(p image.Point) [4]image.Point {
	return [4]image.Point{
		{X: p.X - 1, Y: p.Y},
		{X: p.X, Y: p.Y - 1},
		{X: p.X + 1, Y: p.Y},
		{X: p.X, Y: p.Y + 1},
	}
}
