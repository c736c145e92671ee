package world

import (
	"image"
	"image/color"

	"github.com/mipli/miasma/pkg/fluid"
)

var (
	boulderPhysics = Physics{Durability: 20, Hardness: 6, Blocking: true}
	cratePhysics   = Physics{Durability: 4, Hardness: 1, Blocking: true}

	boulderVisual = Visual{Glyph: GlyphBoulder, Color: color.RGBA{0x9a, 0x8c, 0x7a, 0xff}}
	crateVisual   = Visual{Glyph: GlyphCrate, Color: color.RGBA{0xb0, 0x7a, 0x3c, 0xff}}
)

// World combines a tile map with the entities standing on it. It is the
// connection grid the simulation flows over: doors and blocking bodies
// change it between ticks.
type World struct {
	Map      *Map
	Entities *EntityManager
}

var _ fluid.ConnectionGrid = (*World)(nil)

// NewWorld takes ownership of m and spawns its placements.
func NewWorld(m *Map) *World {
	w := &World{Map: m, Entities: NewEntityManager()}
	for _, pl := range m.Placements {
		w.Spawn(pl)
	}
	return w
}

// Spawn creates the entity described by pl. Unknown kinds are ignored.
func (w *World) Spawn(pl Placement) (EntityID, bool) {
	var ph Physics
	var vis Visual
	switch pl.Kind {
	case GlyphBoulder:
		ph, vis = boulderPhysics, boulderVisual
	case GlyphCrate:
		ph, vis = cratePhysics, crateVisual
	default:
		return 0, false
	}
	ph.Position = pl.Pos
	id := w.Entities.CreateEntity()
	w.Entities.AddPhysics(id, ph)
	w.Entities.AddVisual(id, vis)
	return id, true
}

// Blocked reports whether a blocking entity stands on p.
func (w *World) Blocked(p image.Point) bool {
	for _, id := range w.Entities.At(p) {
		if ph, _ := w.Entities.Physics(id); ph.Blocking {
			return true
		}
	}
	return false
}

// IsSolid reports whether p is solid terrain or holds a blocking entity.
func (w *World) IsSolid(p image.Point) bool {
	return w.Map.IsSolid(p) || w.Blocked(p)
}

// Connections lists neighbours of p that are neither solid terrain nor
// blocked by an entity.
func (w *World) Connections(p image.Point) []image.Point {
	return openNeighbours(p, w.IsSolid)
}

// ToggleDoor opens a closed door or closes an open one. It reports the new
// tile and whether p held a door.
func (w *World) ToggleDoor(p image.Point) (Tile, bool) {
	t := w.Map.At(p)
	if !t.IsDoor() {
		return t, false
	}
	next := TileDoorOpen
	if t == TileDoorOpen {
		next = TileDoorClosed
	}
	w.Map.Set(p, next)
	return next, true
}

// ToggleDoorsAround toggles every door orthogonally adjacent to p and
// returns how many changed.
func (w *World) ToggleDoorsAround(p image.Point) int {
	n := 0
	for _, q := range fluid.Neighbours(p) {
		if _, ok := w.ToggleDoor(q); ok {
			n++
		}
	}
	return n
}
