package world

import (
	"image"
	"image/color"
	"maps"
	"slices"
)

// EntityID identifies an entity for the lifetime of its manager.
type EntityID uint64

// Physics is the body of an entity. Blocking bodies seal the cell they stand
// on against flow; pressure above Hardness wears Durability down.
type Physics struct {
	Position   image.Point
	Durability int
	Hardness   int
	Blocking   bool
}

// Visual is how an entity is drawn.
type Visual struct {
	Glyph rune
	Color color.RGBA
}

// EntityManager stores components keyed by entity id.
type EntityManager struct {
	next    EntityID
	alive   map[EntityID]struct{}
	physics map[EntityID]*Physics
	visual  map[EntityID]Visual
}

func NewEntityManager() *EntityManager {
	return &EntityManager{
		next:    1,
		alive:   make(map[EntityID]struct{}),
		physics: make(map[EntityID]*Physics),
		visual:  make(map[EntityID]Visual),
	}
}

// CreateEntity allocates a fresh id with no components.
func (em *EntityManager) CreateEntity() EntityID {
	id := em.next
	em.next++
	em.alive[id] = struct{}{}
	return id
}

// AddPhysics attaches or replaces the physics component. Unknown ids are
// ignored.
func (em *EntityManager) AddPhysics(id EntityID, p Physics) {
	if _, ok := em.alive[id]; !ok {
		return
	}
	em.physics[id] = &p
}

// AddVisual attaches or replaces the visual component.
func (em *EntityManager) AddVisual(id EntityID, v Visual) {
	if _, ok := em.alive[id]; !ok {
		return
	}
	em.visual[id] = v
}

// Physics returns the mutable physics component of id.
func (em *EntityManager) Physics(id EntityID) (*Physics, bool) {
	p, ok := em.physics[id]
	return p, ok
}

func (em *EntityManager) Visual(id EntityID) (Visual, bool) {
	v, ok := em.visual[id]
	return v, ok
}

// DeleteEntity drops id and all of its components.
func (em *EntityManager) DeleteEntity(id EntityID) {
	delete(em.alive, id)
	delete(em.physics, id)
	delete(em.visual, id)
}

// Len returns the number of live entities.
func (em *EntityManager) Len() int { return len(em.alive) }

// IDs returns live ids in creation order.
func (em *EntityManager) IDs() []EntityID {
	return slices.Sorted(maps.Keys(em.alive))
}

// At returns the entities whose physics places them on p, in creation order.
func (em *EntityManager) At(p image.Point) []EntityID {
	var out []EntityID
	for _, id := range em.IDs() {
		if ph, ok := em.physics[id]; ok && ph.Position == p {
			out = append(out, id)
		}
	}
	return out
}
