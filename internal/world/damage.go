package world

import (
	"image"
	"math"
)

// PressureSource reads the pressure built up in a cell.
type PressureSource interface {
	Pressure(p image.Point) (float64, bool)
}

// DamageEvent reports one entity worn down by pressure during a tick.
type DamageEvent struct {
	ID        EntityID
	Pos       image.Point
	Force     int
	Damage    int
	Destroyed bool
}

// ResolveDamage applies pressure to every blocking entity. Force is the
// whole part of the cell's pressure; only the excess over Hardness wears
// Durability down. Entities at zero durability or below are deleted, which
// reopens their cell on the next flow.
func (w *World) ResolveDamage(ps PressureSource) []DamageEvent {
	var events []DamageEvent
	for _, id := range w.Entities.IDs() {
		ph, ok := w.Entities.Physics(id)
		if !ok || !ph.Blocking {
			continue
		}
		pressure, ok := ps.Pressure(ph.Position)
		if !ok {
			continue
		}
		force := int(math.Floor(pressure))
		if force <= ph.Hardness {
			continue
		}
		dmg := force - ph.Hardness
		ph.Durability -= dmg
		ev := DamageEvent{ID: id, Pos: ph.Position, Force: force, Damage: dmg}
		if ph.Durability <= 0 {
			ev.Destroyed = true
			w.Entities.DeleteEntity(id)
		}
		events = append(events, ev)
	}
	return events
}
