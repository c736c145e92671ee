package world

import (
	"image"

	"github.com/zyedidia/generic/mapset"

	"github.com/mipli/miasma/pkg/fluid"
)

// Reachable returns the open cells fluid injected at from could ever reach
// by following Connections. A solid start yields an empty set.
func Reachable(cg fluid.ConnectionGrid, from image.Point) mapset.Set[image.Point] {
	seen := mapset.New[image.Point]()
	if cg.IsSolid(from) {
		return seen
	}
	seen.Put(from)
	queue := []image.Point{from}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, n := range cg.Connections(p) {
			if seen.Has(n) || cg.IsSolid(n) {
				continue
			}
			seen.Put(n)
			queue = append(queue, n)
		}
	}
	return seen
}
