// Package mapgen builds cave maps from Perlin noise.
package mapgen

import (
	"fmt"
	"image"
	"strconv"

	"github.com/aquilax/go-perlin"
	"github.com/zyedidia/generic/mapset"

	"github.com/mipli/miasma/internal/world"
	"github.com/mipli/miasma/pkg/core"
)

// Config controls cave generation.
type Config struct {
	Width, Height int
	Seed          int64

	// Noise shape.
	Alpha, Beta float64
	Octaves     int32
	Frequency   float64
	// Cells whose noise exceeds Threshold become floor.
	Threshold float64

	Doors    int
	Boulders int
	Crates   int
}

func DefaultConfig() Config {
	return Config{
		Width:     64,
		Height:    40,
		Seed:      1,
		Alpha:     2,
		Beta:      2,
		Octaves:   3,
		Frequency: 0.11,
		Threshold: -0.05,
		Doors:     4,
		Boulders:  3,
		Crates:    3,
	}
}

// FromMap overrides fields of the default config with string values. Keys
// match the lower-case field names (w, h, seed, frequency, threshold, doors,
// boulders, crates).
func FromMap(values map[string]string) (Config, error) {
	cfg := DefaultConfig()
	ints := map[string]*int{
		"w": &cfg.Width, "h": &cfg.Height,
		"doors": &cfg.Doors, "boulders": &cfg.Boulders, "crates": &cfg.Crates,
	}
	floats := map[string]*float64{"frequency": &cfg.Frequency, "threshold": &cfg.Threshold}
	for key, dst := range ints {
		if raw, ok := values[key]; ok {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return cfg, fmt.Errorf("mapgen %s: %w", key, err)
			}
			*dst = v
		}
	}
	for key, dst := range floats {
		if raw, ok := values[key]; ok {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return cfg, fmt.Errorf("mapgen %s: %w", key, err)
			}
			*dst = v
		}
	}
	if raw, ok := values["seed"]; ok {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("mapgen seed: %w", err)
		}
		cfg.Seed = v
	}
	return cfg, nil
}

// Generate carves a cave. The outer ring is always wall and only the largest
// connected pocket is kept, so every floor cell can be reached from the spawn
// once the doors are open. The same config always yields the same map.
func Generate(cfg Config) *world.Map {
	m := world.NewMap(cfg.Width, cfg.Height)
	noise := perlin.NewPerlin(cfg.Alpha, cfg.Beta, cfg.Octaves, cfg.Seed)
	rng := core.NewRNG(cfg.Seed)

	inner := image.Rect(1, 1, m.Width-1, m.Height-1)
	for y := inner.Min.Y; y < inner.Max.Y; y++ {
		for x := inner.Min.X; x < inner.Max.X; x++ {
			n := noise.Noise2D(float64(x)*cfg.Frequency, float64(y)*cfg.Frequency)
			if n > cfg.Threshold {
				m.Set(image.Pt(x, y), world.TileFloor)
			}
		}
	}

	cave := keepLargestPocket(m)
	if len(cave) == 0 {
		c := image.Pt(m.Width/2, m.Height/2)
		m.Set(c, world.TileFloor)
		cave = []image.Point{c}
	}

	m.Spawn = cave[rng.IntN(len(cave))]
	placeDoors(m, rng, cfg.Doors)
	taken := mapset.Of(m.Spawn)
	place(m, rng, cave, taken, world.GlyphBoulder, cfg.Boulders)
	place(m, rng, cave, taken, world.GlyphCrate, cfg.Crates)
	return m
}

// keepLargestPocket walls off every floor region but the biggest and returns
// the surviving floor cells in row-major order.
func keepLargestPocket(m *world.Map) []image.Point {
	seen := mapset.New[image.Point]()
	best := mapset.New[image.Point]()
	for p, t := range m.All() {
		if t != world.TileFloor || seen.Has(p) {
			continue
		}
		region := world.Reachable(m, p)
		region.Each(seen.Put)
		if region.Size() > best.Size() {
			best = region
		}
	}

	var cave []image.Point
	for p, t := range m.All() {
		if t != world.TileFloor {
			continue
		}
		if best.Has(p) {
			cave = append(cave, p)
		} else {
			m.Set(p, world.TileWall)
		}
	}
	return cave
}

// placeDoors turns up to n one-wide corridor cells into closed doors.
func placeDoors(m *world.Map, rng *core.RNG, n int) {
	var candidates []image.Point
	for p, t := range m.All() {
		if t == world.TileFloor && p != m.Spawn && isChokepoint(m, p) {
			candidates = append(candidates, p)
		}
	}
	for i := 0; i < n && len(candidates) > 0; i++ {
		k := rng.IntN(len(candidates))
		m.Set(candidates[k], world.TileDoorClosed)
		candidates = append(candidates[:k], candidates[k+1:]...)
	}
}

func isChokepoint(m *world.Map, p image.Point) bool {
	floor := func(dx, dy int) bool { return m.At(p.Add(image.Pt(dx, dy))) == world.TileFloor }
	wall := func(dx, dy int) bool { return m.At(p.Add(image.Pt(dx, dy))) == world.TileWall }
	horizontal := floor(-1, 0) && floor(1, 0) && wall(0, -1) && wall(0, 1)
	vertical := floor(0, -1) && floor(0, 1) && wall(-1, 0) && wall(1, 0)
	return horizontal || vertical
}

func place(m *world.Map, rng *core.RNG, cave []image.Point, taken mapset.Set[image.Point], kind rune, n int) {
	for i, tries := 0, 0; i < n && tries < 8*len(cave); tries++ {
		p := cave[rng.IntN(len(cave))]
		if taken.Has(p) || m.At(p) != world.TileFloor {
			continue
		}
		taken.Put(p)
		m.Placements = append(m.Placements, world.Placement{Kind: kind, Pos: p})
		i++
	}
}
