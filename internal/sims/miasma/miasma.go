// Package miasma runs a miasma cloud over a tile world: fluid flows through
// open cells, builds pressure against walls, doors and bodies, and wears the
// bodies down until they give way.
package miasma

import (
	_ "embed"
	"fmt"
	"image"
	"log"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/osfs"

	"github.com/mipli/miasma/internal/core"
	"github.com/mipli/miasma/internal/mapgen"
	"github.com/mipli/miasma/internal/render"
	"github.com/mipli/miasma/internal/world"
	"github.com/mipli/miasma/pkg/fluid"
)

//go:embed maps/default.txt
var defaultMap string

// DefaultMap parses the built-in map.
func DefaultMap() (*world.Map, error) {
	m, err := world.ParseMap(strings.NewReader(defaultMap))
	if err != nil {
		return nil, fmt.Errorf("failed to parse built-in map: %w", err)
	}
	return m, nil
}

// Sim owns one world and the fluid grid flowing over it.
type Sim struct {
	cfg Config

	source *world.Map
	world  *world.World
	grid   *fluid.Grid
	canvas *core.Canvas
	mask   []float32
	wet    []float64

	cursor image.Point
	tick   int
	damage []world.DamageEvent
}

// New returns a scenario over a copy of m.
func New(m *world.Map, cfg Config) *Sim {
	s := &Sim{cfg: cfg, source: m.Clone()}
	s.Reset(0)
	return s
}

// NewWithConfig resolves cfg.Map: the built-in map, a generated cave, or a
// map file read from fs.
func NewWithConfig(cfg Config, fs billy.Filesystem) (*Sim, error) {
	var (
		m   *world.Map
		err error
	)
	switch cfg.Map {
	case "", MapDefault:
		m, err = DefaultMap()
	case MapCave:
		m = generateCave(cfg, cfg.Seed)
	default:
		if fs == nil {
			return nil, fmt.Errorf("no filesystem to load map %s from", cfg.Map)
		}
		m, err = world.LoadMap(fs, cfg.Map)
	}
	if err != nil {
		return nil, err
	}
	return New(m, cfg), nil
}

func generateCave(cfg Config, seed int64) *world.Map {
	gen := cfg.Cave
	gen.Width, gen.Height, gen.Seed = cfg.Width, cfg.Height, seed
	return mapgen.Generate(gen)
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "miasma" }

// Size reports the grid dimensions.
func (s *Sim) Size() core.Size { return core.Size{W: s.source.Width, H: s.source.Height} }

// Cells exposes the current display buffer.
func (s *Sim) Cells() []uint8 { return s.canvas.Cells() }

// Reset restores the starting map, entities and an empty grid. Generated
// caves are regrown from seed, or from the configured seed when seed is 0.
func (s *Sim) Reset(seed int64) {
	if s.cfg.Map == MapCave && seed != 0 && seed != s.cfg.Seed {
		s.cfg.Seed = seed
		s.source = generateCave(s.cfg, seed)
	}
	s.world = world.NewWorld(s.source.Clone())
	if s.grid != nil && s.grid.Width() == s.source.Width && s.grid.Height() == s.source.Height {
		s.grid.Clear()
		s.grid.SetParams(s.cfg.Fluid)
	} else {
		s.grid = fluid.NewWithParams(s.source.Width, s.source.Height, s.cfg.Fluid)
		s.canvas = core.NewCanvas(s.source.Width, s.source.Height)
	}
	s.cursor = s.source.Spawn
	s.tick = 0
	s.damage = nil
	s.rebuildDisplay()
}

// Step runs FlowsPerTick flows over the world, then lets the pressure
// damage whatever blocks it.
func (s *Sim) Step() {
	s.grid.FlowN(s.world, max(s.cfg.FlowsPerTick, 1))
	s.damage = s.world.ResolveDamage(s.grid)
	s.tick++
	s.rebuildDisplay()
}

// Inject adds amount of fluid at p. Solid cells refuse it since the next
// flow would drop it.
func (s *Sim) Inject(p image.Point, amount float64) (float64, bool) {
	if s.world.IsSolid(p) {
		return 0, false
	}
	v, ok := s.grid.AddFluid(p, amount)
	if ok {
		s.rebuildDisplay()
	}
	return v, ok
}

// InjectAtCursor adds the configured amount under the cursor.
func (s *Sim) InjectAtCursor() (float64, bool) {
	return s.Inject(s.cursor, s.cfg.InjectAmount)
}

// MoveCursor steps the cursor by (dx, dy) unless the target is solid.
func (s *Sim) MoveCursor(dx, dy int) bool {
	next := s.cursor.Add(image.Pt(dx, dy))
	if s.world.IsSolid(next) {
		return false
	}
	s.cursor = next
	s.rebuildDisplay()
	return true
}

// ToggleDoors flips every door next to the cursor and returns the count.
func (s *Sim) ToggleDoors() int {
	n := s.world.ToggleDoorsAround(s.cursor)
	if n > 0 {
		s.rebuildDisplay()
	}
	return n
}

// Cursor returns the player position.
func (s *Sim) Cursor() image.Point { return s.cursor }

// Tick returns the number of steps since the last reset.
func (s *Sim) Tick() int { return s.tick }

// TotalFluid sums fluid over the grid.
func (s *Sim) TotalFluid() float64 { return s.grid.TotalFluidLevel() }

// Stable reports the grid's own stability check, which compares every cell
// against the first one. Maps bordered by walls never pass it.
func (s *Sim) Stable() bool { return s.grid.IsStable() }

// Settled reports whether every wet cell is within fluid.StableTolerance of
// every other. A dry grid counts as settled.
func (s *Sim) Settled() bool {
	s.wet = s.wet[:0]
	for _, v := range s.grid.All() {
		if v > 0 {
			s.wet = append(s.wet, v)
		}
	}
	if len(s.wet) == 0 {
		return true
	}
	return floats.Max(s.wet)-floats.Min(s.wet) < fluid.StableTolerance
}

// LastDamage returns what the most recent step broke or wore down.
func (s *Sim) LastDamage() []world.DamageEvent { return s.damage }

// Grid exposes the fluid grid.
func (s *Sim) Grid() *fluid.Grid { return s.grid }

// World exposes the tile world.
func (s *Sim) World() *world.World { return s.world }

// Frame renders the current state as text.
func (s *Sim) Frame() string { return render.Frame(s.world, s.grid, s.cursor) }

func init() {
	core.Register("miasma", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		s, err := NewWithConfig(c, osfs.New("."))
		if err != nil {
			log.Printf("miasma: %v; using the built-in map", err)
			c.Map = MapDefault
			if s, err = NewWithConfig(c, nil); err != nil {
				log.Fatalf("miasma: %v", err)
			}
		}
		return s
	})
}
