package mapgen

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mipli/miasma/internal/world"
)

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	a := Generate(cfg)
	b := Generate(cfg)
	assert.Equal(t, a.Format(), b.Format())
}

func TestGenerateKeepsBorderAndSingleCave(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42} {
		cfg := DefaultConfig()
		cfg.Seed = seed
		m := Generate(cfg)
		require.Equal(t, cfg.Width, m.Width)
		require.Equal(t, cfg.Height, m.Height)

		for p, tile := range m.All() {
			border := p.X == 0 || p.Y == 0 || p.X == m.Width-1 || p.Y == m.Height-1
			if border {
				assert.Equal(t, world.TileWall, tile, "seed %d border %v", seed, p)
			}
		}

		open := 0
		for p, tile := range m.All() {
			if tile.IsDoor() {
				m.Set(p, world.TileDoorOpen)
			}
			if tile != world.TileWall {
				open++
			}
		}
		assert.Equal(t, open, world.Reachable(m, m.Spawn).Size(), "seed %d", seed)
	}
}

func TestGeneratePlacements(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Boulders, cfg.Crates = 2, 5
	m := Generate(cfg)

	counts := map[rune]int{}
	seen := map[image.Point]bool{m.Spawn: true}
	for _, pl := range m.Placements {
		counts[pl.Kind]++
		assert.Equal(t, world.TileFloor, m.At(pl.Pos))
		assert.False(t, seen[pl.Pos], "%v used twice", pl.Pos)
		seen[pl.Pos] = true
	}
	assert.Equal(t, 2, counts[world.GlyphBoulder])
	assert.Equal(t, 5, counts[world.GlyphCrate])
}

func TestGenerateTinyMap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 3, 3
	cfg.Boulders, cfg.Crates, cfg.Doors = 1, 1, 1
	m := Generate(cfg)

	assert.Equal(t, image.Pt(1, 1), m.Spawn)
	assert.Equal(t, world.TileFloor, m.At(image.Pt(1, 1)))
	assert.Empty(t, m.Placements, "no room left beside the spawn")
}

func TestFromMap(t *testing.T) {
	cfg, err := FromMap(map[string]string{"w": "20", "seed": "9", "threshold": "0.2"})
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Width)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, 0.2, cfg.Threshold)

	_, err = FromMap(map[string]string{"doors": "many"})
	assert.ErrorContains(t, err, "mapgen doors")
}
