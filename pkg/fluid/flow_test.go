package fluid

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const obstacleLayout = `
	00000
	00000
	11011
	00010
	00000
`

func fluidAt(t *testing.T, g *Grid, x, y int) float64 {
	t.Helper()
	level, ok := g.Fluid(image.Pt(x, y))
	require.True(t, ok, "(%d,%d) out of bounds", x, y)
	return level
}

func pressureAt(t *testing.T, g *Grid, x, y int) float64 {
	t.Helper()
	p, ok := g.Pressure(image.Pt(x, y))
	require.True(t, ok, "(%d,%d) out of bounds", x, y)
	return p
}

func TestFlowFromCorner(t *testing.T) {
	grid := New(5, 5)
	grid.SetFluid(image.Pt(0, 0), 10)
	assert.InDelta(t, 10, grid.TotalFluidLevel(), 0.001)

	grid.Flow(openWalls(5, 5))

	assert.Equal(t, 2.5, fluidAt(t, grid, 1, 0))
	assert.Equal(t, 2.5, fluidAt(t, grid, 0, 1))
	assert.Equal(t, 5.0, fluidAt(t, grid, 0, 0))
	for p, f := range grid.All() {
		switch p {
		case image.Pt(0, 0), image.Pt(1, 0), image.Pt(0, 1):
		default:
			assert.Equal(t, 0.0, f, "cell %v", p)
		}
	}
	assert.InDelta(t, 10, grid.TotalFluidLevel(), 0.001)
}

func TestFlowInCenter(t *testing.T) {
	grid := New(5, 5)
	grid.SetFluid(image.Pt(2, 2), 10)

	grid.Flow(openWalls(5, 5))

	assert.Equal(t, 0.0, fluidAt(t, grid, 2, 2))
	assert.Equal(t, 2.5, fluidAt(t, grid, 1, 2))
	assert.Equal(t, 2.5, fluidAt(t, grid, 3, 2))
	assert.Equal(t, 2.5, fluidAt(t, grid, 2, 1))
	assert.Equal(t, 2.5, fluidAt(t, grid, 2, 3))
	assert.InDelta(t, 10, grid.TotalFluidLevel(), 0.001)
}

func TestFlowBetweenTwo(t *testing.T) {
	grid := New(5, 5)
	grid.SetFluid(image.Pt(0, 0), 10)
	grid.SetFluid(image.Pt(1, 0), 20)
	assert.InDelta(t, 30, grid.TotalFluidLevel(), 0.001)

	grid.Flow(openWalls(5, 5))

	assert.Equal(t, 10.0, fluidAt(t, grid, 0, 0))
	assert.Equal(t, 2.5, fluidAt(t, grid, 0, 1))
	assert.Equal(t, 7.5, fluidAt(t, grid, 1, 0))
	assert.Equal(t, 5.0, fluidAt(t, grid, 1, 1))
	assert.Equal(t, 5.0, fluidAt(t, grid, 2, 0))
	assert.InDelta(t, 30, grid.TotalFluidLevel(), 0.001)
}

func TestConstantFluidLevel(t *testing.T) {
	grid := New(5, 5)
	grid.SetFluid(image.Pt(1, 0), 21)
	g := openWalls(5, 5)

	for i := 0; i < 500; i++ {
		grid.Flow(g)
		require.InDelta(t, 21, grid.TotalFluidLevel(), 0.001, "step %d", i+1)
	}
}

func TestLevelEqualizer(t *testing.T) {
	grid := New(5, 5)
	grid.SetFluid(image.Pt(0, 0), 50)
	g := openWalls(5, 5)

	steps := 0
	for !grid.IsStable() && steps < 500 {
		grid.Flow(g)
		steps++
	}
	require.True(t, grid.IsStable(), "not stable after %d steps", steps)
	assert.InDelta(t, 50, grid.TotalFluidLevel(), 0.001)
	for p, f := range grid.All() {
		assert.InDelta(t, 50.0/25, f, StableTolerance, "cell %v", p)
	}

	grid.FlowN(g, 500-steps)
	assert.True(t, grid.IsStable())
	assert.InDelta(t, 50, grid.TotalFluidLevel(), 0.001)
}

func TestObstacleFlow(t *testing.T) {
	grid := New(5, 5)
	g := wallsFromString(t, 5, 5, obstacleLayout)
	grid.SetFluid(image.Pt(0, 0), 50)

	grid.FlowN(g, 500)

	assert.InDelta(t, 50, grid.TotalFluidLevel(), 0.001)
	assert.True(t, grid.IsStable())
	for _, p := range []image.Point{{0, 2}, {1, 2}, {3, 2}, {4, 2}, {3, 3}} {
		assert.Equal(t, 0.0, fluidAt(t, grid, p.X, p.Y), "wall %v", p)
	}
	assert.Greater(t, fluidAt(t, grid, 4, 3), 2.4)
	assert.Greater(t, fluidAt(t, grid, 2, 2), 2.4)
}

func TestBasicPressure(t *testing.T) {
	grid := New(5, 5)
	g := wallsFromString(t, 5, 5, obstacleLayout)
	grid.SetFluid(image.Pt(0, 0), 50)

	grid.FlowN(g, 500)

	require.True(t, grid.IsStable())
	assert.InDelta(t, 50, grid.TotalFluidLevel(), 0.001)
	assert.InDelta(t, 0, pressureAt(t, grid, 0, 0), 0.001)

	// Two open sides at 2.5 each push 2×2.5/4, reported four-fold.
	assert.InDelta(t, 5, pressureAt(t, grid, 0, 2), 0.01)
	// (3,3) is fed from three sides.
	assert.InDelta(t, 7.5, pressureAt(t, grid, 3, 3), 0.01)
}

func TestSolidCellsHoldNoFluid(t *testing.T) {
	grid := New(5, 5)
	g := wallsFromString(t, 5, 5, `
		00000
		00000
		00100
		00000
		00000
	`)
	grid.SetFluid(image.Pt(2, 1), 8)
	grid.SetFluid(image.Pt(2, 2), 5)

	grid.Flow(g)

	assert.Equal(t, 0.0, fluidAt(t, grid, 2, 2))
	assert.Equal(t, 8.0, pressureAt(t, grid, 2, 2), "4 × the 8/4 share from (2,1)")
	v, _ := grid.Velocity(image.Pt(2, 2))
	assert.Equal(t, image.Point{}, v)

	centre := image.Pt(2, 2)
	params := grid.Params()
	for i := 0; i < 50; i++ {
		var inbound float64
		for _, p := range g.Connections(centre) {
			level := fluidAt(t, grid, p.X, p.Y)
			if !(level > 0) {
				continue
			}
			share := level / 4
			v, _ := grid.Velocity(p)
			if v != (image.Point{}) && len(g.Connections(p)) == params.MomentumConnections {
				if p.Add(v) == centre {
					share *= params.AlignedGain
				} else {
					share *= params.MisalignedGain
				}
			}
			inbound += share
		}
		require.Greater(t, inbound, 0.0, "step %d", i+2)

		grid.Flow(g)
		require.Equal(t, 0.0, fluidAt(t, grid, 2, 2), "step %d", i+2)
		require.Equal(t, inbound*4, pressureAt(t, grid, 2, 2), "step %d", i+2)
	}
	for p := range grid.All() {
		if !g.IsSolid(p) {
			assert.Equal(t, 0.0, pressureAt(t, grid, p.X, p.Y), "open cell %v", p)
		}
	}
}

func TestBasicVelocityFlow(t *testing.T) {
	g := wallsFromString(t, 5, 5, `
		00000
		11011
		01010
		00000
		00000
	`)
	grid := New(5, 5)
	grid.SetFluid(image.Pt(2, 0), 60)

	grid.Flow(g)
	assert.InDelta(t, 15, fluidAt(t, grid, 2, 0), 0.001)
	assert.InDelta(t, 15, fluidAt(t, grid, 2, 1), 0.001)
	assert.InDelta(t, 0, fluidAt(t, grid, 2, 2), 0.001)

	grid.Flow(g)
	assert.GreaterOrEqual(t, fluidAt(t, grid, 2, 0), 15.0)
	assert.Greater(t, fluidAt(t, grid, 2, 1), 5.0)
	assert.Greater(t, fluidAt(t, grid, 2, 2), 0.0)
	assert.InDelta(t, 0, fluidAt(t, grid, 2, 3), 0.001)

	grid.Flow(g)
	assert.GreaterOrEqual(t, fluidAt(t, grid, 2, 0), 10.0)
	assert.Greater(t, fluidAt(t, grid, 2, 1), 10.0)
	assert.Greater(t, fluidAt(t, grid, 2, 2), 4.0)
	assert.Greater(t, fluidAt(t, grid, 2, 3), 0.0)
	assert.InDelta(t, 0, fluidAt(t, grid, 2, 4), 0.001)

	grid.Flow(g)
	assert.GreaterOrEqual(t, fluidAt(t, grid, 2, 0), 10.0)
	assert.Greater(t, fluidAt(t, grid, 2, 1), 9.0)
	assert.Greater(t, fluidAt(t, grid, 2, 2), 4.0)
	assert.Greater(t, fluidAt(t, grid, 2, 3), 1.0)
	assert.Greater(t, fluidAt(t, grid, 2, 4), 0.0)
	assert.Greater(t, fluidAt(t, grid, 3, 3), 0.0)
	assert.Greater(t, fluidAt(t, grid, 1, 3), 0.0)

	// Momentum carries the stream straight down the corridor.
	assert.Greater(t, fluidAt(t, grid, 2, 4), fluidAt(t, grid, 1, 3))
}

func TestMomentumAlignedAndMisaligned(t *testing.T) {
	grid := New(5, 5)
	grid.SetFluid(image.Pt(2, 2), 8)
	grid.velocity[2+2*5] = image.Pt(1, 0)

	grid.Flow(openWalls(5, 5))

	assert.Equal(t, 5.0, fluidAt(t, grid, 3, 2), "aligned share is 2.5×")
	assert.Equal(t, 1.0, fluidAt(t, grid, 1, 2), "misaligned share is 0.5×")
	assert.Equal(t, 1.0, fluidAt(t, grid, 2, 1))
	assert.Equal(t, 1.0, fluidAt(t, grid, 2, 3))
	assert.Equal(t, 0.0, fluidAt(t, grid, 2, 2))
	assert.InDelta(t, 8, grid.TotalFluidLevel(), 1e-9)
}

func TestMomentumIgnoredNextToWalls(t *testing.T) {
	grid := New(5, 5)
	grid.SetFluid(image.Pt(0, 2), 8)
	grid.velocity[0+2*5] = image.Pt(1, 0)

	grid.Flow(openWalls(5, 5))

	assert.Equal(t, 2.0, fluidAt(t, grid, 1, 2))
	assert.Equal(t, 2.0, fluidAt(t, grid, 0, 1))
	assert.Equal(t, 2.0, fluidAt(t, grid, 0, 3))
	assert.Equal(t, 2.0, fluidAt(t, grid, 0, 2))
}

func TestMomentumParamsAreTunable(t *testing.T) {
	params := DefaultParams()
	params.AlignedGain = 1
	params.MisalignedGain = 1
	grid := NewWithParams(5, 5, params)
	grid.SetFluid(image.Pt(2, 2), 8)
	grid.velocity[2+2*5] = image.Pt(1, 0)

	grid.Flow(openWalls(5, 5))

	for _, p := range Neighbours(image.Pt(2, 2)) {
		assert.Equal(t, 2.0, fluidAt(t, grid, p.X, p.Y), "neighbour %v", p)
	}
}

func TestVelocityRecordsSingleSource(t *testing.T) {
	grid := New(5, 5)
	grid.SetFluid(image.Pt(0, 0), 10)
	grid.Flow(openWalls(5, 5))

	v, ok := grid.Velocity(image.Pt(1, 0))
	require.True(t, ok)
	assert.Equal(t, image.Pt(1, 0), v)
	v, _ = grid.Velocity(image.Pt(0, 1))
	assert.Equal(t, image.Pt(0, 1), v)
	v, _ = grid.Velocity(image.Pt(0, 0))
	assert.Equal(t, image.Point{}, v)

	// (1,1) is fed by both (1,0) and (0,1) on the next step.
	grid.Flow(openWalls(5, 5))
	v, _ = grid.Velocity(image.Pt(1, 1))
	assert.Equal(t, image.Point{}, v)
}

func TestViscosityScalesExchange(t *testing.T) {
	grid := New(5, 5)
	grid.SetViscosity(0.5)
	assert.Equal(t, 0.5, grid.Viscosity())
	grid.SetFluid(image.Pt(0, 0), 10)

	grid.Flow(openWalls(5, 5))

	assert.Equal(t, 7.5, fluidAt(t, grid, 0, 0))
	assert.Equal(t, 1.25, fluidAt(t, grid, 1, 0))
	assert.Equal(t, 1.25, fluidAt(t, grid, 0, 1))
	assert.InDelta(t, 10, grid.TotalFluidLevel(), 1e-9)
}

func TestAsymmetricConnectionsAreTakenLiterally(t *testing.T) {
	grid := New(2, 1)
	grid.SetFluid(image.Pt(0, 0), 8)

	grid.Flow(oneWay{from: image.Pt(0, 0), to: image.Pt(1, 0)})

	assert.Equal(t, 8.0, fluidAt(t, grid, 0, 0), "(0,0) lists no outlets")
	assert.Equal(t, 2.0, fluidAt(t, grid, 1, 0))
}

func TestConstantFluidAfterAdding(t *testing.T) {
	grid := New(5, 5)
	grid.SetFluid(image.Pt(2, 2), 100)
	g := wallsFromString(t, 5, 5, `
		11111
		10001
		10001
		10001
		11111
	`)

	grid.FlowN(g, 100)
	assert.InDelta(t, 100, grid.TotalFluidLevel(), 0.001)
	assert.InDelta(t, 11.1111, fluidAt(t, grid, 2, 2), 0.001)
	// (0,0) is a wall, so the anchored stability check never passes here.
	assert.False(t, grid.IsStable())

	level, ok := grid.AddFluid(image.Pt(2, 2), 100)
	require.True(t, ok)
	assert.InDelta(t, 111.1111, level, 0.001)
	assert.InDelta(t, 200, grid.TotalFluidLevel(), 0.001)

	grid.FlowN(g, 100)
	assert.InDelta(t, 200, grid.TotalFluidLevel(), 0.001)
	assert.InDelta(t, 22.2222, fluidAt(t, grid, 2, 2), 0.001)
}

func TestInjectionAfterStability(t *testing.T) {
	grid := New(5, 5)
	g := openWalls(5, 5)
	grid.SetFluid(image.Pt(0, 0), 50)
	grid.FlowN(g, 500)
	require.True(t, grid.IsStable())

	before := grid.TotalFluidLevel()
	grid.AddFluid(image.Pt(2, 2), 25)
	assert.InDelta(t, before+25, grid.TotalFluidLevel(), 1e-9)

	grid.FlowN(g, 200)
	assert.InDelta(t, before+25, grid.TotalFluidLevel(), 0.001)
}

func TestEnclosedRegionStaysDry(t *testing.T) {
	g := wallsFromString(t, 7, 7, `
		0000000
		0111110
		0100010
		0100010
		0100010
		0111110
		0000000
	`)
	grid := New(7, 7)
	grid.SetFluid(image.Pt(0, 0), 70)

	for i := 0; i < 300; i++ {
		grid.Flow(g)
		for y := 2; y <= 4; y++ {
			for x := 2; x <= 4; x++ {
				require.Equal(t, 0.0, fluidAt(t, grid, x, y), "step %d cell (%d,%d)", i+1, x, y)
			}
		}
	}
	assert.InDelta(t, 70, grid.TotalFluidLevel(), 0.001)
}
