package fluid

import "image"

// Flow advances the grid by one step. Every cell is recomputed from the state
// at the start of the call and the three layers are replaced together.
func (g *Grid) Flow(cg ConnectionGrid) {
	g.fluid, g.pressure, g.velocity = g.calculateFlow(cg)
}

// FlowN calls Flow n times against the same connection grid.
func (g *Grid) FlowN(cg ConnectionGrid, n int) {
	for i := 0; i < n; i++ {
		g.Flow(cg)
	}
}

type contribution struct {
	from   image.Point
	amount float64
}

func (g *Grid) calculateFlow(cg ConnectionGrid) ([]float64, []float64, []image.Point) {
	total := g.w * g.h
	fluid := make([]float64, total)
	pressure := make([]float64, total)
	velocity := make([]image.Point, total)

	// The oracle must answer consistently for the whole step, so each
	// cell is asked once and the answer reused when it acts as a donor.
	connections := make([][]image.Point, total)
	for i := range connections {
		connections[i] = cg.Connections(g.point(i))
	}

	var flows []contribution
	for i := 0; i < total; i++ {
		here := g.point(i)
		flows = flows[:0]
		var inFlow float64
		for _, p := range connections[i] {
			j, ok := g.index(p)
			if !ok || !(g.fluid[j] > 0) {
				continue
			}
			amount := g.contribution(here, p, j, len(connections[j]))
			flows = append(flows, contribution{from: p, amount: amount})
			inFlow += amount
		}

		if cg.IsSolid(here) {
			pressure[i] = inFlow * 4
			continue
		}

		outFlow := g.fluid[i] / 4 * float64(len(connections[i]))
		fluid[i] = g.fluid[i] + g.params.Viscosity*(inFlow-outFlow)
		if len(flows) == 1 {
			velocity[i] = here.Sub(flows[0].from)
		}
	}
	return fluid, pressure, velocity
}

// contribution is the share donor p at index j sends to here. A donor hands
// out a quarter of its fluid per open neighbour; momentum boosts the share in
// the direction it last moved and damps the rest, but only for donors with
// exactly MomentumConnections open sides.
func (g *Grid) contribution(here, p image.Point, j, donorConnections int) float64 {
	base := g.fluid[j] / 4
	v := g.velocity[j]
	if v == (image.Point{}) || donorConnections != g.params.MomentumConnections {
		return base
	}
	if p.Add(v) == here {
		return base * g.params.AlignedGain
	}
	return base * g.params.MisalignedGain
}
