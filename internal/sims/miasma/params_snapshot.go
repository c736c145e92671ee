package miasma

import "github.com/mipli/miasma/internal/core"

func (s *Sim) Parameters() core.ParameterSnapshot {
	params := s.grid.Params()
	stable, settled := 0, 0
	if s.Stable() {
		stable = 1
	}
	if s.Settled() {
		settled = 1
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", s.source.Width),
				core.IntParam("h", "Height", s.source.Height),
				core.IntParam("seed", "Seed", int(s.cfg.Seed)),
				core.IntParam("entities", "Entities", s.world.Entities.Len()),
			},
		},
		{
			Name: "Flow",
			Params: []core.Parameter{
				core.FloatParam("viscosity", "Viscosity", params.Viscosity),
				core.FloatParam("aligned_gain", "Aligned gain", params.AlignedGain),
				core.FloatParam("misaligned_gain", "Misaligned gain", params.MisalignedGain),
				core.IntParam("momentum_connections", "Momentum connections", params.MomentumConnections),
				core.IntParam("flows_per_tick", "Flows per tick", s.cfg.FlowsPerTick),
				core.FloatParam("inject", "Inject amount", s.cfg.InjectAmount),
			},
		},
		{
			Name: "Readings",
			Params: []core.Parameter{
				core.IntParam("tick", "Tick", s.tick),
				core.FloatParam("total_fluid", "Total fluid", s.TotalFluid()),
				core.IntParam("stable", "Stable", stable),
				core.IntParam("settled", "Settled", settled),
			},
		},
	}}
}

// SetFloatParameter adjusts a flow tunable at runtime. Gains and the
// injection amount clamp at zero; viscosity is taken as given.
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	params := s.grid.Params()
	switch key {
	case "viscosity":
		params.Viscosity = value
	case "aligned_gain":
		params.AlignedGain = max(value, 0)
	case "misaligned_gain":
		params.MisalignedGain = max(value, 0)
	case "inject":
		s.cfg.InjectAmount = max(value, 0)
		return true
	default:
		return false
	}
	s.grid.SetParams(params)
	s.cfg.Fluid = params
	return true
}
