package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters for the GUI.
type Config struct {
	Sim          string
	Scale        int
	TPS          int
	// Rate is simulation steps per second, paced independently of TPS.
	Rate         int
	Seed         int64
	Map          string
	FlowsPerTick int
	Viscosity    float64
	HUDWidth     int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:          "miasma",
		Scale:        12,
		TPS:          60,
		Rate:         8,
		Seed:         1,
		Map:          "default",
		FlowsPerTick: 1,
		Viscosity:    1,
		HUDWidth:     240,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Rate, "rate", c.Rate, "simulation steps per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.StringVar(&c.Map, "map", c.Map, `map file, "default" or "cave"`)
	fs.IntVar(&c.FlowsPerTick, "flows", c.FlowsPerTick, "fluid flows per simulation step")
	fs.Float64Var(&c.Viscosity, "viscosity", c.Viscosity, "flow viscosity")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "parameter panel width in pixels, 0 hides it")
}

// SimParams converts the config into the key/value map sim factories read.
func (c *Config) SimParams() map[string]string {
	return map[string]string{
		"seed":           strconv.FormatInt(c.Seed, 10),
		"map":            c.Map,
		"flows_per_tick": strconv.Itoa(c.FlowsPerTick),
		"viscosity":      strconv.FormatFloat(c.Viscosity, 'g', -1, 64),
	}
}
