package miasma

import (
	"log"
	"strconv"

	"github.com/mipli/miasma/internal/mapgen"
	"github.com/mipli/miasma/pkg/fluid"
)

// Map names understood by Config.Map besides file paths.
const (
	MapDefault = "default"
	MapCave    = "cave"
)

// Config controls the miasma scenario.
type Config struct {
	// Width and Height size generated caves; loaded maps bring their own.
	Width  int
	Height int

	Seed int64

	// Map is MapDefault, MapCave or a map file path.
	Map string

	FlowsPerTick int
	InjectAmount float64

	Fluid fluid.Params

	// Cave shapes generated maps. Its size and seed are taken from Width,
	// Height and Seed above.
	Cave mapgen.Config
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:        64,
		Height:       40,
		Seed:         1,
		Map:          MapDefault,
		FlowsPerTick: 1,
		InjectAmount: 100,
		Fluid:        fluid.DefaultParams(),
		Cave:         mapgen.DefaultConfig(),
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Values that fail to parse or fall out of range keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	c.Fluid = fluid.ParamsFromMap(cfg)
	if cave, err := mapgen.FromMap(cfg); err == nil {
		c.Cave = cave
	} else {
		log.Printf("miasma: %v; using default cave settings", err)
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["map"]; ok && v != "" {
		c.Map = v
	}
	if v, ok := cfg["flows_per_tick"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.FlowsPerTick = parsed
		}
	}
	if v, ok := cfg["inject"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.InjectAmount = parsed
		}
	}
	return c
}
