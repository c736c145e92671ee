package fluid

import "strconv"

// Params holds the tunables of the flow rule. The momentum values are
// empirical.
type Params struct {
	// Viscosity scales the per-step net flow differential. Values above 1
	// overshoot and can drive levels negative.
	Viscosity float64

	// AlignedGain multiplies a donor's quarter share when its last flow
	// direction points at the receiving cell.
	AlignedGain float64
	// MisalignedGain multiplies the quarter share sent anywhere else.
	MisalignedGain float64
	// MomentumConnections is the exact number of open connections a donor
	// needs before momentum applies at all. Donors next to walls diffuse
	// plainly.
	MomentumConnections int
}

// DefaultParams returns the standard flow parameters.
func DefaultParams() Params {
	return Params{
		Viscosity:           1,
		AlignedGain:         2.5,
		MisalignedGain:      0.5,
		MomentumConnections: 4,
	}
}

// ParamsFromMap overrides the defaults from flag-style key/value pairs.
// Unparseable values are ignored.
func ParamsFromMap(cfg map[string]string) Params {
	p := DefaultParams()
	if cfg == nil {
		return p
	}
	if v, ok := cfg["viscosity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			p.Viscosity = parsed
		}
	}
	if v, ok := cfg["aligned_gain"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			p.AlignedGain = parsed
		}
	}
	if v, ok := cfg["misaligned_gain"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			p.MisalignedGain = parsed
		}
	}
	if v, ok := cfg["momentum_connections"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			p.MomentumConnections = parsed
		}
	}
	return p
}
