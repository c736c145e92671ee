package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mipli/miasma/internal/core"
)

// tuneStep is how far one key press moves a float parameter.
const tuneStep = 0.05

// tunables lists the float parameters a FloatParameterSetter may accept, in
// snapshot order. Readings are display-only.
func tunables(s core.ParameterSnapshot) []core.Parameter {
	var out []core.Parameter
	for _, g := range s.Groups {
		if g.Name == "Readings" {
			continue
		}
		for _, p := range g.Params {
			if p.Type == core.ParamTypeFloat {
				out = append(out, p)
			}
		}
	}
	return out
}

// nudge moves a formatted float parameter by dir steps.
func nudge(p core.Parameter, dir int) (float64, error) {
	v, err := strconv.ParseFloat(p.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("parameter %s: %w", p.Key, err)
	}
	return v + float64(dir)*tuneStep, nil
}

// panelLines renders the snapshot as text, marking the selected key.
func panelLines(title string, s core.ParameterSnapshot, selected string) []string {
	lines := []string{title, ""}
	for _, g := range s.Groups {
		lines = append(lines, g.Name)
		for _, p := range g.Params {
			mark := "  "
			if p.Key == selected {
				mark = "> "
			}
			lines = append(lines, fmt.Sprintf("%s%s: %s", mark, p.Label, p.Value))
		}
		lines = append(lines, "")
	}
	return lines
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	name := sim.Name()
	return strings.ToUpper(name[:1]) + name[1:] + " Controls"
}
