// Command stability-sweep runs one injection per flow parameter set and
// reports how long each takes to settle.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/osfs"

	"github.com/mipli/miasma/internal/sims/miasma"
)

type paramSet struct {
	viscosity      float64
	alignedGain    float64
	misalignedGain float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("viscosity=%.2f aligned=%.2f misaligned=%.2f", p.viscosity, p.alignedGain, p.misalignedGain)
}

type scenarioResult struct {
	params   paramSet
	settled  bool
	steps    int
	drift    float64
	minLevel float64
	peak     float64
}

type sweepConfig struct {
	Map     string
	Seed    int64
	Steps   int
	Workers int
	Inject  float64
}

func main() {
	def := miasma.DefaultConfig()
	cfg := sweepConfig{Map: def.Map, Seed: def.Seed, Inject: def.InjectAmount}
	flag.StringVar(&cfg.Map, "map", cfg.Map, `map file, "default" or "cave"`)
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "cave seed")
	flag.IntVar(&cfg.Steps, "steps", 2000, "step cap per scenario")
	flag.IntVar(&cfg.Workers, "workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Float64Var(&cfg.Inject, "inject", cfg.Inject, "fluid injected at the spawn")
	flag.Parse()

	var sets []paramSet
	for _, v := range []float64{0.25, 0.5, 0.75, 1.0} {
		for _, aligned := range []float64{1.0, 1.5, 2.0, 2.5} {
			for _, misaligned := range []float64{0.25, 0.5, 0.75, 1.0} {
				sets = append(sets, paramSet{viscosity: v, alignedGain: aligned, misalignedGain: misaligned})
			}
		}
	}

	start := time.Now()
	all, err := sweep(cfg, osfs.New("."), sets)
	if err != nil {
		log.Fatal(err)
	}
	report(os.Stdout, all, time.Since(start))
}

// sweep runs every set on its own scenario and returns the results ordered
// by settling time, unsettled runs last.
func sweep(cfg sweepConfig, fs billy.Filesystem, sets []paramSet) ([]scenarioResult, error) {
	base := miasma.DefaultConfig()
	base.Map = cfg.Map
	base.Seed = cfg.Seed
	base.InjectAmount = cfg.Inject
	// Fail on a bad map once instead of once per worker.
	if _, err := miasma.NewWithConfig(base, fs); err != nil {
		return nil, err
	}

	workers := max(cfg.Workers, 1)
	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(base, fs, params, cfg.Steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.settled != b.settled {
			return a.settled
		}
		if a.steps != b.steps {
			return a.steps < b.steps
		}
		if a.params.viscosity != b.params.viscosity {
			return a.params.viscosity < b.params.viscosity
		}
		if a.params.alignedGain != b.params.alignedGain {
			return a.params.alignedGain < b.params.alignedGain
		}
		return a.params.misalignedGain < b.params.misalignedGain
	})
	return all, nil
}

func runScenario(base miasma.Config, fs billy.Filesystem, params paramSet, steps int) scenarioResult {
	cfg := base
	cfg.Fluid.Viscosity = params.viscosity
	cfg.Fluid.AlignedGain = params.alignedGain
	cfg.Fluid.MisalignedGain = params.misalignedGain

	res := scenarioResult{params: params}
	s, err := miasma.NewWithConfig(cfg, fs)
	if err != nil {
		return res
	}
	s.InjectAtCursor()
	before := s.TotalFluid()

	levels := make([]float64, 0, s.Size().W*s.Size().H)
	for step := 0; step < steps; step++ {
		s.Step()

		levels = levels[:0]
		for p, v := range s.Grid().All() {
			levels = append(levels, v)
			if pr, _ := s.Grid().Pressure(p); pr > res.peak {
				res.peak = pr
			}
		}
		res.minLevel = min(res.minLevel, floats.Min(levels))

		if s.Settled() {
			res.settled = true
			res.steps = step + 1
			break
		}
	}
	if !res.settled {
		res.steps = steps
	}
	res.drift = s.TotalFluid() - before
	return res
}

func report(out io.Writer, all []scenarioResult, elapsed time.Duration) {
	var settleSteps []float64
	for _, res := range all {
		if res.settled {
			settleSteps = append(settleSteps, float64(res.steps))
		}
	}

	fmt.Fprintf(out, "Swept %d parameter sets in %s, %d settled\n", len(all), elapsed.Round(time.Millisecond), len(settleSteps))
	switch {
	case len(settleSteps) > 1:
		mean, std := stat.MeanStdDev(settleSteps, nil)
		fmt.Fprintf(out, "settle steps: min=%.0f max=%.0f mean=%.1f std=%.1f\n",
			floats.Min(settleSteps), floats.Max(settleSteps), mean, std)
	case len(settleSteps) == 1:
		fmt.Fprintf(out, "settle steps: %.0f\n", settleSteps[0])
	}

	fmt.Fprintf(out, "\nTop 5 results:\n")
	for i := 0; i < len(all) && i < 5; i++ {
		res := all[i]
		fmt.Fprintf(out, "%2d) settled=%t steps=%d drift=%.2e minLevel=%.3f peak=%.2f %s\n",
			i+1, res.settled, res.steps, res.drift, res.minLevel, res.peak, res.params)
	}
}
