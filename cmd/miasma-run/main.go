// Command miasma-run plays a miasma scenario without a window and prints
// text frames.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"

	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/osfs"

	"github.com/mipli/miasma/internal/render"
	"github.com/mipli/miasma/internal/sims/miasma"
	"github.com/mipli/miasma/internal/world"
)

type config struct {
	Map         string
	Seed        int64
	Width       int
	Height      int
	Steps       int
	Every       int
	UntilStable bool
	Velocity    bool
	Inject      float64
	At          string
	Viscosity   float64
	Flows       int
	Save        string
	PNG         string
}

func newConfig() *config {
	def := miasma.DefaultConfig()
	return &config{
		Map:       def.Map,
		Seed:      def.Seed,
		Width:     def.Width,
		Height:    def.Height,
		Steps:     100,
		Inject:    def.InjectAmount,
		Viscosity: def.Fluid.Viscosity,
		Flows:     def.FlowsPerTick,
	}
}

func (c *config) bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Map, "map", c.Map, `map file, "default" or "cave"`)
	fs.Int64Var(&c.Seed, "seed", c.Seed, "cave seed")
	fs.IntVar(&c.Width, "w", c.Width, "cave width")
	fs.IntVar(&c.Height, "h", c.Height, "cave height")
	fs.IntVar(&c.Steps, "steps", c.Steps, "steps to run")
	fs.IntVar(&c.Every, "every", c.Every, "print a frame every n steps, 0 prints only the last")
	fs.BoolVar(&c.Velocity, "velocity", c.Velocity, "print the velocity table under each frame")
	fs.BoolVar(&c.UntilStable, "until-stable", c.UntilStable, "stop as soon as every wet cell holds the same level")
	fs.Float64Var(&c.Inject, "inject", c.Inject, "fluid injected before the first step")
	fs.StringVar(&c.At, "at", c.At, "injection cell as x,y (default: spawn)")
	fs.Float64Var(&c.Viscosity, "viscosity", c.Viscosity, "flow viscosity")
	fs.IntVar(&c.Flows, "flows", c.Flows, "flows per step")
	fs.StringVar(&c.Save, "save", c.Save, "write the starting map to this file")
	fs.StringVar(&c.PNG, "png", c.PNG, "write the final display buffer as a PNG")
}

func main() {
	cfg := newConfig()
	cfg.bind(flag.CommandLine)
	flag.Parse()

	if err := run(cfg, osfs.New("."), os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config, fs billy.Filesystem, out io.Writer) error {
	simCfg := miasma.DefaultConfig()
	simCfg.Map = cfg.Map
	simCfg.Seed = cfg.Seed
	simCfg.Width, simCfg.Height = cfg.Width, cfg.Height
	simCfg.FlowsPerTick = cfg.Flows
	simCfg.InjectAmount = cfg.Inject
	simCfg.Fluid.Viscosity = cfg.Viscosity

	s, err := miasma.NewWithConfig(simCfg, fs)
	if err != nil {
		return err
	}
	if cfg.Save != "" {
		if err := world.SaveMap(fs, cfg.Save, s.World().Map); err != nil {
			return err
		}
	}

	at := s.Cursor()
	if cfg.At != "" {
		if at, err = parsePoint(cfg.At); err != nil {
			return err
		}
	}
	if cfg.Inject > 0 {
		if _, ok := s.Inject(at, cfg.Inject); !ok {
			return fmt.Errorf("cannot inject at %v: not an open cell", at)
		}
	}

	for i := 0; i < cfg.Steps; i++ {
		s.Step()
		for _, ev := range s.LastDamage() {
			verb := "worn"
			if ev.Destroyed {
				verb = "destroyed"
			}
			log.Printf("tick %d: entity %d at %v %s (force %d, damage %d)", s.Tick(), ev.ID, ev.Pos, verb, ev.Force, ev.Damage)
		}
		if cfg.Every > 0 && s.Tick()%cfg.Every == 0 && i < cfg.Steps-1 {
			printFrame(out, s, cfg.Velocity)
		}
		if cfg.UntilStable && s.Settled() {
			break
		}
	}
	printFrame(out, s, cfg.Velocity)

	if cfg.PNG != "" {
		return writePNG(fs, cfg.PNG, s)
	}
	return nil
}

func printFrame(out io.Writer, s *miasma.Sim, velocity bool) {
	fmt.Fprintf(out, "tick %d total %.3f settled %t\n", s.Tick(), s.TotalFluid(), s.Settled())
	fmt.Fprint(out, s.Frame())
	if velocity {
		fmt.Fprint(out, s.Grid().VelocityString())
	}
}

func writePNG(fs billy.Filesystem, name string, s *miasma.Sim) error {
	size := s.Size()
	img := render.Image(s.Cells(), size.W, size.H, s.Palette())
	f, err := fs.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	return writeAndClose(f, name, func(w io.Writer) error { return png.Encode(w, img) })
}

// writeAndClose runs write against f and closes it, reporting the close
// error when the write itself succeeded.
func writeAndClose(f io.WriteCloser, name string, write func(io.Writer) error) error {
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	return nil
}

func parsePoint(s string) (image.Point, error) {
	var p image.Point
	if _, err := fmt.Sscanf(s, "%d,%d", &p.X, &p.Y); err != nil {
		return p, fmt.Errorf("bad point %q: %w", s, err)
	}
	return p, nil
}
