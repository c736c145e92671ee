//go:build ebiten

package app

import (
	"image"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mipli/miasma/internal/core"
	"github.com/mipli/miasma/internal/render"
	"github.com/mipli/miasma/internal/ui"
)

// defaultPalette draws plain on/off sims.
var defaultPalette = []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}}

// controller is the player-facing side of a scenario.
type controller interface {
	MoveCursor(dx, dy int) bool
	InjectAtCursor() (float64, bool)
	ToggleDoors() int
	TotalFluid() float64
	Cursor() image.Point
}

var moves = []struct {
	keys   []ebiten.Key
	dx, dy int
}{
	{[]ebiten.Key{ebiten.KeyH, ebiten.KeyArrowLeft}, -1, 0},
	{[]ebiten.Key{ebiten.KeyL, ebiten.KeyArrowRight}, 1, 0},
	{[]ebiten.Key{ebiten.KeyK, ebiten.KeyArrowUp}, 0, -1},
	{[]ebiten.Key{ebiten.KeyJ, ebiten.KeyArrowDown}, 0, 1},
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	stepper *core.FixedStep

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	return &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(sim, cfg.Scale),
		hud:      ui.NewHUD(sim, cfg.HUDWidth),
		stepper:  core.NewFixedStep(cfg.Rate),
		scale:    cfg.Scale,
		hudWidth: cfg.HUDWidth,
		seed:     cfg.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if ctl, ok := g.sim.(controller); ok {
		g.handlePlayer(ctl)
	}

	g.overlay.Update()
	g.hud.Update()

	steps := g.stepper.Due(time.Now())
	if g.paused {
		steps = 0
	}
	if g.tickOnce {
		steps = max(steps, 1)
		g.tickOnce = false
	}
	for i := 0; i < steps; i++ {
		g.sim.Step()
	}
	return nil
}

func (g *Game) handlePlayer(ctl controller) {
	for _, m := range moves {
		for _, k := range m.keys {
			if inpututil.IsKeyJustPressed(k) {
				ctl.MoveCursor(m.dx, m.dy)
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		if _, ok := ctl.InjectAtCursor(); ok {
			log.Printf("Inserting fluid at %v", ctl.Cursor())
			log.Printf("Fluid level: %.3f", ctl.TotalFluid())
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		log.Printf("Fluid level: %.3f", ctl.TotalFluid())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		if n := ctl.ToggleDoors(); n > 0 {
			log.Printf("Toggled %d door(s) next to %v", n, ctl.Cursor())
		}
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	palette := defaultPalette
	if p, ok := g.sim.(core.PaletteProvider); ok {
		palette = p.Palette()
	}
	g.painter.Blit(screen, g.sim.Cells(), palette, g.scale)
	g.overlay.Draw(screen)
	size := g.sim.Size()
	g.hud.Draw(screen, size.W*g.scale, size.H*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
