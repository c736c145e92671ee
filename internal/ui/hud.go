//go:build ebiten

package ui

import (
	"image/color"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mipli/miasma/internal/core"
)

// HUD renders the parameter panel to the right of the simulation view. Tab
// selects a tunable and [ or ] nudge it.
type HUD struct {
	sim      core.Sim
	width    int
	panel    *ebiten.Image
	snapshot core.ParameterSnapshot
	setter   core.FloatParameterSetter
	selected int
	title    string
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0), title: buildTitle(sim)}
	if setter, ok := sim.(core.FloatParameterSetter); ok {
		h.setter = setter
	}
	return h
}

// Update refreshes the cached snapshot and applies tuning keys.
func (h *HUD) Update() {
	if h == nil {
		return
	}
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = provider.Parameters()

	params := tunables(h.snapshot)
	if len(params) == 0 || h.setter == nil {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		h.selected = (h.selected + 1) % len(params)
	}
	h.selected %= len(params)
	dir := 0
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		dir = -1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		dir = 1
	}
	if dir == 0 {
		return
	}
	p := params[h.selected]
	v, err := nudge(p, dir)
	if err != nil {
		log.Printf("hud: %v", err)
		return
	}
	if h.setter.SetFloatParameter(p.Key, v) {
		h.snapshot = provider.Parameters()
	}
}

// Draw paints the HUD panel anchored at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	selected := ""
	if params := tunables(h.snapshot); len(params) > 0 {
		selected = params[h.selected%len(params)].Key
	}
	ebitenutil.DebugPrintAt(h.panel, strings.Join(panelLines(h.title, h.snapshot, selected), "\n"), 6, 6)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
