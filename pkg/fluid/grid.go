// Package fluid simulates a scalar substance spreading over a tile grid.
//
// A Grid owns three parallel per-cell layers: fluid level, pressure and
// velocity. Flow recomputes all three from a snapshot of the current state and
// a ConnectionGrid describing which cells are open, so the result does not
// depend on traversal order. Between steps callers may inject fluid directly
// and read pressure or velocity for their own effects.
package fluid

import (
	"image"
	"iter"
	"math"

	"gonum.org/v1/gonum/floats"
)

// StableTolerance is the absolute difference IsStable accepts between a
// non-empty cell and the anchor cell.
const StableTolerance = 0.01

// Grid stores fluid, pressure and velocity for a fixed width×height area in
// row-major order.
type Grid struct {
	w, h   int
	params Params

	fluid    []float64
	pressure []float64
	velocity []image.Point
}

// New allocates a zero-filled grid using DefaultParams.
func New(w, h int) *Grid {
	return NewWithParams(w, h, DefaultParams())
}

// NewWithParams allocates a zero-filled grid with the provided flow
// parameters. Non-positive dimensions are clamped to 1.
func NewWithParams(w, h int, params Params) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	total := w * h
	return &Grid{
		w:        w,
		h:        h,
		params:   params,
		fluid:    make([]float64, total),
		pressure: make([]float64, total),
		velocity: make([]image.Point, total),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Bounds returns the rectangle of valid positions.
func (g *Grid) Bounds() image.Rectangle { return image.Rect(0, 0, g.w, g.h) }

// Params returns the active flow parameters.
func (g *Grid) Params() Params { return g.params }

// SetParams replaces the flow parameters used by subsequent Flow calls.
func (g *Grid) SetParams(p Params) { g.params = p }

// Viscosity returns the current viscosity.
func (g *Grid) Viscosity() float64 { return g.params.Viscosity }

// SetViscosity changes the viscosity. Values above 1 do not make much sense
// physically but are accepted.
func (g *Grid) SetViscosity(v float64) { g.params.Viscosity = v }

func (g *Grid) index(p image.Point) (int, bool) {
	if p.X < 0 || p.Y < 0 || p.X >= g.w || p.Y >= g.h {
		return 0, false
	}
	return p.X + p.Y*g.w, true
}

func (g *Grid) point(i int) image.Point {
	return image.Point{X: i % g.w, Y: i / g.w}
}

// Fluid returns the fluid level at p. ok is false outside the grid.
func (g *Grid) Fluid(p image.Point) (level float64, ok bool) {
	i, ok := g.index(p)
	if !ok {
		return 0, false
	}
	return g.fluid[i], true
}

// Pressure returns the pressure recorded at p by the last Flow call.
func (g *Grid) Pressure(p image.Point) (float64, bool) {
	i, ok := g.index(p)
	if !ok {
		return 0, false
	}
	return g.pressure[i], true
}

// Velocity returns the direction fluid last arrived at p from.
func (g *Grid) Velocity(p image.Point) (image.Point, bool) {
	i, ok := g.index(p)
	if !ok {
		return image.Point{}, false
	}
	return g.velocity[i], true
}

// AddFluid adds delta to the level at p and returns the new level.
func (g *Grid) AddFluid(p image.Point, delta float64) (float64, bool) {
	i, ok := g.index(p)
	if !ok {
		return 0, false
	}
	g.fluid[i] += delta
	return g.fluid[i], true
}

// SetFluid overwrites the level at p. It accepts exactly the positions
// AddFluid accepts.
func (g *Grid) SetFluid(p image.Point, level float64) (float64, bool) {
	i, ok := g.index(p)
	if !ok {
		return 0, false
	}
	g.fluid[i] = level
	return level, true
}

// TotalFluidLevel sums the fluid held by every cell.
func (g *Grid) TotalFluidLevel() float64 {
	return floats.Sum(g.fluid)
}

// IsStable reports whether every non-empty cell is within StableTolerance of
// the level at (0,0). The anchor is fixed: when (0,0) is walled off or
// isolated from the fluid the grid never reports stable.
func (g *Grid) IsStable() bool {
	base := g.fluid[0]
	for _, f := range g.fluid {
		if f == 0 {
			continue
		}
		if math.Abs(base-f) >= StableTolerance {
			return false
		}
	}
	return true
}

// All yields every position with its fluid level in row-major order. Each
// call starts a fresh traversal at (0,0).
func (g *Grid) All() iter.Seq2[image.Point, float64] {
	return func(yield func(image.Point, float64) bool) {
		for i, f := range g.fluid {
			if !yield(g.point(i), f) {
				return
			}
		}
	}
}

// Clear empties every layer.
func (g *Grid) Clear() {
	clear(g.fluid)
	clear(g.pressure)
	clear(g.velocity)
}
