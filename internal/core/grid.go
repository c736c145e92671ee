package core

import "image"

// Canvas is a row-major buffer of palette indices sized to a simulation grid.
type Canvas struct {
	W, H int
	data []uint8
}

// NewCanvas allocates a canvas with the given dimensions.
func NewCanvas(w, h int) *Canvas {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Canvas{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so painters can read it directly.
func (c *Canvas) Cells() []uint8 { return c.data }

// Set writes v at p, ignoring positions outside the canvas.
func (c *Canvas) Set(p image.Point, v uint8) {
	if p.X < 0 || p.Y < 0 || p.X >= c.W || p.Y >= c.H {
		return
	}
	c.data[p.Y*c.W+p.X] = v
}

// At returns the value at p, or 0 outside the canvas.
func (c *Canvas) At(p image.Point) uint8 {
	if p.X < 0 || p.Y < 0 || p.X >= c.W || p.Y >= c.H {
		return 0
	}
	return c.data[p.Y*c.W+p.X]
}
