package render

import (
	"image/color"
	"math"
)

// Stop is one colour on a gradient at position T in [0, 1].
type Stop struct {
	T   float64
	Col color.RGBA
}

// Gradient interpolates linearly between ordered stops.
type Gradient []Stop

// FluidGradient runs from a faint green haze to a dense sickly yellow.
var FluidGradient = Gradient{
	{0.0, color.RGBA{R: 20, G: 60, B: 48, A: 255}},
	{0.35, color.RGBA{R: 0, G: 102, B: 77, A: 255}},
	{0.7, color.RGBA{R: 96, G: 168, B: 60, A: 255}},
	{1.0, color.RGBA{R: 220, G: 220, B: 90, A: 255}},
}

// PressureGradient tints solid cells under load, translucent at the low end.
var PressureGradient = Gradient{
	{0.0, color.RGBA{R: 60, G: 40, B: 120, A: 40}},
	{0.5, color.RGBA{R: 200, G: 60, B: 90, A: 140}},
	{1.0, color.RGBA{R: 255, G: 170, B: 60, A: 200}},
}

// At samples the gradient at t, clamped to [0, 1].
func (g Gradient) At(t float64) color.RGBA {
	if len(g) == 0 {
		return color.RGBA{}
	}
	t = clamp01(t)
	if t <= g[0].T {
		return g[0].Col
	}
	for i := 1; i < len(g); i++ {
		curr := g[i]
		if t <= curr.T {
			prev := g[i-1]
			span := curr.T - prev.T
			var local float64
			if span > 0 {
				local = (t - prev.T) / span
			}
			return lerpRGBA(prev.Col, curr.Col, local)
		}
	}
	return g[len(g)-1].Col
}

// Colors returns n evenly spaced samples from the start to the end.
func (g Gradient) Colors(n int) []color.RGBA {
	if n <= 0 {
		return nil
	}
	out := make([]color.RGBA, n)
	if n == 1 {
		out[0] = g.At(0)
		return out
	}
	for i := range out {
		out[i] = g.At(float64(i) / float64(n-1))
	}
	return out
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
