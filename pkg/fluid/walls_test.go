package fluid

import (
	"image"
	"strings"
	"testing"
)

// walls is a ConnectionGrid backed by a 0/1 layout where 1 marks a wall.
// Every cell, walls included, lists its open in-bounds neighbours.
type walls struct {
	w, h  int
	solid []bool
}

func openWalls(w, h int) *walls {
	return &walls{w: w, h: h, solid: make([]bool, w*h)}
}

func wallsFromString(t *testing.T, w, h int, layout string) *walls {
	t.Helper()
	g := &walls{w: w, h: h}
	for _, c := range layout {
		switch c {
		case '0':
			g.solid = append(g.solid, false)
		case '1':
			g.solid = append(g.solid, true)
		}
	}
	if len(g.solid) != w*h {
		t.Fatalf("layout %q has %d cells, want %d", strings.TrimSpace(layout), len(g.solid), w*h)
	}
	return g
}

func (g *walls) open(p image.Point) bool {
	if p.X < 0 || p.Y < 0 || p.X >= g.w || p.Y >= g.h {
		return false
	}
	return !g.solid[p.X+p.Y*g.w]
}

func (g *walls) Connections(p image.Point) []image.Point {
	var out []image.Point
	for _, n := range Neighbours(p) {
		if g.open(n) {
			out = append(out, n)
		}
	}
	return out
}

func (g *walls) IsSolid(p image.Point) bool { return !g.open(p) }

// oneWay lets fluid enter to but never leave from.
type oneWay struct {
	from, to image.Point
}

func (o oneWay) Connections(p image.Point) []image.Point {
	if p == o.to {
		return []image.Point{o.from}
	}
	return nil
}

func (o oneWay) IsSolid(image.Point) bool { return false }
