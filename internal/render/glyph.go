package render

import "math"

// Levels is the number of fluid display buckets.
const Levels = 10

// Level buckets a fluid amount into 0..Levels-1 by its whole part.
func Level(v float64) int {
	if !(v >= 1) {
		return 0
	}
	if v >= Levels-1 {
		return Levels - 1
	}
	return int(math.Floor(v))
}

// Glyph returns the digit shown for a fluid amount.
func Glyph(v float64) rune {
	return rune('0' + Level(v))
}
