package stream

import (
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// GradientStop places a hue at a position in [0, 1].
type GradientStop struct {
	Hue float64
	Pos float64
}

// GradientTable stores a look-up table of colours interpolated by hue. Stops
// must be sorted by position.
type GradientTable []GradientStop

// RainbowGradient runs once round the hue wheel.
func RainbowGradient() GradientTable {
	return GradientTable{
		{Hue: 0, Pos: 0},
		{Hue: 120, Pos: 0.33},
		{Hue: 240, Pos: 0.66},
		{Hue: 360, Pos: 1},
	}
}

// GetColor gets a colour at the specified point on the look-up table.
func (g GradientTable) GetColor(t, s, l float64) colorful.Color {
	if len(g) == 0 {
		return colorful.Hcl(0, s, l)
	}

	i := sort.Search(len(g), func(i int) bool { return g[i].Pos >= t })
	switch {
	case i == 0:
		return colorful.Hcl(g[0].Hue, s, l)
	case i == len(g):
		return colorful.Hcl(g[len(g)-1].Hue, s, l)
	}

	c1, c2 := g[i-1], g[i]
	if c2.Pos == c1.Pos {
		return colorful.Hcl(c2.Hue, s, l)
	}
	h := (((t - c1.Pos) / (c2.Pos - c1.Pos)) * (c2.Hue - c1.Hue)) + c1.Hue
	return colorful.Hcl(h, s, l)
}
