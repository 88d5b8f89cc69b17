package stream

import (
	"math"
	"strconv"

	"github.com/matt-g-everett/ledtween/tween"
)

const (
	trailSaturation = 1.0
	trailLuminance  = 0.05
)

// A GradientTrail is an Animation that cycles a gradient along an led strip.
type GradientTrail struct {
	Offset float64

	numPixels   int
	gradient    GradientTable
	trailLength int

	group *tween.Group
	clock frameClock
}

// NewGradientTrail creates an instance of a GradientTrail object. The
// gradient moves one trail length every periodMs.
func NewGradientTrail(numPixels int, gradient GradientTable, trailLength int, periodMs float64, runtimeMs int64) *GradientTrail {
	g := new(GradientTrail)
	g.numPixels = numPixels
	g.gradient = gradient
	g.trailLength = trailLength
	g.group = tween.NewGroup()
	g.clock = newFrameClock(runtimeMs)

	// A relative goal moves the offset on by a whole trail on every repeat.
	tween.NewTween(g, g.group).
		To(map[string]string{"Offset": "+" + strconv.Itoa(trailLength)}, periodMs).
		Repeat(tween.Forever).
		Start()

	return g
}

// CalculateFrame creates a new Frame instance.
func (g *GradientTrail) CalculateFrame(runtimeMs int64) *Frame {
	g.group.Update(g.clock.delta(runtimeMs), false)

	f := NewFrame(g.numPixels)
	length := float64(g.trailLength)
	current := math.Mod(g.Offset, length)
	for i := 0; i < g.numPixels; i++ {
		t := math.Mod(float64(i+g.numPixels)-current+length, length) / length
		f.pixels[i] = g.gradient.GetColor(t, trailSaturation, trailLuminance)
	}

	return f
}
