package stream

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledtween/tween"
)

const peakLuminance = 0.6

type multiParticle struct {
	Luminance float64

	goal       struct{ Luminance float64 }
	colour     colorful.Color
	NextColour colorful.Color
	spring     *tween.Spring
}

func newMultiParticle(colour colorful.Color, group *tween.Group) *multiParticle {
	p := new(multiParticle)
	p.colour = colour
	p.NextColour = colour

	// The goal is read on every step, so a scintillation only has to raise it.
	p.spring = tween.NewSpring(p, group).
		DynamicTo(&p.goal).
		AngularFrequency(0.5 + rand.Float64()*1.5).
		Damping(1).
		OnSleep(p.settled)

	return p
}

// settled runs when the spring comes to rest. At the peak the colour changes
// and the particle falls back to its base luminance.
func (p *multiParticle) settled(any) {
	if p.goal.Luminance == 0 {
		return
	}
	p.colour = p.NextColour
	p.goal.Luminance = 0
	p.spring.Awake()
}

func (p *multiParticle) scintillate() bool {
	if p.spring.IsAwake() {
		return false
	}
	p.goal.Luminance = 1
	p.spring.Awake()
	return true
}

func (p *multiParticle) currentColour() colorful.Color {
	if p.Luminance == 0 {
		return p.colour
	}
	h, c, l := p.colour.Hcl()

	// Calculate the difference to the max luminance we want
	lumDiff := peakLuminance - l

	return colorful.Hcl(h, c, l+(lumDiff*p.Luminance)).Clamped()
}

// A MultiTwinkle is an Animation where every pixel scintillates on its own
// spring, changing colour at the peak.
type MultiTwinkle struct {
	numPixels           int
	backColours         []colorful.Color
	scintillationChance int32
	pixels              []*multiParticle

	group *tween.Group
	clock frameClock
}

// NewMultiTwinkle creates an instance of a MultiTwinkle object.
func NewMultiTwinkle(numPixels int, scintillationChance int32, backColours []colorful.Color, runtimeMs int64) *MultiTwinkle {
	t := new(MultiTwinkle)
	t.numPixels = numPixels
	t.backColours = backColours
	t.scintillationChance = scintillationChance
	t.group = tween.NewGroup()
	t.clock = newFrameClock(runtimeMs)

	t.pixels = make([]*multiParticle, numPixels)
	for i := range t.pixels {
		t.pixels[i] = newMultiParticle(t.getRandomBackColour(), t.group)
	}

	return t
}

func (t *MultiTwinkle) getRandomBackColour() colorful.Color {
	return t.backColours[rand.Int31n(int32(len(t.backColours)))]
}

// CalculateFrame creates a new Frame instance.
func (t *MultiTwinkle) CalculateFrame(runtimeMs int64) *Frame {
	for _, p := range t.pixels {
		// Start scintillation by chance
		if rand.Int31n(t.scintillationChance) == 0 && p.scintillate() {
			p.NextColour = t.getRandomBackColour()
		}
	}

	t.group.Update(t.clock.delta(runtimeMs), false)

	f := NewFrame(t.numPixels)
	for i, p := range t.pixels {
		f.pixels[i] = p.currentColour()
	}

	return f
}
