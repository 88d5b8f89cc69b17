package stream

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledtween/easing"
	"github.com/matt-g-everett/ledtween/tween"
)

const (
	twinkleMinMs = 300
	twinkleMaxMs = 1500
)

type twinkleParticle struct {
	Position int
	Gain     float64
}

// A Twinkle is an Animation that twinkles random particles.
type Twinkle struct {
	numPixels  int
	foreColour colorful.Color
	backColour colorful.Color

	group     *tween.Group
	clock     frameClock
	particles []*twinkleParticle
}

// NewTwinkle creates an instance of a Twinkle object.
func NewTwinkle(numPixels, numParticles int, foreColour, backColour colorful.Color, runtimeMs int64) *Twinkle {
	t := new(Twinkle)
	t.numPixels = numPixels
	t.foreColour = foreColour
	t.backColour = backColour
	t.group = tween.NewGroup()
	t.clock = newFrameClock(runtimeMs)
	t.particles = make([]*twinkleParticle, numParticles)
	for i := range t.particles {
		t.spawn(i, rand.Float64()*twinkleMaxMs)
	}

	return t
}

// spawn places particle i on a random pixel and fades it up and back down.
// The next particle for the slot is spawned when it completes.
func (t *Twinkle) spawn(i int, delay float64) {
	p := &twinkleParticle{Position: rand.Intn(t.numPixels)}
	t.particles[i] = p

	duration := twinkleMinMs + rand.Float64()*(twinkleMaxMs-twinkleMinMs)
	tween.NewTween(p, t.group).
		To(map[string]float64{"Gain": 1}, duration).
		Repeat(1).
		Yoyo(true).
		Easing(easing.Sinusoidal.InOut).
		OnComplete(func(any) { t.spawn(i, rand.Float64()*twinkleMinMs) }).
		StartDelayed(delay)
}

// CalculateFrame creates a new Frame instance.
func (t *Twinkle) CalculateFrame(runtimeMs int64) *Frame {
	t.group.Update(t.clock.delta(runtimeMs), false)

	f := NewFrame(t.numPixels)
	f.Fill(t.backColour)
	for _, p := range t.particles {
		if p.Gain > 0 {
			f.Set(p.Position, t.backColour.BlendHcl(t.foreColour, p.Gain).Clamped())
		}
	}

	return f
}
