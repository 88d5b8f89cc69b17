package stripe

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledtween/util"
)

// A Stripe is a run of pixels in one colour.
type Stripe struct {
	Colour colorful.Color
	Length int32
}

// RandomStripeGenerator makes stripes of random length, picking colours from
// a palette or, without one, from the whole hue wheel.
type RandomStripeGenerator struct {
	palette   []colorful.Color
	current   int
	stripeMin int32
	stripeMax int32
}

// NewRandomStripeGenerator creates a generator for stripes between min and
// max pixels long.
func NewRandomStripeGenerator(palette []colorful.Color, min, max int32) *RandomStripeGenerator {
	g := new(RandomStripeGenerator)
	g.palette = palette
	g.current = -1
	if min < 1 {
		min = 1
	}
	if max <= min {
		max = min + 1
	}
	g.stripeMin = min
	g.stripeMax = max
	return g
}

// CreateStripe returns the next stripe. Consecutive palette stripes never
// share a colour.
func (g *RandomStripeGenerator) CreateStripe() Stripe {
	var colour colorful.Color
	switch len(g.palette) {
	case 0:
		colour = colorful.Hsl(rand.Float64()*360.0, util.RandomiseSaturation(0.7, 1.0), 0.2)
	case 1:
		colour = g.palette[0]
	default:
		for {
			newCurrent := rand.Intn(len(g.palette))
			if newCurrent != g.current {
				g.current = newCurrent
				break
			}
		}
		colour = g.palette[g.current]
	}

	stripeLength := rand.Int31n(g.stripeMax-g.stripeMin) + g.stripeMin
	return Stripe{Colour: colour, Length: stripeLength}
}
