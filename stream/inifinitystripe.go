package stream

import (
	"strconv"

	"github.com/matt-g-everett/ledtween/stream/stripe"
	"github.com/matt-g-everett/ledtween/tween"
)

// An InfinityStripe is an Animation that scrolls an endless run of stripes
// along an led strip.
type InfinityStripe struct {
	Scrolled float64

	numPixels int
	stripes   []stripe.Stripe
	consumed  float64
	adjusted  bool
	generator *stripe.RandomStripeGenerator

	group *tween.Group
	clock frameClock
}

// NewInfinityStripe creates an instance of a InfinityStripe object.
func NewInfinityStripe(numPixels int, pixelsPerSecond float64, generator *stripe.RandomStripeGenerator, runtimeMs int64) *InfinityStripe {
	s := new(InfinityStripe)
	s.numPixels = numPixels
	s.stripes = make([]stripe.Stripe, 0, 20)
	s.adjusted = true
	s.generator = generator
	s.group = tween.NewGroup()
	s.clock = newFrameClock(runtimeMs)

	tween.NewTween(s, s.group).
		To(map[string]string{"Scrolled": "+" + strconv.FormatFloat(pixelsPerSecond, 'f', -1, 64)}, 1000).
		Repeat(tween.Forever).
		Start()

	return s
}

func (s *InfinityStripe) addStripe() stripe.Stripe {
	st := s.generator.CreateStripe()
	s.stripes = append(s.stripes, st)
	return st
}

// getStripe returns the stripe under offset and the offset where it ends,
// generating stripes as needed.
func (s *InfinityStripe) getStripe(offset float64) (stripe.Stripe, float64) {
	if len(s.stripes) == 0 {
		s.addStripe()
	}

	var length float64
	for _, st := range s.stripes {
		length += float64(st.Length)
		if offset < length {
			return st, length
		}
	}

	for {
		st := s.addStripe()
		length += float64(st.Length)
		if offset < length {
			return st, length
		}
	}
}

// CalculateFrame creates a new Frame instance.
func (s *InfinityStripe) CalculateFrame(runtimeMs int64) *Frame {
	s.group.Update(s.clock.delta(runtimeMs), false)

	// Cull stripes that have passed
	current := s.Scrolled - s.consumed
	for {
		first, end := s.getStripe(0)
		if current < end {
			break
		}
		current -= float64(first.Length)
		s.consumed += float64(first.Length)
		s.stripes = s.stripes[1:]
	}

	f := NewFrame(s.numPixels)
	adjustmentFactor := 1.0
	currentStripe, stripeEnd := s.getStripe(current)
	for i := 0; i < s.numPixels; i++ {
		if s.adjusted {
			adjustmentFactor = 1.0 + 1.4*(float64(i)/float64(s.numPixels))
		}

		adjustedOffset := (adjustmentFactor * float64(i)) + current
		if adjustedOffset >= stripeEnd {
			currentStripe, stripeEnd = s.getStripe(adjustedOffset)
		}

		f.pixels[i] = currentStripe.Colour
	}

	return f
}
