package stream

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledtween/stream/stripe"
)

type animationFactory func(numPixels int, runtimeMs int64) Animation

var (
	pink   = colorful.Color{R: 0.45, G: -0.54, B: 0.02}
	orange = colorful.Color{R: 0.23, G: 0.04, B: -0.87}
	blue   = colorful.Hcl(280.0, 1.0, 0.06)
	dim    = colorful.Hcl(0, 0, 0.01)
)

var animationOrder = []string{"twinkle", "multitwinkle", "streak", "gradienttrail", "infinitystripe"}

var animations = map[string]animationFactory{
	"twinkle": func(numPixels int, runtimeMs int64) Animation {
		return NewTwinkle(numPixels, numPixels/10, colorful.Hcl(60, 0.2, 0.6), dim, runtimeMs)
	},
	"multitwinkle": func(numPixels int, runtimeMs int64) Animation {
		return NewMultiTwinkle(numPixels, 400, []colorful.Color{pink, orange, blue}, runtimeMs)
	},
	"streak": func(numPixels int, runtimeMs int64) Animation {
		return NewStreak(numPixels, 20, dim, runtimeMs)
	},
	"gradienttrail": func(numPixels int, runtimeMs int64) Animation {
		return NewGradientTrail(numPixels, RainbowGradient(), 100, 1500, runtimeMs)
	},
	"infinitystripe": func(numPixels int, runtimeMs int64) Animation {
		g := stripe.NewRandomStripeGenerator([]colorful.Color{pink, orange, blue}, 150, 400)
		return NewInfinityStripe(numPixels, 60, g, runtimeMs)
	},
}

// AnimationNames lists the animations that can be named in the config.
func AnimationNames() []string {
	return append([]string(nil), animationOrder...)
}

func newAnimation(name string, numPixels int, runtimeMs int64) (Animation, error) {
	factory, ok := animations[name]
	if !ok {
		return nil, fmt.Errorf("unknown animation %q", name)
	}
	return factory(numPixels, runtimeMs), nil
}
