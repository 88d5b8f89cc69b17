// Package easing holds the easing curves used by tweens. Curves map a linear
// progress in [0, 1] to an eased progress, staying at 0 and 1 on the ends.
package easing

import (
	"math"
	"strings"

	"github.com/fogleman/ease"
)

// Func is an easing curve.
type Func func(amount float64) float64

// Set groups the three directions of a curve.
type Set struct {
	In    Func
	Out   Func
	InOut Func
}

var (
	// Linear doesn't ease.
	Linear Func = ease.Linear

	// Step jumps from 0 to 1 halfway.
	Step Func = func(amount float64) float64 {
		if amount < 0.5 {
			return 0
		}
		return 1
	}

	Quadratic   = set(ease.InQuad, ease.OutQuad, ease.InOutQuad)
	Cubic       = set(ease.InCubic, ease.OutCubic, ease.InOutCubic)
	Quartic     = set(ease.InQuart, ease.OutQuart, ease.InOutQuart)
	Quintic     = set(ease.InQuint, ease.OutQuint, ease.InOutQuint)
	Sinusoidal  = set(ease.InSine, ease.OutSine, ease.InOutSine)
	Exponential = set(ease.InExpo, ease.OutExpo, ease.InOutExpo)
	Circular    = set(ease.InCirc, ease.OutCirc, ease.InOutCirc)
	Elastic     = set(ease.InElastic, ease.OutElastic, ease.InOutElastic)
	Back        = set(ease.InBack, ease.OutBack, ease.InOutBack)
	Bounce      = set(ease.InBounce, ease.OutBounce, ease.InOutBounce)
)

func set(in, out, inOut Func) Set {
	return Set{In: exact(in), Out: exact(out), InOut: exact(inOut)}
}

// exact pins the ends of a curve that only gets close to them.
func exact(fn Func) Func {
	return func(amount float64) float64 {
		switch {
		case amount <= 0:
			return 0
		case amount >= 1:
			return 1
		}
		return fn(amount)
	}
}

// Pow builds a polynomial curve of any power. Pow(2) matches Quadratic.
func Pow(power float64) Set {
	power = math.Max(power, 1e-3)
	return Set{
		In: func(amount float64) float64 {
			return math.Pow(amount, power)
		},
		Out: func(amount float64) float64 {
			return 1 - math.Pow(1-amount, power)
		},
		InOut: func(amount float64) float64 {
			if amount < 0.5 {
				return math.Pow(amount*2, power) / 2
			}
			return 1 - math.Pow(2-amount*2, power)/2
		},
	}
}

var sets = map[string]Set{
	"quadratic":   Quadratic,
	"cubic":       Cubic,
	"quartic":     Quartic,
	"quintic":     Quintic,
	"sinusoidal":  Sinusoidal,
	"exponential": Exponential,
	"circular":    Circular,
	"elastic":     Elastic,
	"back":        Back,
	"bounce":      Bounce,
}

// Lookup finds a curve by name, such as "linear", "step" or "cubic.inout".
// Names are case insensitive.
func Lookup(name string) (Func, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "linear", "linear.none":
		return Linear, true
	case "step", "step.none":
		return Step, true
	}

	family, direction, ok := strings.Cut(name, ".")
	if !ok {
		return nil, false
	}
	set, ok := sets[family]
	if !ok {
		return nil, false
	}
	switch direction {
	case "in":
		return set.In, true
	case "out":
		return set.Out, true
	case "inout":
		return set.InOut, true
	}
	return nil, false
}
