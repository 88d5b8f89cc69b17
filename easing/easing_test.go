package easing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSets(t *testing.T) {
	all := map[string]Set{
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
		"pow":         Pow(2.5),
	}

	for name, s := range all {
		for direction, fn := range map[string]Func{"in": s.In, "out": s.Out, "inout": s.InOut} {
			assert.Equal(t, 0.0, fn(0), "%s.%s at 0", name, direction)
			assert.Equal(t, 1.0, fn(1), "%s.%s at 1", name, direction)
		}
	}
}

func TestLinearAndStep(t *testing.T) {
	assert.Equal(t, 0.25, Linear(0.25))
	assert.Equal(t, 0.0, Step(0.49))
	assert.Equal(t, 1.0, Step(0.5))
	assert.Equal(t, 1.0, Step(1))
}

func TestPow(t *testing.T) {
	quad := Pow(2)
	for _, amount := range []float64{0.1, 0.3, 0.5, 0.8, 0.95} {
		assert.InDelta(t, Quadratic.In(amount), quad.In(amount), 1e-12)
		assert.InDelta(t, Quadratic.Out(amount), quad.Out(amount), 1e-12)
		assert.InDelta(t, Quadratic.InOut(amount), quad.InOut(amount), 1e-12)
	}
}

func TestEnds(t *testing.T) {
	assert.Equal(t, 1.0, Elastic.Out(1.5))
	assert.Equal(t, 0.0, Elastic.In(-0.5))
	assert.Less(t, Back.In(0.2), 0.0, "back overshoots below the start")
	assert.Greater(t, Back.Out(0.8), 1.0, "back overshoots past the end")
}

func TestLookup(t *testing.T) {
	cases := []struct {
		name string
		want Func
	}{
		{"linear", Linear},
		{"Linear.None", Linear},
		{"step", Step},
		{"quadratic.in", Quadratic.In},
		{"Cubic.Out", Cubic.Out},
		{" bounce.inout ", Bounce.InOut},
		{"elastic.inout", Elastic.InOut},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fn, ok := Lookup(c.name)
			assert.True(t, ok)
			for _, amount := range []float64{0.2, 0.45, 0.7} {
				assert.Equal(t, c.want(amount), fn(amount))
			}
		})
	}

	for _, name := range []string{"", "quadratic", "quadratic.sideways", "wobbly.in"} {
		_, ok := Lookup(name)
		assert.False(t, ok, name)
	}
}
