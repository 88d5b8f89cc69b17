package interpolation

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
)

func TestEnds(t *testing.T) {
	v := []float64{1, 5, 2, 8, 3, 9, 7}
	for name, fn := range map[string]Func{
		"linear":    Linear,
		"bezier":    Bezier,
		"quadratic": QuadraticBezier,
		"cubic":     CubicBezier,
		"catmull":   CatmullRom,
	} {
		assert.Equal(t, 1.0, fn(v, 0), name)
		assert.Equal(t, 7.0, fn(v, 1), name)
	}
}

func TestLinear(t *testing.T) {
	assert.Equal(t, 5.0, Linear([]float64{0, 10}, 0.5))
	assert.Equal(t, 15.0, Linear([]float64{0, 10, 20}, 0.75))

	t.Run("extrapolates", func(t *testing.T) {
		assert.Equal(t, -5.0, Linear([]float64{0, 10}, -0.5))
		assert.Equal(t, 15.0, Linear([]float64{0, 10}, 1.5))
	})

	t.Run("handles short lists", func(t *testing.T) {
		assert.Equal(t, 3.0, Linear([]float64{3}, 0.7))
		assert.Equal(t, 0.0, Linear(nil, 0.7))
	})
}

func TestBezier(t *testing.T) {
	assert.InDelta(t, 10, Bezier([]float64{0, 10, 20}, 0.5), 1e-12)
	assert.InDelta(t, 5, Bezier([]float64{0, 10, 0}, 0.5), 1e-12)

	t.Run("piecewise curves match a single segment", func(t *testing.T) {
		three := []float64{2, 9, 4}
		four := []float64{2, 9, 4, 6}
		for _, k := range []float64{0.1, 0.4, 0.6, 0.9} {
			assert.Equal(t, Bezier(three, k), QuadraticBezier(three, k))
			assert.Equal(t, Bezier(four, k), CubicBezier(four, k))
		}
	})

	t.Run("piecewise curves pass through joins", func(t *testing.T) {
		assert.InDelta(t, 4, QuadraticBezier([]float64{2, 9, 4, 1, 6}, 0.5), 1e-12)
		assert.InDelta(t, 6, CubicBezier([]float64{2, 9, 4, 6, 1, 1, 3}, 0.5), 1e-12)
	})
}

func TestCatmullRom(t *testing.T) {
	v := []float64{0, 10, 20, 30}
	assert.InDelta(t, 10, CatmullRom(v, 1.0/3), 1e-12)
	assert.InDelta(t, 15, CatmullRom(v, 0.5), 1e-12)

	t.Run("loops closed lists", func(t *testing.T) {
		loop := []float64{0, 10, 0}
		assert.Equal(t, 0.0, CatmullRom(loop, 0))
		assert.InDelta(t, 10, CatmullRom(loop, 0.5), 1e-12)
	})
}

func TestFactorial(t *testing.T) {
	assert.Equal(t, 1.0, Factorial(0))
	assert.Equal(t, 120.0, Factorial(5))
	assert.Equal(t, 6.0, Bernstein(4, 2))
	assert.True(t, math.IsNaN(Factorial(-1)))
}

func TestColor(t *testing.T) {
	red := Pack(colorful.Color{R: 1}, 1)
	blue := Pack(colorful.Color{B: 1}, 0)

	t.Run("packs argb", func(t *testing.T) {
		assert.Equal(t, float64(0xffff0000), red)
		assert.Equal(t, float64(0x000000ff), blue)
		assert.Equal(t, float64(0x80000000), Pack(colorful.Color{}, 0.5))

		c, alpha := Unpack(red)
		assert.Equal(t, colorful.Color{R: 1}, c)
		assert.Equal(t, 1.0, alpha)
	})

	t.Run("blends in rgb", func(t *testing.T) {
		assert.Equal(t, red, ColorRgb([]float64{red, blue}, 0))
		assert.Equal(t, blue, ColorRgb([]float64{red, blue}, 1))
		assert.Equal(t, float64(0x80800080), ColorRgb([]float64{red, blue}, 0.5))
	})

	t.Run("blends in other spaces", func(t *testing.T) {
		for _, fn := range []Func{ColorHsv, ColorHcl, ColorLab} {
			assert.Equal(t, red, fn([]float64{red, blue}, 0))
			assert.Equal(t, blue, fn([]float64{red, blue}, 1))
			_, alpha := Unpack(fn([]float64{red, blue}, 0.5))
			assert.InDelta(t, 0.5, alpha, 1.0/255)
		}
	})
}
