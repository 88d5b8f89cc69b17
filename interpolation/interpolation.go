// Package interpolation evaluates curves through a list of points. Tweens use
// these when a goal is given as a list instead of a single value.
package interpolation

import (
	"math"
)

// Func evaluates the curve through v at k in [0, 1].
type Func func(v []float64, k float64) float64

// Linear joins the points with straight segments and extrapolates past the ends.
func Linear(v []float64, k float64) float64 {
	return segments(v, k, lerp)
}

// Bezier evaluates a single Bezier curve using every point as a control point.
func Bezier(v []float64, k float64) float64 {
	n := len(v) - 1
	b := 0.0
	for i := 0; i <= n; i++ {
		b += math.Pow(1-k, float64(n-i)) * math.Pow(k, float64(i)) * v[i] * Bernstein(n, i)
	}
	return b
}

// QuadraticBezier chains quadratic Bezier segments through every other point.
func QuadraticBezier(v []float64, k float64) float64 {
	return piecewise(v, k, 2)
}

// CubicBezier chains cubic Bezier segments through every third point.
func CubicBezier(v []float64, k float64) float64 {
	return piecewise(v, k, 3)
}

// piecewise splits v into Bezier segments of the given degree sharing their
// end points. The last segment may be of a lower degree.
func piecewise(v []float64, k float64, degree int) float64 {
	m := len(v) - 1
	if m <= 0 {
		return single(v)
	}

	count := (m + degree - 1) / degree
	f := k * float64(count)
	i := int(math.Floor(f))
	if i < 0 {
		i = 0
	}
	if i > count-1 {
		i = count - 1
	}

	lo := i * degree
	hi := lo + degree
	if hi > m {
		hi = m
	}
	return Bezier(v[lo:hi+1], f-float64(i))
}

// CatmullRom passes a Catmull-Rom spline through every point. A list whose
// first and last points are equal is treated as a closed loop.
func CatmullRom(v []float64, k float64) float64 {
	m := len(v) - 1
	if m <= 0 {
		return single(v)
	}
	f := float64(m) * k
	i := int(math.Floor(f))

	if v[0] == v[m] {
		if k < 0 {
			f = float64(m) * (1 + k)
			i = int(math.Floor(f))
		}
		return catmullRom(v[mod(i-1, m)], v[mod(i, m)], v[mod(i+1, m)], v[mod(i+2, m)], f-float64(i))
	}

	if k < 0 {
		return v[0] - (catmullRom(v[0], v[0], v[1], v[1], -f) - v[0])
	}
	if k > 1 {
		return v[m] - (catmullRom(v[m], v[m], v[m-1], v[m-1], f-float64(m)) - v[m])
	}

	at := func(j int) float64 {
		if j < 0 {
			j = 0
		}
		if j > m {
			j = m
		}
		return v[j]
	}
	return catmullRom(at(i-1), at(i), at(i+1), at(i+2), f-float64(i))
}

func catmullRom(p0, p1, p2, p3, t float64) float64 {
	v0 := (p2 - p0) * 0.5
	v1 := (p3 - p1) * 0.5
	t2 := t * t
	t3 := t * t2
	return (2*p1-2*p2+v0+v1)*t3 + (-3*p1+3*p2-2*v0-v1)*t2 + v0*t + p1
}

var factorials = []float64{1, 1}

// Factorial returns n!, remembering the values computed so far.
func Factorial(n int) float64 {
	if n < 0 {
		return math.NaN()
	}
	for len(factorials) <= n {
		factorials = append(factorials, factorials[len(factorials)-1]*float64(len(factorials)))
	}
	return factorials[n]
}

// Bernstein returns the binomial coefficient of the i-th Bernstein basis
// polynomial of degree n.
func Bernstein(n, i int) float64 {
	return Factorial(n) / Factorial(i) / Factorial(n-i)
}

func lerp(a, b, t float64) float64 {
	return (b-a)*t + a
}

// segments finds the segment of v holding k and blends its ends with fn.
func segments(v []float64, k float64, fn func(a, b, t float64) float64) float64 {
	m := len(v) - 1
	if m <= 0 {
		return single(v)
	}
	f := float64(m) * k
	if k < 0 {
		return fn(v[0], v[1], f)
	}
	if k > 1 {
		return fn(v[m], v[m-1], float64(m)-f)
	}
	i := int(math.Floor(f))
	if i >= m {
		return v[m]
	}
	return fn(v[i], v[i+1], f-float64(i))
}

func single(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return v[0]
}

func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
