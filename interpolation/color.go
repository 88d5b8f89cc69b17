package interpolation

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Colours are packed as 0xAARRGGBB in the float64 values of the list. Alpha
// is blended linearly; the colour channels are blended in the named space.

// ColorRgb blends packed colours in sRGB.
func ColorRgb(v []float64, k float64) float64 {
	return segments(v, k, blendWith(colorful.Color.BlendRgb))
}

// ColorHsv blends packed colours in HSV, taking the shortest way round the hue.
func ColorHsv(v []float64, k float64) float64 {
	return segments(v, k, blendWith(colorful.Color.BlendHsv))
}

// ColorHcl blends packed colours in HCL, which keeps the perceived lightness even.
func ColorHcl(v []float64, k float64) float64 {
	return segments(v, k, blendWith(colorful.Color.BlendHcl))
}

// ColorLab blends packed colours in CIE L*a*b*.
func ColorLab(v []float64, k float64) float64 {
	return segments(v, k, blendWith(colorful.Color.BlendLab))
}

// Pack converts a colour and an alpha in [0, 1] to the packed form used by
// the colour interpolations.
func Pack(c colorful.Color, alpha float64) float64 {
	r, g, b := c.Clamped().RGB255()
	a := uint32(math.Round(clamp01(alpha) * 255))
	return float64(a<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Unpack splits a packed colour into a colour and an alpha in [0, 1].
func Unpack(packed float64) (colorful.Color, float64) {
	p := uint32(int64(math.Round(packed)))
	c := colorful.Color{
		R: float64(p>>16&0xff) / 255,
		G: float64(p>>8&0xff) / 255,
		B: float64(p&0xff) / 255,
	}
	return c, float64(p>>24&0xff) / 255
}

func blendWith(blend func(c1, c2 colorful.Color, t float64) colorful.Color) func(a, b, t float64) float64 {
	return func(a, b, t float64) float64 {
		t = clamp01(t)
		c1, a1 := Unpack(a)
		c2, a2 := Unpack(b)
		return Pack(blend(c1, c2, t), lerp(a1, a2, t))
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
