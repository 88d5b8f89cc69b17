package util

import (
	"math/rand"

	"github.com/matt-g-everett/ledtween/easing"
)

// Memoizer caches look-up tables by length.
type Memoizer map[int][]float64

// RandomiseSaturation returns a random value in [min, max).
func RandomiseSaturation(min float64, max float64) float64 {
	return rand.Float64()*(max-min) + min
}

// GenerateLut builds a table that eases up to 1 over the first half and back
// down to 0 over the second half.
func GenerateLut(length int, fn easing.Func) []float64 {
	lut := make([]float64, length)
	if length < 2 {
		return lut
	}

	increment := 1.0 / float64(length/2)
	for i, j := 0, length-1; i < length/2; i, j = i+1, j-1 {
		value := fn(float64(i) * increment)
		lut[i] = value
		lut[j] = value
	}
	if length%2 == 1 {
		lut[length/2] = fn(1)
	}
	return lut
}

// GenerateLutMemoized returns an InOutQuad table of the given length, building
// it only once per length.
func GenerateLutMemoized(length int, memoizer Memoizer) []float64 {
	if lut, ok := memoizer[length]; ok {
		return lut
	}
	lut := GenerateLut(length, easing.Quadratic.InOut)
	memoizer[length] = lut
	return lut
}

// Sample reads a table at a position in [0, 1].
func Sample(lut []float64, position float64) float64 {
	if len(lut) == 0 {
		return 0
	}
	i := int(position * float64(len(lut)-1))
	if i < 0 {
		i = 0
	} else if i >= len(lut) {
		i = len(lut) - 1
	}
	return lut[i]
}
