package stream

import (
	"encoding/binary"

	"github.com/lucasb-eyer/go-colorful"
)

// NumPixels is the strip length used when the config doesn't set one.
const NumPixels = 500

// Frame represents a frame of RGB pixels to display on an ledrx device.
type Frame struct {
	pixels []colorful.Color
}

// NewFrame creates a new Frame instance with numPixels black pixels.
func NewFrame(numPixels int) *Frame {
	if numPixels <= 0 {
		numPixels = NumPixels
	}
	f := new(Frame)
	f.pixels = make([]colorful.Color, numPixels)
	return f
}

// Len returns the number of pixels.
func (f *Frame) Len() int {
	return len(f.pixels)
}

// Pixels exposes the pixels for reading and writing.
func (f *Frame) Pixels() []colorful.Color {
	return f.pixels
}

// Set writes a pixel, ignoring positions off the strip.
func (f *Frame) Set(i int, c colorful.Color) {
	if i >= 0 && i < len(f.pixels) {
		f.pixels[i] = c
	}
}

// Fill sets every pixel to c.
func (f *Frame) Fill(c colorful.Color) {
	for i := range f.pixels {
		f.pixels[i] = c
	}
}

// InterpolateFrame merges two frames, 0 giving f and 1 giving f2. Pixels
// beyond the shorter frame are taken from f.
func (f *Frame) InterpolateFrame(f2 *Frame, transitionPoint float64) *Frame {
	out := NewFrame(len(f.pixels))
	copy(out.pixels, f.pixels)
	for i := 0; i < len(f.pixels) && i < len(f2.pixels); i++ {
		out.pixels[i] = f.pixels[i].BlendHcl(f2.pixels[i], transitionPoint)
	}

	return out
}

// MarshalBinary converts a Frame into binary data: a little endian pixel
// count followed by an RGB triple per pixel.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 2, (len(f.pixels)*3)+2)
	binary.LittleEndian.PutUint16(data, uint16(len(f.pixels)))
	for _, p := range f.pixels {
		r, g, b := p.Clamped().RGB255()
		data = append(data, r, g, b)
	}

	return data, nil
}
