package stream

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/ledtween/stream/stripe"
	"github.com/matt-g-everett/ledtween/tween"
)

var (
	black = colorful.Color{}
	white = colorful.Color{R: 1, G: 1, B: 1}
)

func TestTwinkle(t *testing.T) {
	tw := NewTwinkle(50, 5, white, black, 0)
	first := tw.particles[0]

	lit := false
	for ms := int64(0); ms <= 6000; ms += 16 {
		f := tw.CalculateFrame(ms)
		require.Equal(t, 50, f.Len())
		for _, p := range tw.particles {
			assert.GreaterOrEqual(t, p.Gain, 0.0)
			assert.LessOrEqual(t, p.Gain, 1.0)
			lit = lit || p.Gain > 0
		}
	}

	assert.True(t, lit)
	assert.NotSame(t, first, tw.particles[0], "particle should have been respawned")
	assert.Equal(t, 5, tw.group.Len())
}

func TestMultiTwinkle(t *testing.T) {
	t.Run("particle peaks then falls back in its next colour", func(t *testing.T) {
		g := tween.NewGroup()
		red := colorful.Hcl(0, 0.5, 0.1)
		blue := colorful.Hcl(260, 0.5, 0.1)
		p := newMultiParticle(red, g)
		p.NextColour = blue

		require.True(t, p.scintillate())
		assert.False(t, p.scintillate())

		peaked := false
		for i := 0; i < 4000 && g.Len() > 0; i++ {
			g.Update(16, false)
			assert.LessOrEqual(t, p.Luminance, 1.0+1e-9)
			peaked = peaked || p.Luminance > 0.9
		}

		assert.True(t, peaked)
		assert.Equal(t, 0, g.Len())
		assert.False(t, p.spring.IsAwake())
		assert.Equal(t, 0.0, p.Luminance)
		assert.Equal(t, blue, p.colour)
		assert.Equal(t, blue, p.currentColour())
	})

	t.Run("renders every pixel", func(t *testing.T) {
		palette := []colorful.Color{colorful.Hcl(0, 0.5, 0.1)}
		m := NewMultiTwinkle(20, 1, palette, 0)
		for ms := int64(0); ms < 500; ms += 16 {
			f := m.CalculateFrame(ms)
			assert.Equal(t, 20, f.Len())
		}
		for _, p := range m.pixels {
			assert.Equal(t, 1.0, p.goal.Luminance)
			assert.Greater(t, p.Luminance, 0.0)
		}
	})
}

func TestStreak(t *testing.T) {
	s := NewStreak(100, 1, black, 0)

	f := s.CalculateFrame(0)
	assert.Equal(t, make([]colorful.Color, 100), f.Pixels())
	require.Equal(t, 1, s.particles.Len())
	first := s.particles.Front().Value

	s.CalculateFrame(1000)
	require.Equal(t, 1, s.particles.Len())
	assert.NotSame(t, first, s.particles.Front().Value)
	assert.True(t, first.(*streakParticle).done)
	assert.Equal(t, 100.0, first.(*streakParticle).Head)
}

func TestStreakSinglePixel(t *testing.T) {
	s := NewStreak(1, 1, black, 0)
	s.CalculateFrame(0)
	require.Equal(t, 1, s.particles.Len())

	f := s.CalculateFrame(16)
	assert.Equal(t, 1, f.Len())
}

func TestGradientTrail(t *testing.T) {
	g := NewGradientTrail(10, RainbowGradient(), 100, 1500, 0)

	g.CalculateFrame(750)
	assert.Equal(t, 50.0, g.Offset)

	g.CalculateFrame(1500)
	assert.Equal(t, 100.0, g.Offset)

	f := g.CalculateFrame(3000)
	assert.Equal(t, 200.0, g.Offset)
	assert.Equal(t, RainbowGradient().GetColor(0.1, trailSaturation, trailLuminance), f.pixels[0])
}

func TestInfinityStripe(t *testing.T) {
	palette := []colorful.Color{{R: 1}, {G: 1}}
	s := NewInfinityStripe(10, 60, stripe.NewRandomStripeGenerator(palette, 5, 6), 0)

	f := s.CalculateFrame(0)
	for _, c := range f.Pixels() {
		assert.Contains(t, palette, c)
	}

	f = s.CalculateFrame(1000)
	assert.Equal(t, 60.0, s.Scrolled)
	assert.Equal(t, 60.0, s.consumed)
	assert.Equal(t, s.stripes[0].Colour, f.pixels[0])
	for _, c := range f.Pixels() {
		assert.Contains(t, palette, c)
	}
}
