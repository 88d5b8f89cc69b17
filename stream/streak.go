package stream

import (
	"container/list"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledtween/tween"
	"github.com/matt-g-everett/ledtween/util"
)

const (
	streakLength   = 10
	streakSpeed    = 0.2 // pixels per ms
	streakLutScale = 0.05
)

type streakParticle struct {
	Head   float64
	colour colorful.Color
	length float64
	gain   float64
	done   bool
}

func (p *streakParticle) addStreak(frame *Frame) {
	if p.gain <= 0 {
		return
	}
	start := int(math.Ceil(p.Head))
	end := int(math.Floor(p.Head + p.length))
	for i := start; i <= end; i++ {
		if i >= 0 && i < frame.Len() {
			frame.pixels[i] = frame.pixels[i].BlendHcl(p.colour, p.gain)
		}
	}
}

// A Streak is an Animation that creates streaks across the tree that fade in then out.
type Streak struct {
	numPixels    int
	backColour   colorful.Color
	streakChance int32
	particles    *list.List
	memoizer     util.Memoizer

	group *tween.Group
	clock frameClock
}

// NewStreak creates an instance of a Streak object.
func NewStreak(numPixels int, streakChance int32, backColour colorful.Color, runtimeMs int64) *Streak {
	s := new(Streak)
	s.numPixels = numPixels
	s.streakChance = streakChance
	s.backColour = backColour
	s.particles = list.New()
	s.memoizer = util.Memoizer{}
	s.group = tween.NewGroup()
	s.clock = newFrameClock(runtimeMs)

	return s
}

// launch sends a streak from a random point to the end of the strip. Its gain
// eases in and back out over the run.
func (s *Streak) launch() {
	head := 0
	if s.numPixels > 1 {
		head = rand.Intn(s.numPixels / 2)
	}
	p := &streakParticle{
		Head:   float64(head),
		colour: colorful.Color{R: 0.45, G: -0.54, B: 0.02},
		length: streakLength,
	}
	distance := float64(s.numPixels) - p.Head
	lut := util.GenerateLutMemoized(int(distance*streakLutScale)*2+2, s.memoizer)

	tween.NewTween(p, s.group).
		To(map[string]float64{"Head": float64(s.numPixels)}, distance/streakSpeed).
		OnUpdate(func(_ any, progress float64) { p.gain = util.Sample(lut, progress) }).
		OnComplete(func(any) { p.done = true }).
		Start()
	s.particles.PushBack(p)
}

// CalculateFrame creates a new Frame instance.
func (s *Streak) CalculateFrame(runtimeMs int64) *Frame {
	s.group.Update(s.clock.delta(runtimeMs), false)

	f := NewFrame(s.numPixels)
	f.Fill(s.backColour)

	for e := s.particles.Front(); e != nil; {
		next := e.Next()
		particle, _ := e.Value.(*streakParticle)
		if particle.done {
			s.particles.Remove(e)
		} else {
			particle.addStreak(f)
		}
		e = next
	}

	if rand.Int31n(s.streakChance) == 0 {
		s.launch()
	}

	return f
}
