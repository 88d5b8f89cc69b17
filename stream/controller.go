package stream

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/matt-g-everett/ledtween/easing"
	"github.com/matt-g-everett/ledtween/tween"
)

// Status describes what a Controller is showing.
type Status struct {
	Animation  string  `json:"animation"`
	Next       string  `json:"next,omitempty"`
	Paused     bool    `json:"paused"`
	Timescale  float64 `json:"timescale"`
	Transition float64 `json:"transition"`
	RuntimeMs  int64   `json:"runtimeMs"`
}

// Controller that manages animations. It cross-fades from one animation to
// the next and is safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	numPixels     int
	names         []string
	index         int
	animationTime time.Duration
	transitionMs  float64
	easing        easing.Func

	animation     Animation
	nextAnimation Animation
	nextIndex     int
	fade          struct{ Mix float64 }
	fadeTween     *tween.Tween

	group     *tween.Group
	clock     frameClock
	runtimeMs float64
	paused    bool
	timescale float64
	lastFrame *Frame
}

// NewController creates an instance of a Controller showing the first
// configured animation.
func NewController(config StreamConfig, runtimeMs int64) (*Controller, error) {
	ease, ok := easing.Lookup(config.Easing)
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", config.Easing)
	}
	if len(config.Animations) == 0 {
		return nil, fmt.Errorf("no animations configured")
	}
	for _, name := range config.Animations {
		if _, ok := animations[name]; !ok {
			return nil, fmt.Errorf("unknown animation %q", name)
		}
	}

	c := new(Controller)
	c.numPixels = config.Pixels
	if c.numPixels <= 0 {
		c.numPixels = NumPixels
	}
	c.names = append([]string(nil), config.Animations...)
	c.animationTime = config.AnimationTime
	c.transitionMs = float64(config.TransitionTime) / float64(time.Millisecond)
	c.easing = ease
	c.group = tween.NewGroup()
	c.clock = newFrameClock(runtimeMs)
	c.runtimeMs = float64(runtimeMs)
	c.timescale = 1

	c.animation, _ = newAnimation(c.names[0], c.numPixels, runtimeMs)

	return c, nil
}

// CalculateFrame renders the frame for a wall clock runtime. Playback time
// only moves while the controller isn't paused, scaled by the timescale.
func (c *Controller) CalculateFrame(runtimeMs int64) *Frame {
	c.mu.Lock()
	defer c.mu.Unlock()

	dt := c.clock.delta(runtimeMs)
	if c.paused && c.lastFrame != nil {
		return c.lastFrame
	}
	if c.paused {
		dt = 0
	}
	dt *= c.timescale
	c.runtimeMs += dt
	c.group.Update(dt, false)

	now := int64(c.runtimeMs)
	var f *Frame
	if c.nextAnimation != nil {
		f1 := c.animation.CalculateFrame(now)
		f2 := c.nextAnimation.CalculateFrame(now)
		f = f1.InterpolateFrame(f2, c.fade.Mix)
	} else {
		f = c.animation.CalculateFrame(now)
	}

	c.lastFrame = f
	return f
}

// Next starts a cross-fade to the next configured animation. A transition
// already running is finished first.
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next()
}

func (c *Controller) next() {
	if c.fadeTween != nil && c.nextAnimation != nil {
		c.fadeTween.End()
	}

	c.nextIndex = (c.index + 1) % len(c.names)
	name := c.names[c.nextIndex]
	log.Printf("Transitioning to %s", name)
	c.nextAnimation, _ = newAnimation(name, c.numPixels, int64(c.runtimeMs))

	c.fade.Mix = 0
	c.fadeTween = tween.NewTween(&c.fade, c.group).
		To(map[string]float64{"Mix": 1}, c.transitionMs).
		Easing(c.easing).
		OnComplete(func(any) { c.finishTransition() }).
		Start()
}

func (c *Controller) finishTransition() {
	c.animation = c.nextAnimation
	c.index = c.nextIndex
	c.nextAnimation = nil
	c.fade.Mix = 0
}

// Pause freezes playback on the last frame.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = true
}

// Resume continues playback.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
}

// SetTimescale sets the playback speed. Animations don't run backwards, so
// negative scales are refused.
func (c *Controller) SetTimescale(scale float64) error {
	if scale < 0 || math.IsNaN(scale) {
		return fmt.Errorf("invalid timescale %v", scale)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timescale = scale
	return nil
}

// Status returns a snapshot of the controller.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Status{
		Animation: c.names[c.index],
		Paused:    c.paused,
		Timescale: c.timescale,
		RuntimeMs: int64(c.runtimeMs),
	}
	if c.nextAnimation != nil {
		s.Next = c.names[c.nextIndex]
		s.Transition = c.fade.Mix
	}
	return s
}

// Run causes the Controller to cycle through animations.
func (c *Controller) Run() {
	cycleTimer := time.NewTicker(c.animationTime)
	for {
		<-cycleTimer.C
		c.Next()
	}
}
