package stream

// An Animation implements a way to render a specific animation.
type Animation interface {
	CalculateFrame(runtimeMs int64) *Frame
}

// frameClock turns the absolute runtimes handed to CalculateFrame into the
// deltas a tween group is updated with.
type frameClock struct {
	last    int64
	started bool
}

func newFrameClock(runtimeMs int64) frameClock {
	return frameClock{last: runtimeMs, started: true}
}

// delta returns the milliseconds since the previous call. The first call
// returns 0 and runtimes that go backwards count as 0.
func (c *frameClock) delta(runtimeMs int64) float64 {
	if !c.started {
		c.last, c.started = runtimeMs, true
		return 0
	}
	d := runtimeMs - c.last
	c.last = runtimeMs
	if d < 0 {
		return 0
	}
	return float64(d)
}
