package tween

import (
	"math"
	"reflect"

	"github.com/charmbracelet/harmonica"
)

const (
	defaultFrequency      = 1.0
	defaultDamping        = 1.0
	defaultSleepThreshold = 0.01
	defaultSubstep        = 17.0

	epsilon = 1e-9
)

// Spring pulls the numeric leaves of a target towards a goal with a damped
// harmonic oscillator. It has no duration: it sleeps once every leaf has
// settled on its goal.
//
// Time is in milliseconds, the frequency in oscillations per second and the
// velocity of a leaf in units per second.
type Spring struct {
	id     uint64
	target any
	group  *Group

	goal      any
	dynamic   bool
	rates     map[string]float64
	positions map[string]float64

	frequency float64
	damping   float64
	threshold float64
	substep   float64
	delay     float64
	timescale float64
	elapsed   float64

	awake           bool
	awakeFired      bool
	afterDelayFired bool

	safetyCheck func(target any) bool
	motion      springMotion

	onAwake      func(target any)
	onAfterDelay func(target any)
	onUpdate     func(target any)
	onSleep      func(target any)
	onStop       func(target any)
}

// springMotion caches the harmonica coefficients for the last step size.
type springMotion struct {
	dt, omega, zeta float64
	ok              bool
	spring          harmonica.Spring
}

func (m *springMotion) get(dt, omega, zeta float64) harmonica.Spring {
	if !m.ok || m.dt != dt || m.omega != omega || m.zeta != zeta {
		m.dt, m.omega, m.zeta, m.ok = dt, omega, zeta, true
		m.spring = harmonica.NewSpring(dt, omega, zeta)
	}
	return m.spring
}

// NewSpring creates an instance of a Spring. A nil group leaves the spring
// unscheduled; it then has to be driven through Update.
func NewSpring(target any, group *Group) *Spring {
	s := new(Spring)
	s.id = NextID()
	s.target = target
	s.group = group
	s.rates = make(map[string]float64)
	s.positions = make(map[string]float64)
	s.frequency = defaultFrequency
	s.damping = defaultDamping
	s.threshold = defaultSleepThreshold
	s.substep = defaultSubstep
	s.timescale = 1
	s.safetyCheck = Defaults.SafetyCheck
	return s
}

// ID returns the id of this spring.
func (s *Spring) ID() uint64 {
	return s.id
}

// Target returns the animated value.
func (s *Spring) Target() any {
	return s.target
}

// GetGroup returns the group this spring registers with, possibly nil.
func (s *Spring) GetGroup() *Group {
	return s.group
}

// IsAwake reports whether the spring is moving.
func (s *Spring) IsAwake() bool {
	return s.awake
}

// Velocity returns the velocity of the leaf at path, such as "a" or "points[1].x".
func (s *Spring) Velocity(path string) float64 {
	return s.rates[path]
}

// To sets a goal for the spring. The goal is copied; a goal that references
// itself is used as a dynamic goal instead. The frequency and damping of the
// motion are set with AngularFrequency and Damping.
func (s *Spring) To(goal any) *Spring {
	c, err := deepClone(goal)
	if err != nil {
		warnf("goal of spring %d can't be copied, using it as a dynamic goal: %v", s.id, err)
		return s.DynamicTo(goal)
	}
	s.goal = c
	s.dynamic = false
	return s
}

// DynamicTo sets a goal that is read on every step.
func (s *Spring) DynamicTo(goal any) *Spring {
	s.goal = goal
	s.dynamic = true
	return s
}

// AngularFrequency sets the oscillation frequency in hertz. Zero removes the
// restoring force, leaving leaves to drift at their current velocity.
func (s *Spring) AngularFrequency(hz float64) *Spring {
	s.frequency = math.Max(0, hz)
	return s
}

// Damping sets the damping ratio: 0 oscillates forever, 1 is critically
// damped, above 1 is overdamped.
func (s *Spring) Damping(ratio float64) *Spring {
	s.damping = math.Max(0, ratio)
	return s
}

// Delay sets the time to hold still after Awake.
func (s *Spring) Delay(d float64) *Spring {
	s.delay = d
	return s
}

// Timescale multiplies every delta time.
func (s *Spring) Timescale(scale float64) *Spring {
	s.timescale = scale
	return s
}

// SleepThreshold sets the distance and velocity under which a leaf settles.
func (s *Spring) SleepThreshold(threshold float64) *Spring {
	s.threshold = threshold
	return s
}

// Substep sets the largest step integrated at once, in milliseconds.
func (s *Spring) Substep(ms float64) *Spring {
	if ms <= 0 {
		ms = defaultSubstep
	}
	s.substep = ms
	return s
}

// SafetyCheck sets a predicate run before each update. When it returns false
// the spring goes to sleep.
func (s *Spring) SafetyCheck(fn func(target any) bool) *Spring {
	if fn == nil {
		fn = Defaults.SafetyCheck
	}
	s.safetyCheck = fn
	return s
}

// Group moves the spring to another group.
func (s *Spring) Group(g *Group) *Spring {
	if s.awake {
		if s.group != nil {
			s.group.Remove(s)
		}
		if g != nil {
			g.Add(s)
		}
	}
	s.group = g
	return s
}

// OnAwake sets the callback fired on the first update after Awake.
func (s *Spring) OnAwake(fn func(target any)) *Spring {
	s.onAwake = fn
	return s
}

// OnAfterDelay sets the callback fired once the delay has passed.
func (s *Spring) OnAfterDelay(fn func(target any)) *Spring {
	s.onAfterDelay = fn
	return s
}

// OnUpdate sets the callback fired after every update.
func (s *Spring) OnUpdate(fn func(target any)) *Spring {
	s.onUpdate = fn
	return s
}

// OnSleep sets the callback fired when every leaf has settled. Calling Awake
// from it keeps the spring registered.
func (s *Spring) OnSleep(fn func(target any)) *Spring {
	s.onSleep = fn
	return s
}

// OnStop sets the callback fired by Stop.
func (s *Spring) OnStop(fn func(target any)) *Spring {
	s.onStop = fn
	return s
}

// Awake registers the spring with its group. Velocities are kept.
func (s *Spring) Awake() *Spring {
	if s.awake {
		return s
	}
	s.awake = true
	s.awakeFired = false
	s.afterDelayFired = false
	s.elapsed = 0
	if s.group != nil {
		s.group.Add(s)
	}
	return s
}

// AwakeDelayed sets the delay and awakes the spring.
func (s *Spring) AwakeDelayed(delay float64) *Spring {
	if !s.awake {
		s.delay = delay
	}
	return s.Awake()
}

// Stop puts the spring to sleep where it is.
func (s *Spring) Stop() *Spring {
	if !s.awake {
		return s
	}
	s.awake = false
	if s.group != nil {
		s.group.Remove(s)
	}
	s.fire(s.onStop)
	return s
}

// End moves every leaf onto its goal and zeroes the velocities. Unless
// keepAwake is set the spring goes to sleep.
func (s *Spring) End(keepAwake bool) *Spring {
	s.eachLeaf(func(p propPath, typ reflect.Type, _, goal float64) {
		store(s.target, p, typ, goal)
		s.rates[p.String()] = 0
		s.positions[p.String()] = goal
	})
	s.awake = keepAwake && s.awake
	if !s.awake && s.group != nil {
		s.group.Remove(s)
	}
	return s
}

// Update advances the spring by deltaTime milliseconds. Springs don't rewind:
// negative deltas count as zero. Returns false once the spring sleeps.
func (s *Spring) Update(deltaTime float64, preserve bool) bool {
	alive := s.update(deltaTime)
	if !alive && !preserve && s.group != nil {
		s.group.Remove(s)
	}
	return alive
}

func (s *Spring) update(dt float64) bool {
	if !s.safetyCheck(s.target) {
		s.awake = false
		return false
	}
	if !s.awake {
		return false
	}

	dt *= s.timescale
	if math.IsNaN(dt) || dt < 0 {
		dt = 0
	}
	before := s.elapsed
	s.elapsed += dt

	if !s.awakeFired {
		s.awakeFired = true
		s.fire(s.onAwake)
	}
	if s.elapsed < s.delay {
		s.fire(s.onUpdate)
		return s.awake
	}
	if !s.afterDelayFired {
		s.afterDelayFired = true
		s.fire(s.onAfterDelay)
	}

	active := s.elapsed - math.Max(before, s.delay)
	if math.IsInf(active, 1) {
		s.End(true)
		active = 0
	}

	moved := false
	for {
		step := math.Min(active, s.substep)
		moved = s.step(step) || moved
		active -= step
		if active <= 0 {
			break
		}
	}

	s.fire(s.onUpdate)
	if !moved {
		s.awake = false
		s.fire(s.onSleep)
		return s.awake
	}
	return s.awake
}

// step integrates every leaf by dt milliseconds. Returns true if any leaf
// hasn't settled.
func (s *Spring) step(dt float64) bool {
	moved := false
	s.eachLeaf(func(p propPath, typ reflect.Type, x, goal float64) {
		key := p.String()
		nx, nv, moving := s.stepLeaf(s.position(key, typ, x), s.rates[key], goal, dt)
		s.rates[key] = nv
		s.positions[key] = nx
		store(s.target, p, typ, nx)
		moved = moved || moving
	})
	return moved
}

// position returns the unrounded position of a leaf. It falls back to the
// target's value x when the leaf was written from outside since the last step.
func (s *Spring) position(key string, typ reflect.Type, x float64) float64 {
	pos, ok := s.positions[key]
	if !ok {
		return x
	}
	v, ok := makeValue(typ, pos)
	if !ok {
		return x
	}
	if stored, _, ok := leafValue(v); !ok || stored != x {
		return x
	}
	return pos
}

func (s *Spring) stepLeaf(x, v, goal, dt float64) (float64, float64, bool) {
	if math.Abs(x-goal) < s.threshold && math.Abs(v) < s.threshold {
		return goal, 0, false
	}

	sec := dt / 1000
	omega := 2 * math.Pi * s.frequency
	if omega < epsilon {
		return x + v*sec, v, true
	}
	nx, nv := s.motion.get(sec, omega, s.damping).Update(x, v, goal)
	return nx, nv, true
}

// eachLeaf calls fn for every numeric goal leaf that exists on the target.
func (s *Spring) eachLeaf(fn func(p propPath, typ reflect.Type, x, goal float64)) {
	if s.goal == nil {
		return
	}
	s.walk(reflect.ValueOf(s.goal), reflect.ValueOf(s.target), nil, fn)
}

func (s *Spring) walk(goal, target reflect.Value, p propPath, fn func(propPath, reflect.Type, float64, float64)) {
	goal, target = indirect(goal), indirect(target)
	if !goal.IsValid() || !target.IsValid() {
		return
	}
	if isContainer(goal) {
		if !isContainer(target) {
			return
		}
		for _, st := range children(goal) {
			gv, _ := child(goal, st)
			tv, ok := child(target, st)
			if ok {
				s.walk(gv, tv, p.child(st), fn)
			}
		}
		return
	}
	if len(p) == 0 {
		return
	}

	g, _, ok := leafValue(goal)
	if !ok {
		return
	}
	x, _, ok := leafValue(target)
	if !ok {
		return
	}
	fn(p, target.Type(), x, g)
}

func (s *Spring) fire(fn func(target any)) {
	if fn != nil {
		fn(s.target)
	}
}
