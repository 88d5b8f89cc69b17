package tween

import (
	"fmt"
	"math"
	"reflect"
)

// track is one bound leaf of the target. It is built when the tween starts
// and keeps the leaf's Go type so values are written back unchanged in kind.
type track struct {
	path  propPath
	kind  leafKind
	typ   reflect.Type
	start float64
	end   endpoint
	live  bool
	curve []float64
}

// to returns the absolute goal of the track, re-reading it from a dynamic
// goal when the track is live.
func (tr *track) to(goal any) float64 {
	if tr.live {
		if v, ok := lookup(goal, tr.path); ok {
			if e, ok := parseEndpoint(v); ok {
				tr.end = e
			}
		}
	}
	return tr.end.resolve(tr.start)
}

// swap reverses the direction of the track for a yoyo loop.
func (tr *track) swap(goal any) {
	if tr.curve != nil {
		for i, j := 0, len(tr.curve)-1; i < j; i, j = i+1, j-1 {
			tr.curve[i], tr.curve[j] = tr.curve[j], tr.curve[i]
		}
		tr.start = tr.curve[0]
		return
	}
	next := tr.to(goal)
	tr.end = endpoint{value: tr.start}
	tr.start = next
	tr.live = false
}

// shift moves the start of a relative track by n loops.
func (tr *track) shift(goal any, n int) {
	if tr.curve != nil {
		return
	}
	tr.to(goal)
	if tr.end.relative {
		tr.start += float64(n) * tr.end.value
	}
}

func (tr *track) value(goal any, amount float64, interpolate InterpolationFunc) float64 {
	if tr.curve != nil {
		return interpolate(tr.curve, amount)
	}
	end := tr.to(goal)
	switch amount {
	case 0:
		return tr.start
	case 1:
		return end
	}
	return tr.start + (end-tr.start)*amount
}

// Tween animates the numeric leaves of a target towards a goal over a duration.
//
// All configuration methods return the tween so calls can be chained:
//
//	tween.NewTween(&pos, group).To(map[string]any{"X": 100}, 500).Easing(easing.Quadratic.Out).Start()
type Tween struct {
	id     uint64
	target any
	group  *Group

	goal     any
	dynamic  bool
	from     map[string]float64
	captured map[string]float64
	tracks   []*track
	err      error

	duration    float64
	delay       float64
	repeat      int
	repeatLeft  int
	repeatDelay float64
	yoyo        bool
	reversed    bool
	timescale   float64
	loops       int

	clock   float64
	elapsed float64

	playing         bool
	paused          bool
	completed       bool
	ending          bool
	startFired      bool
	afterDelayFired bool
	chainStopped    bool

	safetyCheck   func(target any) bool
	easing        EasingFunc
	yoyoEasing    EasingFunc
	interpolation InterpolationFunc
	chained       []*Tween

	onStart      func(target any)
	onAfterDelay func(target any)
	onUpdate     func(target any, progress float64)
	onRepeat     func(target any, loop int)
	onComplete   func(target any)
	onStop       func(target any)
	onFinally    func(target any)
}

// NewTween creates an instance of a Tween animating target. A nil group
// leaves the tween unscheduled; it then has to be driven through Update.
func NewTween(target any, group *Group) *Tween {
	t := new(Tween)
	t.id = NextID()
	t.target = target
	t.group = group
	t.from = make(map[string]float64)
	t.captured = make(map[string]float64)
	t.timescale = 1
	t.safetyCheck = Defaults.SafetyCheck
	t.easing = Defaults.Easing
	t.yoyoEasing = Defaults.YoyoEasing
	t.interpolation = Defaults.Interpolation
	return t
}

// ID returns the id of this tween.
func (t *Tween) ID() uint64 {
	return t.id
}

// Target returns the animated value.
func (t *Tween) Target() any {
	return t.target
}

// GetGroup returns the group this tween registers with, possibly nil.
func (t *Tween) GetGroup() *Group {
	return t.group
}

// IsPlaying reports whether the tween has been started and hasn't finished or stopped.
func (t *Tween) IsPlaying() bool {
	return t.playing
}

// IsPaused reports whether the tween is paused.
func (t *Tween) IsPaused() bool {
	return t.paused
}

// ElapsedTime returns the scaled time, in milliseconds, since the tween started.
func (t *Tween) ElapsedTime() float64 {
	return t.elapsed
}

// Progress returns the linear progress of the current loop in [0, 1].
func (t *Tween) Progress() float64 {
	if t.clock < 0 {
		return 0
	}
	if t.duration <= 0 {
		return 1
	}
	return math.Min(1, math.Max(0, t.clock/t.duration))
}

// RepeatsLeft returns the number of loops still to play, or Forever.
func (t *Tween) RepeatsLeft() int {
	return t.repeatLeft
}

// Err returns the configuration error recorded by From, if any.
func (t *Tween) Err() error {
	return t.err
}

// To sets a goal for the tween. The goal is copied, so changing it later has
// no effect. A goal that references itself can't be copied and is used as a
// dynamic goal instead.
func (t *Tween) To(goal any, duration float64) *Tween {
	c, err := deepClone(goal)
	if err != nil {
		warnf("goal of tween %d can't be copied, using it as a dynamic goal: %v", t.id, err)
		return t.DynamicTo(goal, duration)
	}
	t.goal = c
	t.dynamic = false
	t.duration = duration
	return t
}

// DynamicTo sets a goal that is read on every update, so it can be moved
// while the tween is playing.
func (t *Tween) DynamicTo(goal any, duration float64) *Tween {
	t.goal = goal
	t.dynamic = true
	t.duration = duration
	return t
}

// From overrides the start values that would otherwise be read from the
// target. It can be called while playing.
func (t *Tween) From(values any) *Tween {
	c, err := deepClone(values)
	if err != nil {
		t.err = fmt.Errorf("from values of tween %d: %w", t.id, err)
		return t
	}
	switch c.(type) {
	case map[string]any, []any:
	default:
		t.err = fmt.Errorf("from values of tween %d: %w: %T", t.id, ErrUnsupportedValue, values)
		return t
	}

	flatten(c, nil, t.from)
	for _, tr := range t.tracks {
		f, ok := t.from[tr.path.String()]
		if !ok {
			continue
		}
		tr.start = f
		if tr.curve != nil {
			tr.curve[0] = f
		}
	}
	return t
}

// Duration sets the length of one loop in milliseconds.
func (t *Tween) Duration(d float64) *Tween {
	t.duration = d
	return t
}

// Delay sets the time to wait after Start before the first loop plays.
func (t *Tween) Delay(d float64) *Tween {
	t.delay = d
	return t
}

// Repeat sets how many times the tween plays again after the first loop.
// Use Forever to loop endlessly.
func (t *Tween) Repeat(times int) *Tween {
	if times < 0 {
		times = Forever
	}
	t.repeat = times
	t.repeatLeft = times
	return t
}

// RepeatDelay sets the pause between loops.
func (t *Tween) RepeatDelay(d float64) *Tween {
	t.repeatDelay = d
	return t
}

// Yoyo makes every other loop play backwards.
func (t *Tween) Yoyo(yoyo bool) *Tween {
	t.yoyo = yoyo
	return t
}

// Timescale multiplies every delta time. It can be changed while playing.
func (t *Tween) Timescale(scale float64) *Tween {
	t.timescale = scale
	return t
}

// Easing sets the easing function. It can be changed while playing.
func (t *Tween) Easing(fn EasingFunc) *Tween {
	if fn == nil {
		fn = Defaults.Easing
	}
	t.easing = fn
	return t
}

// YoyoEasing sets the easing used by loops playing backwards. When unset the
// forward easing is mirrored.
func (t *Tween) YoyoEasing(fn EasingFunc) *Tween {
	t.yoyoEasing = fn
	return t
}

// Interpolation sets the function used for goals given as a list of points.
func (t *Tween) Interpolation(fn InterpolationFunc) *Tween {
	if fn == nil {
		fn = Defaults.Interpolation
	}
	t.interpolation = fn
	return t
}

// SafetyCheck sets a predicate run before each update. When it returns false
// the tween ends as if it had finished.
func (t *Tween) SafetyCheck(fn func(target any) bool) *Tween {
	if fn == nil {
		fn = Defaults.SafetyCheck
	}
	t.safetyCheck = fn
	return t
}

// Chain sets the tweens started when this one completes.
func (t *Tween) Chain(tweens ...*Tween) *Tween {
	t.chained = tweens
	return t
}

// Group moves the tween to another group.
func (t *Tween) Group(g *Group) *Tween {
	if t.playing && !t.paused {
		if t.group != nil {
			t.group.Remove(t)
		}
		if g != nil {
			g.Add(t)
		}
	}
	t.group = g
	return t
}

// OnStart sets the callback fired on the first update after Start.
func (t *Tween) OnStart(fn func(target any)) *Tween {
	t.onStart = fn
	return t
}

// OnAfterDelay sets the callback fired once the start delay has passed.
func (t *Tween) OnAfterDelay(fn func(target any)) *Tween {
	t.onAfterDelay = fn
	return t
}

// OnUpdate sets the callback fired after every update with the loop progress.
func (t *Tween) OnUpdate(fn func(target any, progress float64)) *Tween {
	t.onUpdate = fn
	return t
}

// OnRepeat sets the callback fired for every loop completed, with the number
// of loops played so far.
func (t *Tween) OnRepeat(fn func(target any, loop int)) *Tween {
	t.onRepeat = fn
	return t
}

// OnComplete sets the callback fired when the last loop finishes.
func (t *Tween) OnComplete(fn func(target any)) *Tween {
	t.onComplete = fn
	return t
}

// OnStop sets the callback fired by Stop.
func (t *Tween) OnStop(fn func(target any)) *Tween {
	t.onStop = fn
	return t
}

// OnFinally sets the callback fired whenever the tween stops playing.
func (t *Tween) OnFinally(fn func(target any)) *Tween {
	t.onFinally = fn
	return t
}

// Start reads the start values from the target and registers the tween with
// its group. Starting a playing tween does nothing.
func (t *Tween) Start() *Tween {
	if t.playing {
		return t
	}
	if t.err != nil {
		warnf("tween %d not started: %v", t.id, t.err)
		return t
	}

	t.repeatLeft = t.repeat
	t.loops = 0
	t.reversed = false
	t.playing = true
	t.paused = false
	t.completed = false
	t.ending = false
	t.startFired = false
	t.afterDelayFired = false
	t.chainStopped = false
	t.clock = -t.delay
	t.elapsed = 0
	t.bind()

	if t.group != nil {
		t.group.Add(t)
	}
	return t
}

// StartDelayed sets the delay and starts the tween.
func (t *Tween) StartDelayed(delay float64) *Tween {
	if !t.playing {
		t.delay = delay
	}
	return t.Start()
}

// Stop halts the tween where it is and stops the chained tweens.
func (t *Tween) Stop() *Tween {
	if !t.chainStopped {
		t.chainStopped = true
		t.StopChainedTweens()
	}
	if !t.playing {
		return t
	}

	if t.group != nil {
		t.group.Remove(t)
	}
	t.playing = false
	t.paused = false
	t.fire(t.onStop)
	t.fire(t.onFinally)
	return t
}

// StopChainedTweens stops every chained tween.
func (t *Tween) StopChainedTweens() *Tween {
	for _, c := range t.chained {
		c.Stop()
	}
	return t
}

// End jumps to the final state of the tween, completing it. A tween
// repeating forever finishes its current loop.
func (t *Tween) End() *Tween {
	if t.completed {
		return t
	}
	if !t.playing {
		t.Start()
		if !t.playing {
			return t
		}
	}
	if t.paused {
		t.paused = false
		if t.group != nil {
			t.group.Add(t)
		}
	}
	if t.repeatLeft == Forever {
		t.repeatLeft = 0
	}

	remaining := t.duration - t.clock + float64(t.repeatLeft)*(t.repeatDelay+t.duration)
	t.ending = true
	alive := t.advance(math.Max(0, remaining))
	t.ending = false
	if !alive && t.group != nil {
		t.group.Remove(t)
	}
	return t
}

// Pause removes the tween from its group, keeping its elapsed time.
func (t *Tween) Pause() *Tween {
	if t.paused || !t.playing {
		return t
	}
	t.paused = true
	if t.group != nil {
		t.group.Remove(t)
	}
	return t
}

// Resume continues a paused tween from where it was paused.
func (t *Tween) Resume() *Tween {
	if !t.paused || !t.playing {
		return t
	}
	t.paused = false
	if t.group != nil {
		t.group.Add(t)
	}
	return t
}

// Reset forgets the start values read from the target, so the next Start
// reads them again. Values given to From are kept.
func (t *Tween) Reset() *Tween {
	t.captured = make(map[string]float64)
	return t
}

// Restart stops, resets and starts the tween.
func (t *Tween) Restart() *Tween {
	return t.Stop().Reset().Start()
}

// Update advances the tween by deltaTime milliseconds. A negative deltaTime
// rewinds it. Returns false once the tween has finished.
func (t *Tween) Update(deltaTime float64, preserve bool) bool {
	alive := t.update(deltaTime)
	if !alive && !preserve && t.group != nil {
		t.group.Remove(t)
	}
	return alive
}

func (t *Tween) update(dt float64) bool {
	if !t.safetyCheck(t.target) {
		wasPlaying := t.playing
		t.playing = false
		if wasPlaying {
			t.fire(t.onFinally)
		}
		return false
	}
	if t.paused {
		return true
	}

	switch {
	case math.IsNaN(dt):
		dt = 0
	case math.IsInf(dt, 1):
		t.End()
		return t.playing
	case math.IsInf(dt, -1):
		dt = -t.elapsed
	default:
		dt *= t.timescale
	}
	return t.advance(dt)
}

// advance moves the tween by an already scaled delta.
func (t *Tween) advance(dt float64) bool {
	if t.completed {
		if dt >= 0 {
			return false
		}
		if t.clock+dt >= t.duration {
			t.clock += dt
			t.elapsed += dt
			return false
		}
		t.completed = false
		t.playing = true
		if t.group != nil {
			t.group.Add(t)
		}
	}

	if !t.playing {
		t.Start()
		if !t.playing {
			return false
		}
	}

	t.clock += dt
	t.elapsed += dt

	if !t.startFired {
		t.startFired = true
		t.fire(t.onStart)
		if !t.playing {
			return false
		}
	}
	if !t.afterDelayFired && (t.elapsed >= t.delay || t.ending) {
		t.afterDelayFired = true
		t.fire(t.onAfterDelay)
		if !t.playing {
			return false
		}
	}

	switch {
	case dt > 0:
		if !t.wrapForward() {
			return t.playing
		}
	case dt < 0:
		t.wrapBackward()
	}
	if t.ending && t.repeatLeft == 0 {
		t.clock = math.Max(t.clock, t.duration)
	}

	progress := t.Progress()
	t.render(progress)
	if t.onUpdate != nil {
		t.onUpdate(t.target, progress)
		if !t.playing {
			return false
		}
	}

	if t.repeatLeft == 0 && t.clock >= t.duration {
		return t.complete()
	}
	return true
}

// wrapForward consumes every loop boundary the clock moved strictly past.
// Returns false if a repeat callback stopped the tween.
func (t *Tween) wrapForward() bool {
	if t.repeatLeft == 0 || t.clock <= t.duration {
		return true
	}

	over := t.clock - t.duration
	span := t.duration + t.repeatDelay
	n := 1
	if span > 0 {
		n = int(math.Ceil(over / span))
	}
	if t.repeatLeft != Forever && n > t.repeatLeft {
		n = t.repeatLeft
	}
	t.clock = over - float64(n-1)*span - t.repeatDelay

	t.turn(n)
	first := t.loops
	t.loops += n
	if t.repeatLeft != Forever {
		t.repeatLeft -= n
	}

	for i := 1; i <= n && t.onRepeat != nil; i++ {
		t.onRepeat(t.target, first+i)
		if !t.playing || t.completed {
			return false
		}
	}
	return true
}

// wrapBackward undoes every loop the clock moved back out of.
func (t *Tween) wrapBackward() {
	if t.loops == 0 || t.clock > -t.repeatDelay {
		return
	}

	under := -t.repeatDelay - t.clock
	span := t.duration + t.repeatDelay
	n := 1
	if span > 0 {
		n = int(math.Floor(under/span)) + 1
	}
	if n > t.loops {
		n = t.loops
	}
	t.clock = t.duration - (under - float64(n-1)*span)

	t.turn(-n)
	t.loops -= n
	if t.repeatLeft != Forever {
		t.repeatLeft += n
	}
}

// turn applies n loop changes to the tracks, or undoes them when n is negative.
func (t *Tween) turn(n int) {
	if t.yoyo {
		if n%2 == 0 {
			return
		}
		for _, tr := range t.tracks {
			tr.swap(t.goal)
		}
		t.reversed = !t.reversed
		if !t.reversed {
			for _, tr := range t.tracks {
				tr.live = t.dynamic && tr.curve == nil
			}
		}
		return
	}
	for _, tr := range t.tracks {
		tr.shift(t.goal, n)
	}
}

func (t *Tween) ease(progress float64) float64 {
	if !t.reversed {
		return t.easing(progress)
	}
	if t.yoyoEasing != nil {
		return t.yoyoEasing(progress)
	}
	return 1 - t.easing(1-progress)
}

func (t *Tween) render(progress float64) {
	amount := t.ease(progress)
	for _, tr := range t.tracks {
		store(t.target, tr.path, tr.typ, tr.value(t.goal, amount, t.interpolation))
	}
}

func (t *Tween) complete() bool {
	t.playing = false
	t.completed = true
	t.fire(t.onComplete)
	t.fire(t.onFinally)
	for _, c := range t.chained {
		c.Start()
	}
	return t.playing
}

func (t *Tween) fire(fn func(target any)) {
	if fn != nil {
		fn(t.target)
	}
}

// bind builds the tracks for every goal leaf that exists on the target as a
// number or numeric string. Other leaves are skipped until the next Start.
func (t *Tween) bind() {
	t.tracks = nil
	if t.goal == nil {
		return
	}
	t.bindNode(reflect.ValueOf(t.goal), reflect.ValueOf(t.target), nil)
}

func (t *Tween) bindNode(goal, target reflect.Value, p propPath) {
	goal, target = indirect(goal), indirect(target)
	if !isContainer(goal) || !isContainer(target) {
		return
	}
	for _, s := range children(goal) {
		gv, _ := child(goal, s)
		tv, ok := child(target, s)
		if !ok {
			continue
		}
		t.bindLeaf(gv, tv, p.child(s))
	}
}

func (t *Tween) bindLeaf(goal, target reflect.Value, p propPath) {
	gv, tv := indirect(goal), indirect(target)
	if !gv.IsValid() || !tv.IsValid() {
		return
	}
	if isContainer(tv) {
		t.bindNode(gv, tv, p)
		return
	}

	start, kind, ok := leafValue(tv)
	if !ok {
		return
	}
	key := p.String()
	if f, ok := t.from[key]; ok {
		start = f
	} else if f, ok := t.captured[key]; ok {
		start = f
	} else {
		t.captured[key] = start
	}

	tr := &track{path: p, kind: kind, typ: tv.Type(), start: start}
	if isList(gv) {
		if gv.Len() == 0 {
			return
		}
		tr.curve = make([]float64, 0, gv.Len()+1)
		tr.curve = append(tr.curve, start)
		for i := 0; i < gv.Len(); i++ {
			e, ok := parseEndpoint(gv.Index(i))
			if !ok {
				return
			}
			tr.curve = append(tr.curve, e.resolve(start))
		}
	} else {
		e, ok := parseEndpoint(gv)
		if !ok {
			return
		}
		tr.end = e
		tr.live = t.dynamic
	}
	t.tracks = append(t.tracks, tr)
}

// flatten collects the numeric leaves of a cloned value tree by path.
func flatten(v any, p propPath, out map[string]float64) {
	switch x := v.(type) {
	case map[string]any:
		for k, c := range x {
			flatten(c, p.child(step{name: k}), out)
		}
	case []any:
		for i, c := range x {
			flatten(c, p.child(step{index: i, isIndex: true}), out)
		}
	default:
		if len(p) == 0 || x == nil {
			return
		}
		if f, _, ok := leafValue(reflect.ValueOf(x)); ok {
			out[p.String()] = f
		}
	}
}
