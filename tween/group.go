package tween

import (
	"sort"
	"sync"
	"time"
)

var processStart = time.Now()

// defaultNow returns milliseconds elapsed on the monotonic clock since the
// process started.
func defaultNow() float64 {
	return float64(time.Since(processStart)) / float64(time.Millisecond)
}

var (
	sharedOnce  sync.Once
	sharedGroup *Group
)

// Shared returns a process-wide default Group, created on first use. Nothing
// in this package uses it implicitly; hosts pass it to NewTween or NewSpring
// when they want a single scheduler.
func Shared() *Group {
	sharedOnce.Do(func() {
		sharedGroup = NewGroup()
	})
	return sharedGroup
}

type entry struct {
	item Updateable
	seq  uint64
}

// A Group drives a set of updateables from one external tick.
//
// Updateables are ticked in batches. Anything registered while a batch is
// running is ticked in a later batch of the same Update call, and no
// updateable is ticked twice in one call. Removing an updateable mid-batch
// skips it if it hasn't been ticked yet.
//
// A Group is not safe for concurrent use.
type Group struct {
	id      uint64
	entries map[uint64]*entry
	pending map[uint64]*entry
	seq     uint64
	paused  bool

	now        func() float64
	lastUpdate float64
	hasLast    bool
}

// NewGroup creates an instance of a Group.
func NewGroup() *Group {
	g := new(Group)
	g.id = NextID()
	g.entries = make(map[uint64]*entry)
	g.pending = make(map[uint64]*entry)
	g.now = defaultNow
	return g
}

// ID returns the id of this group.
func (g *Group) ID() uint64 {
	return g.id
}

// SetNow replaces the time source used by Tick. now must return milliseconds
// and never go backwards.
func (g *Group) SetNow(now func() float64) {
	if now == nil {
		now = defaultNow
	}
	g.now = now
}

// Pause makes Update a no-op until Resume is called.
func (g *Group) Pause() {
	g.paused = true
}

// Resume undoes Pause.
func (g *Group) Resume() {
	g.paused = false
}

// IsPaused reports whether the group is paused.
func (g *Group) IsPaused() bool {
	return g.paused
}

// Add registers u. Adding an updateable twice keeps its original position.
func (g *Group) Add(u Updateable) {
	id := u.ID()
	e, ok := g.entries[id]
	if !ok {
		g.seq++
		e = &entry{item: u, seq: g.seq}
		g.entries[id] = e
	}
	g.pending[id] = e
}

// Remove unregisters u. Removing an unknown updateable is a no-op.
func (g *Group) Remove(u Updateable) {
	g.remove(u.ID())
}

func (g *Group) remove(id uint64) {
	delete(g.entries, id)
	delete(g.pending, id)
}

// RemoveAll clears the group without notifying the updateables.
func (g *Group) RemoveAll() {
	g.entries = make(map[uint64]*entry)
	g.pending = make(map[uint64]*entry)
}

// GetAll returns the registered updateables in registration order.
func (g *Group) GetAll() []Updateable {
	batch := snapshot(g.entries)
	out := make([]Updateable, len(batch))
	for i, e := range batch {
		out[i] = e.item
	}
	return out
}

// Len returns the number of registered updateables.
func (g *Group) Len() int {
	return len(g.entries)
}

// Tick updates the group with the time elapsed since the previous Tick or
// Update, taken from the group's time source. The first call uses zero.
func (g *Group) Tick(preserve bool) bool {
	now := g.now()
	deltaTime := 0.0
	if g.hasLast {
		deltaTime = now - g.lastUpdate
	}
	return g.update(deltaTime, preserve, now)
}

// Update ticks every registered updateable by deltaTime milliseconds and
// evicts the ones that report they are done, unless preserve is set.
// Returns true if at least one updateable was ticked.
func (g *Group) Update(deltaTime float64, preserve bool) bool {
	return g.update(deltaTime, preserve, g.now())
}

func (g *Group) update(deltaTime float64, preserve bool, now float64) bool {
	g.lastUpdate, g.hasLast = now, true

	if g.paused || len(g.entries) == 0 {
		return false
	}

	ticked := make(map[uint64]bool, len(g.entries))
	batch := snapshot(g.entries)
	g.pending = make(map[uint64]*entry)

	for len(batch) > 0 {
		for _, e := range batch {
			id := e.item.ID()
			if ticked[id] {
				continue
			}
			if _, ok := g.entries[id]; !ok {
				continue
			}
			ticked[id] = true
			if !e.item.Update(deltaTime, preserve) && !preserve {
				g.remove(id)
			}
		}

		batch = snapshot(g.pending)
		g.pending = make(map[uint64]*entry)
	}

	return len(ticked) > 0
}

func snapshot(m map[uint64]*entry) []*entry {
	out := make([]*entry, 0, len(m))
	for _, e := range m {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}
