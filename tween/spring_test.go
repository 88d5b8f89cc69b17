package tween

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func settle(s *Spring, maxUpdates int) int {
	n := 0
	for n < maxUpdates && s.Update(17, false) {
		n++
	}
	return n
}

func TestSpring(t *testing.T) {
	t.Run("settles a critically damped spring on the goal", func(t *testing.T) {
		o := map[string]float64{"a": 0}
		s := NewSpring(o, nil).To(map[string]any{"a": 500}).Damping(1).Awake()

		n := settle(s, 1000)
		assert.Less(t, n, 1000)
		assert.False(t, s.IsAwake())
		assert.Equal(t, 500.0, o["a"])
		assert.Equal(t, 0.0, s.Velocity("a"))
	})

	t.Run("settles integer leaves on the goal", func(t *testing.T) {
		o := map[string]int{"a": 0}
		s := NewSpring(o, nil).To(map[string]any{"a": 500}).Awake()

		n := settle(s, 1000)
		assert.Less(t, n, 1000)
		assert.False(t, s.IsAwake())
		assert.Equal(t, 500, o["a"])
	})

	t.Run("picks up integer leaves written from outside", func(t *testing.T) {
		o := map[string]int{"a": 0}
		s := NewSpring(o, nil).To(map[string]any{"a": 10}).Awake()

		s.Update(17, false)
		s.End(true)
		assert.Equal(t, 10, o["a"])
		o["a"] = 300
		settle(s, 1000)
		assert.Equal(t, 10, o["a"])
	})

	t.Run("keeps numeric string leaves precise", func(t *testing.T) {
		o := map[string]string{"a": "0"}
		s := NewSpring(o, nil).To(map[string]any{"a": 1}).Awake()

		n := settle(s, 1000)
		assert.Less(t, n, 1000)
		assert.Equal(t, "1", o["a"])
	})

	t.Run("overshoots when underdamped", func(t *testing.T) {
		o := map[string]float64{"a": 0}
		s := NewSpring(o, nil).To(map[string]any{"a": 500}).Damping(0.5).Awake()

		peak := 0.0
		for i := 0; i < 2000 && s.Update(17, false); i++ {
			if o["a"] > peak {
				peak = o["a"]
			}
		}
		assert.Greater(t, peak, 500.0)
		assert.False(t, s.IsAwake())
		assert.Equal(t, 500.0, o["a"])
	})

	t.Run("creeps without overshoot when overdamped", func(t *testing.T) {
		o := map[string]float64{"a": 0}
		s := NewSpring(o, nil).To(map[string]any{"a": 500}).Damping(2).Awake()

		for i := 0; i < 3000 && s.Update(17, false); i++ {
			assert.LessOrEqual(t, o["a"], 500.0)
		}
		assert.False(t, s.IsAwake())
	})

	t.Run("oscillates forever without damping", func(t *testing.T) {
		o := map[string]float64{"a": 0}
		s := NewSpring(o, nil).To(map[string]any{"a": 500}).Damping(0).Awake()

		assert.Equal(t, 1000, settle(s, 1000))
		assert.True(t, s.IsAwake())
	})

	t.Run("drifts without a restoring force", func(t *testing.T) {
		o := map[string]float64{"a": 0}
		s := NewSpring(o, nil).To(map[string]any{"a": 500}).AngularFrequency(0).Awake()

		assert.Equal(t, 100, settle(s, 100))
		assert.Equal(t, 0.0, o["a"])
	})

	t.Run("splits large deltas into substeps", func(t *testing.T) {
		stepped := map[string]float64{"a": 0}
		s1 := NewSpring(stepped, nil).To(map[string]any{"a": 100}).Damping(0.3).Awake()
		for i := 0; i < 10; i++ {
			s1.Update(10, false)
		}

		whole := map[string]float64{"a": 0}
		s2 := NewSpring(whole, nil).To(map[string]any{"a": 100}).Damping(0.3).Substep(10).Awake()
		s2.Update(100, false)

		assert.InDelta(t, stepped["a"], whole["a"], 1e-9)
	})

	t.Run("holds still during the delay", func(t *testing.T) {
		o := map[string]float64{"a": 0}
		after := 0
		s := NewSpring(o, nil).To(map[string]any{"a": 500}).
			OnAfterDelay(func(any) { after++ }).
			AwakeDelayed(100)

		assert.True(t, s.Update(50, false))
		assert.Equal(t, 0.0, o["a"])
		assert.Equal(t, 0, after)

		assert.True(t, s.Update(100, false))
		assert.Greater(t, o["a"], 0.0)
		assert.Equal(t, 1, after)
	})

	t.Run("ignores negative deltas", func(t *testing.T) {
		o := map[string]float64{"a": 0}
		s := NewSpring(o, nil).To(map[string]any{"a": 500}).Awake()

		assert.True(t, s.Update(-50, false))
		assert.Equal(t, 0.0, o["a"])
	})

	t.Run("can be woken from the sleep callback", func(t *testing.T) {
		o := map[string]float64{"a": 0}
		sleeps := 0
		var s *Spring
		s = NewSpring(o, nil).To(map[string]any{"a": 1}).OnSleep(func(any) {
			sleeps++
			if sleeps == 1 {
				s.Awake()
			}
		}).Awake()

		for i := 0; i < 1000 && sleeps == 0; i++ {
			s.Update(17, false)
		}
		assert.Equal(t, 1, sleeps)
		assert.True(t, s.IsAwake())

		assert.False(t, s.Update(17, false))
		assert.Equal(t, 2, sleeps)
	})

	t.Run("jumps to the goal", func(t *testing.T) {
		o := map[string]float64{"a": 0}
		s := NewSpring(o, nil).To(map[string]any{"a": 500}).Awake()
		s.Update(100, false)

		s.End(false)
		assert.Equal(t, 500.0, o["a"])
		assert.Equal(t, 0.0, s.Velocity("a"))
		assert.False(t, s.IsAwake())
	})

	t.Run("follows dynamic goals", func(t *testing.T) {
		o := map[string]float64{"a": 0}
		goal := map[string]float64{"a": 50}
		s := NewSpring(o, nil).DynamicTo(goal).Awake()
		settle(s, 1000)
		assert.Equal(t, 50.0, o["a"])

		goal["a"] = 10
		s.Awake()
		settle(s, 1000)
		assert.Equal(t, 10.0, o["a"])
	})

	t.Run("leaves its group when asleep", func(t *testing.T) {
		g := NewGroup()
		stops := 0
		s := NewSpring(map[string]float64{"a": 0}, g).To(map[string]any{"a": 5}).
			OnStop(func(any) { stops++ }).
			Awake()
		assert.Equal(t, 1, g.Len())

		for i := 0; i < 1000 && g.Update(17, false); i++ {
		}
		assert.Equal(t, 0, g.Len())
		assert.False(t, s.IsAwake())
		assert.Equal(t, 0, stops)

		s.Awake()
		s.Stop()
		assert.Equal(t, 0, g.Len())
		assert.Equal(t, 1, stops)
	})

	t.Run("freezes with a zero timescale", func(t *testing.T) {
		o := map[string]float64{"a": 0}
		s := NewSpring(o, nil).To(map[string]any{"a": 500}).Timescale(0).Awake()

		assert.True(t, s.Update(17, false))
		assert.Equal(t, 0.0, o["a"])
	})
}
