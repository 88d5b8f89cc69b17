package tween

import "sync/atomic"

var lastID uint64

// NextID returns a process-wide unique id. Ids are never reused.
func NextID() uint64 {
	return atomic.AddUint64(&lastID, 1)
}

// An Updateable is anything a Group can tick: tweens, springs and other groups.
type Updateable interface {
	// ID returns the key used by a Group to track this updateable.
	ID() uint64

	// Update advances the updateable by deltaTime milliseconds. preserve prevents
	// the removal of finished updateables from their group. Returns false once
	// the updateable is no longer active.
	Update(deltaTime float64, preserve bool) bool
}
