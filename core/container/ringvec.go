// File: core/container/ringvec.go
// Author: momentics <momentics@gmail.com>
//
// RingVec: fixed-size circular history with overwrite-on-full
// semantics. Single-owner, no synchronization; for cross-goroutine
// rings use a lock-free structure instead.

package container

// RingVec is a fixed-capacity circular container. Pushing past capacity
// overwrites the oldest item. Never resized after construction.
type RingVec[T comparable] struct {
	slots []T
	// Logical cursors; the window [start, end) maps onto slots modulo
	// capacity. end also counts total pushes while it stays below cap.
	start int
	end   int
}

// NewRingVec creates a ring holding at most n items. n must be positive.
func NewRingVec[T comparable](n int) *RingVec[T] {
	if n <= 0 {
		panic("streambuf: ring capacity must be positive")
	}
	return &RingVec[T]{slots: make([]T, n)}
}

// Push inserts v at the logical end, evicting the oldest item once the
// ring is full.
func (r *RingVec[T]) Push(v T) {
	r.slots[r.end%len(r.slots)] = v
	r.end++
	if r.end-r.start > len(r.slots) {
		r.start++
	}
}

// Get addresses retained items oldest-first: idx 0 is the oldest item
// still held. The second result is false when idx is outside the
// current logical length.
func (r *RingVec[T]) Get(idx int) (T, bool) {
	var zero T
	if idx < 0 || idx >= r.Len() {
		return zero, false
	}
	return r.slots[(r.start+idx)%len(r.slots)], true
}

// Contains scans every slot that has ever been written. Once the ring
// has wrapped this is exactly the logical window; before the first wrap
// it likewise coincides with the window since no written slot is ever
// cleared. Kept as a physical-slot scan on purpose.
func (r *RingVec[T]) Contains(v T) bool {
	written := r.end
	if written > len(r.slots) {
		written = len(r.slots)
	}
	for i := 0; i < written; i++ {
		if r.slots[i] == v {
			return true
		}
	}
	return false
}

// Len returns the number of items currently retained.
func (r *RingVec[T]) Len() int {
	return r.end - r.start
}

// Cap returns the fixed capacity.
func (r *RingVec[T]) Cap() int {
	return len(r.slots)
}
