// File: pool/freelist.go
// Author: momentics <momentics@gmail.com>
//
// Bounded single-owner free list for object reuse on hot paths where
// sync.Pool's synchronization would be wasted. The owner of the list is
// the owner of every object on it.

package pool

// FreeList recycles up to a fixed number of objects LIFO. Get falls
// back to the creator function when the list is empty; Put drops the
// object when the list is full.
type FreeList[T any] struct {
	items []T
	newFn func() T
}

// NewFreeList creates a free list retaining at most capacity objects.
func NewFreeList[T any](capacity int, newFn func() T) *FreeList[T] {
	return &FreeList[T]{
		items: make([]T, 0, capacity),
		newFn: newFn,
	}
}

// Get returns a recycled object, or a freshly created one when none is
// available.
func (f *FreeList[T]) Get() T {
	if n := len(f.items); n > 0 {
		v := f.items[n-1]
		var zero T
		f.items[n-1] = zero
		f.items = f.items[:n-1]
		return v
	}
	return f.newFn()
}

// Put offers v back for reuse. Dropped silently when the list is full.
func (f *FreeList[T]) Put(v T) {
	if len(f.items) < cap(f.items) {
		f.items = append(f.items, v)
	}
}

// Len returns the number of objects currently held.
func (f *FreeList[T]) Len() int {
	return len(f.items)
}
