// File: core/container/expandvec.go
// Author: momentics <momentics@gmail.com>
//
// ExpandVec: append-only log of immutable chunks with deferred
// flattening. Each push is O(chunk length); the flatten into a
// destination slice reserves the full pending size once.

package container

import "slices"

// ExpandVec accumulates copies of pushed slices as separate chunks and
// tracks the running total length. Invariant: Len() equals the sum of
// all chunk lengths currently held.
type ExpandVec[T any] struct {
	chunks [][]T
	size   int
}

// NewExpandVec creates an empty chunk log.
func NewExpandVec[T any]() *ExpandVec[T] {
	return &ExpandVec[T]{}
}

// Len returns the total number of elements across all chunks.
func (v *ExpandVec[T]) Len() int {
	return v.size
}

// Push appends an owned copy of p as a new chunk.
func (v *ExpandVec[T]) Push(p []T) {
	chunk := make([]T, len(p))
	copy(chunk, p)
	v.chunks = append(v.chunks, chunk)
	v.size += len(p)
}

// Last returns the most recently pushed chunk without removing it.
func (v *ExpandVec[T]) Last() ([]T, bool) {
	if len(v.chunks) == 0 {
		return nil, false
	}
	return v.chunks[len(v.chunks)-1], true
}

// Pop removes and returns the most recently pushed chunk.
func (v *ExpandVec[T]) Pop() ([]T, bool) {
	if len(v.chunks) == 0 {
		return nil, false
	}
	last := v.chunks[len(v.chunks)-1]
	v.chunks = v.chunks[:len(v.chunks)-1]
	v.size -= len(last)
	return last, true
}

// MoveTo flattens every chunk in push order onto dst, growing dst for
// the full pending size up front, and resets the log to empty. Returns
// the extended slice.
func (v *ExpandVec[T]) MoveTo(dst []T) []T {
	dst = slices.Grow(dst, v.size)
	for _, c := range v.chunks {
		dst = append(dst, c...)
	}
	v.chunks = nil
	v.size = 0
	return dst
}
