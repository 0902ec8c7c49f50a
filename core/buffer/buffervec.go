// File: core/buffer/buffervec.go
// Author: momentics <momentics@gmail.com>
//
// BufferVec: fixed-capacity byte region split by a single cursor into a
// filled, readable prefix and an unfilled, writable suffix. Single-owner,
// no internal synchronization; all higher buffering primitives compose
// from it.

package buffer

import (
	"bytes"
	"errors"
	"io"

	"github.com/momentics/streambuf/api"
)

// BufferVec owns a contiguous byte region of fixed capacity. The filled
// prefix [0, size) is readable, the suffix [size, cap) is writable.
// Invariant: 0 <= size <= cap.
type BufferVec struct {
	raw  []byte
	size int
}

// NewBufferVec allocates a zeroed region of capacity bytes with size 0.
func NewBufferVec(capacity int) *BufferVec {
	return &BufferVec{raw: make([]byte, capacity)}
}

// BufferVecFromSlice constructs a pre-filled buffer holding a copy of p.
// The capacity is clamped up so the whole of p always fits.
func BufferVecFromSlice(p []byte, capacity int) *BufferVec {
	if capacity < len(p) {
		capacity = len(p)
	}
	b := NewBufferVec(capacity)
	b.CopyFrom(p)
	return b
}

// BufferVecFromBytes constructs a pre-filled buffer taking ownership of
// raw; the caller must not use raw afterwards. The capacity is clamped
// up to at least len(raw).
func BufferVecFromBytes(raw []byte, capacity int) *BufferVec {
	size := len(raw)
	if capacity < size {
		capacity = size
	}
	if capacity > len(raw) {
		raw = append(raw, make([]byte, capacity-len(raw))...)
	}
	return &BufferVec{raw: raw, size: size}
}

// MergeBufferVecs concatenates the filled contents of list into a single
// buffer whose capacity is the sum of the source capacities. The sources
// are cleared.
func MergeBufferVecs(list []*BufferVec) *BufferVec {
	total := 0
	for _, b := range list {
		total += b.Cap()
	}
	out := NewBufferVec(total)
	for _, b := range list {
		out.CopyFrom(b.Readable())
		b.Clear()
	}
	return out
}

// Readable returns the filled prefix. The view is invalidated by any
// mutating call.
func (b *BufferVec) Readable() []byte {
	return b.raw[:b.size]
}

// ReadableN returns the first n filled bytes, or ErrInsufficientData if
// fewer than n bytes are filled.
func (b *BufferVec) ReadableN(n int) ([]byte, error) {
	if b.size < n {
		return nil, api.ErrInsufficientData
	}
	return b.raw[:n], nil
}

// Writable returns the unfilled suffix for an external writer to fill
// directly. Bytes written there are not part of the buffer until
// committed with Advance.
func (b *BufferVec) Writable() []byte {
	return b.raw[b.size:]
}

// Advance commits n bytes previously written into the Writable region.
// n must not exceed the remaining unfilled space.
func (b *BufferVec) Advance(n int) {
	b.size += n
}

// RotateLeft discards the first n filled bytes and shifts the remainder
// to offset 0. Valid for 0 <= n <= Len(); n == Len() empties the buffer.
func (b *BufferVec) RotateLeft(n int) {
	copy(b.raw, b.raw[n:b.size])
	b.size -= n
}

// Clear drops all filled bytes without touching the storage.
func (b *BufferVec) Clear() {
	b.size = 0
}

// CopyFrom copies as many leading bytes of p as fit into the unfilled
// region and returns the count. A short copy is not an error.
func (b *BufferVec) CopyFrom(p []byte) int {
	n := copy(b.raw[b.size:], p)
	b.size += n
	return n
}

// MoveTo transfers as much of the filled content as fits into dst and
// clears the receiver.
func (b *BufferVec) MoveTo(dst *BufferVec) {
	dst.CopyFrom(b.Readable())
	b.Clear()
}

// FillFrom performs one read from src into the unfilled region and
// commits whatever arrived. A zero-byte result is an unexpected end of
// stream.
func (b *BufferVec) FillFrom(src api.Source) (int, error) {
	n, err := src.Read(b.Writable())
	if n > 0 {
		b.Advance(n)
		return n, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return 0, io.ErrUnexpectedEOF
	}
	return 0, err
}

// FillAllFrom reads from src until the buffer is full. A zero-byte read
// at any point fails as an unexpected end of stream.
func (b *BufferVec) FillAllFrom(src api.Source) error {
	for !b.Full() {
		if _, err := b.FillFrom(src); err != nil {
			return err
		}
	}
	return nil
}

// Detach returns the filled prefix and releases the backing storage.
// The buffer is empty with zero capacity afterwards.
func (b *BufferVec) Detach() []byte {
	out := b.raw[:b.size]
	b.raw = nil
	b.size = 0
	return out
}

// ResizeCap regrows or shrinks the backing storage to n bytes, clamping
// the filled size when shrinking below it.
func (b *BufferVec) ResizeCap(n int) {
	switch {
	case n < len(b.raw):
		b.raw = b.raw[:n]
	case n > len(b.raw):
		b.raw = append(b.raw, make([]byte, n-len(b.raw))...)
	}
	if b.size > len(b.raw) {
		b.size = len(b.raw)
	}
}

// Full reports whether no unfilled space remains.
func (b *BufferVec) Full() bool {
	return b.size == len(b.raw)
}

// Cap returns the fixed capacity of the region.
func (b *BufferVec) Cap() int {
	return len(b.raw)
}

// Len returns the number of filled bytes.
func (b *BufferVec) Len() int {
	return b.size
}

// EndsWith reports whether the filled content ends with needle.
func (b *BufferVec) EndsWith(needle []byte) bool {
	return bytes.HasSuffix(b.Readable(), needle)
}
