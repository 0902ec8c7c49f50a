// File: api/stream.go
// Author: momentics <momentics@gmail.com>
//
// Non-blocking byte stream contracts consumed by the buffering layer.
// Both contracts are single attempts: an implementation must never park
// the calling goroutine waiting for readiness.

package api

import "time"

// Sink is a non-blocking byte sink. A call transfers as many bytes of p
// as the underlying transport will currently accept and returns the
// count. A short write together with a would-block error is legal and
// expected; see Classify for how such errors are recognized.
//
// net.Conn in deadline-driven mode satisfies Sink.
type Sink interface {
	Write(p []byte) (int, error)
}

// Source is a non-blocking byte source. A zero-byte read with a nil
// error signals end of stream.
type Source interface {
	Read(p []byte) (int, error)
}

// BacklogStats is a point-in-time snapshot of a write buffer's backlog.
type BacklogStats struct {
	// Buffered is the total number of retained, not yet transmitted bytes.
	Buffered int
	// Segments is the number of backlog segments currently queued.
	Segments int
	// Idle is the time elapsed since the last successful transport write.
	Idle time.Duration
}
