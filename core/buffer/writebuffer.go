// File: core/buffer/writebuffer.go
// Author: momentics <momentics@gmail.com>
//
// WriteBuffer: best-effort non-blocking delivery of byte sequences to a
// transport sink, retaining whatever the sink could not immediately
// accept. The caller is never blocked; retries are caller-driven,
// typically from a readiness notification.
//
// The backlog is a FIFO of fixed-capacity segments, head = oldest unsent
// bytes. Drained segments recycle through a free list. Single-owner, no
// internal synchronization; one instance per connection.

package buffer

import (
	"errors"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/streambuf/api"
	"github.com/momentics/streambuf/pool"
)

// segmentFreeListCap bounds how many drained segments are kept around
// for reuse per WriteBuffer.
const segmentFreeListCap = 8

// WriteBuffer queues outbound bytes that a non-blocking sink was not
// ready to accept. Every byte handed to MustWrite or Write is either
// transmitted or retained in the backlog, in original order, with no
// loss or duplication across arbitrarily many partial-write cycles.
//
// Backlog growth is unbounded; callers enforce their own ceiling by
// inspecting Buffered.
type WriteBuffer struct {
	cap      int
	backlog  *queue.Queue // of *BufferVec, head = oldest
	idleFrom time.Time
	segments *pool.FreeList[*BufferVec]
}

// NewWriteBuffer creates a write buffer with the given default segment
// capacity. One empty segment is pre-allocated.
func NewWriteBuffer(capacity int) *WriteBuffer {
	wb := &WriteBuffer{
		cap:      capacity,
		backlog:  queue.New(),
		idleFrom: time.Now(),
	}
	wb.segments = pool.NewFreeList(segmentFreeListCap, func() *BufferVec {
		return NewBufferVec(capacity)
	})
	wb.backlog.Add(NewBufferVec(capacity))
	return wb
}

// Buffered returns the total number of retained bytes across all
// backlog segments.
func (wb *WriteBuffer) Buffered() int {
	total := 0
	for i := 0; i < wb.backlog.Length(); i++ {
		total += wb.backlog.Get(i).(*BufferVec).Len()
	}
	return total
}

// IdleDuration returns the time elapsed since the last successful sink
// write, including partial ones. Purely observational; staleness policy
// belongs to the caller.
func (wb *WriteBuffer) IdleDuration() time.Duration {
	return time.Since(wb.idleFrom)
}

// Stats returns a snapshot of the backlog state.
func (wb *WriteBuffer) Stats() api.BacklogStats {
	return api.BacklogStats{
		Buffered: wb.Buffered(),
		Segments: wb.backlog.Length(),
		Idle:     wb.IdleDuration(),
	}
}

// FlushBuffer attempts to drain the backlog into w, head to tail.
// A fully written segment is dropped and draining continues; a partial
// write consumes the written prefix and stops with api.ErrWouldBlock;
// a sink failure stops with the classified error. Leading empty
// segments are always removed before returning. Returns nil only when
// every segment was fully drained.
func (wb *WriteBuffer) FlushBuffer(w api.Sink) error {
	var result error
	for i := 0; i < wb.backlog.Length(); i++ {
		seg := wb.backlog.Get(i).(*BufferVec)
		n, err := wb.rawWrite(w, seg.Readable())
		if err != nil {
			result = err
			break
		}
		seg.RotateLeft(n)
		if seg.Len() > 0 {
			result = api.ErrWouldBlock
			break
		}
	}
	wb.compact()
	return result
}

// MustWrite delivers data to w, falling back to the backlog for
// anything the sink does not accept. A would-block outcome anywhere is
// treated as zero progress and absorbed: the call still succeeds and
// the unsent bytes are retained. Only terminal sink errors propagate,
// and then nothing of data is buffered.
func (wb *WriteBuffer) MustWrite(w api.Sink, data []byte) error {
	written := 0
	switch err := wb.FlushBuffer(w); {
	case err == nil:
		n, werr := wb.rawWrite(w, data)
		if werr != nil && !errors.Is(werr, api.ErrWouldBlock) {
			return werr
		}
		written = n
	case errors.Is(err, api.ErrWouldBlock):
		// Backlog still standing; data goes behind it.
	default:
		return err
	}
	wb.append(data[written:])
	return nil
}

// Write is MustWrite with backpressure made visible: it returns nil
// only when data went out in full, and api.ErrWouldBlock when any part
// of it had to be retained. Do not resubmit data after a would-block
// result; the bytes are already queued and will go out on the next
// flush.
func (wb *WriteBuffer) Write(w api.Sink, data []byte) error {
	if err := wb.FlushBuffer(w); err != nil {
		if !errors.Is(err, api.ErrWouldBlock) {
			return err
		}
		wb.append(data)
		return api.ErrWouldBlock
	}
	n, err := wb.rawWrite(w, data)
	if err != nil {
		if !errors.Is(err, api.ErrWouldBlock) {
			return err
		}
		wb.append(data)
		return api.ErrWouldBlock
	}
	wb.append(data[n:])
	if n < len(data) {
		return api.ErrWouldBlock
	}
	return nil
}

// rawWrite issues sink writes until data is exhausted or the sink
// stalls. A transient stall after partial progress returns the partial
// count as success; a stall with zero progress returns
// api.ErrWouldBlock. Every successful call refreshes the idle
// timestamp, partial writes included.
func (wb *WriteBuffer) rawWrite(w api.Sink, data []byte) (int, error) {
	written := 0
	for written < len(data) {
		n, err := w.Write(data[written:])
		written += n
		if err != nil {
			if api.IsTransient(err) || api.IsNotConnected(err) {
				if written > 0 {
					break
				}
				return 0, api.ErrWouldBlock
			}
			return written, api.Classify(err)
		}
	}
	wb.idleFrom = time.Now()
	return written, nil
}

// append retains data at the backlog tail, topping up the tail segment
// when it has room and otherwise queueing a fresh segment sized so even
// an oversized remainder fits in one piece.
func (wb *WriteBuffer) append(data []byte) {
	if len(data) == 0 {
		return
	}
	if n := wb.backlog.Length(); n > 0 {
		tail := wb.backlog.Get(n - 1).(*BufferVec)
		if len(tail.Writable()) > len(data) {
			tail.CopyFrom(data)
			return
		}
	}
	seg := wb.newSegment(len(data))
	seg.CopyFrom(data)
	wb.backlog.Add(seg)
}

func (wb *WriteBuffer) newSegment(n int) *BufferVec {
	if n <= wb.cap {
		return wb.segments.Get()
	}
	return NewBufferVec(n)
}

// compact removes drained segments from the head so the queue never
// holds leading empty segments. Segments of the default capacity go
// back to the free list.
func (wb *WriteBuffer) compact() {
	for wb.backlog.Length() > 0 {
		head := wb.backlog.Peek().(*BufferVec)
		if head.Len() != 0 {
			break
		}
		wb.backlog.Remove()
		if head.Cap() == wb.cap {
			wb.segments.Put(head)
		}
	}
}
