// File: api/errors.go
// Author: momentics <momentics@gmail.com>
//
// Error taxonomy for non-blocking stream I/O.
//
// Every transport failure collapses onto a closed three-way outcome:
//
//   - ErrWouldBlock: transient, no data lost, retry after readiness.
//   - ErrStreamClosed: the stream is terminally closed.
//   - anything else: opaque and terminal, passed through unchanged.
//
// Classify is the single point of truth for the retry/no-retry decision
// used by the buffering layer.

package api

import (
	"errors"
	"io"
	"net"
	"os"
)

// Sentinel errors produced by the library.
var (
	// ErrWouldBlock means the transport cannot make progress right now.
	// Expected control flow, not a failure: wait for readiness, retry.
	ErrWouldBlock = errors.New("streambuf: would block")

	// ErrStreamClosed means the stream reached a terminal end
	// (EOF, broken pipe, aborted connection).
	ErrStreamClosed = errors.New("streambuf: stream closed")

	// ErrInsufficientData means a read asked for more bytes than the
	// buffer currently holds.
	ErrInsufficientData = errors.New("streambuf: insufficient data")
)

// Classify maps an arbitrary transport error onto the taxonomy above.
// Would-block conditions become ErrWouldBlock, terminal stream ends
// become ErrStreamClosed, everything else is returned unchanged.
// A nil error stays nil.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case IsTransient(err):
		return ErrWouldBlock
	case isClosed(err):
		return ErrStreamClosed
	default:
		return err
	}
}

// IsTransient reports whether err is a would-block condition: the
// operation made no progress but may succeed once the transport is
// ready again.
func IsTransient(err error) bool {
	if errors.Is(err, ErrWouldBlock) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errnoWouldBlock(err)
}

// IsNotConnected reports whether err indicates a transport that is not
// connected yet. The raw write path treats this like a would-block
// condition rather than a failure.
func IsNotConnected(err error) bool {
	return errnoNotConnected(err)
}

func isClosed(err error) bool {
	if errors.Is(err, ErrStreamClosed) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, net.ErrClosed) {
		return true
	}
	return errnoClosed(err)
}
