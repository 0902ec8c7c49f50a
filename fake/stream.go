// File: fake/stream.go
// Author: momentics <momentics@gmail.com>
//
// Fake stream endpoints for testing and development. Behavior is
// scripted call by call: byte-acceptance limits, injected errors,
// exact recording of everything accepted. Single-owner like the real
// contracts; no locking.

package fake

import "github.com/momentics/streambuf/api"

type sinkStep struct {
	limit int // max bytes accepted this call; -1 means unlimited
	err   error
}

// Sink is a scripted api.Sink. Calls consume scripted steps in order;
// once the script runs out every call accepts everything.
type Sink struct {
	steps    []sinkStep
	accepted []byte
	calls    int
}

// NewSink creates a fake sink that accepts all writes until scripted
// otherwise.
func NewSink() *Sink {
	return &Sink{}
}

// ScriptAccept makes the next unscripted call accept at most n bytes.
// A short acceptance returns api.ErrWouldBlock alongside the count.
func (s *Sink) ScriptAccept(n int) *Sink {
	s.steps = append(s.steps, sinkStep{limit: n})
	return s
}

// ScriptBlock makes the next unscripted call accept nothing and report
// a would-block condition.
func (s *Sink) ScriptBlock() *Sink {
	return s.ScriptAccept(0)
}

// ScriptError makes the next unscripted call fail with err before
// accepting any bytes.
func (s *Sink) ScriptError(err error) *Sink {
	s.steps = append(s.steps, sinkStep{err: err})
	return s
}

// Write implements api.Sink.
func (s *Sink) Write(p []byte) (int, error) {
	s.calls++
	if len(s.steps) == 0 {
		s.accepted = append(s.accepted, p...)
		return len(p), nil
	}
	st := s.steps[0]
	s.steps = s.steps[1:]
	if st.err != nil {
		return 0, st.err
	}
	n := len(p)
	if st.limit >= 0 && st.limit < n {
		n = st.limit
	}
	s.accepted = append(s.accepted, p[:n]...)
	if n < len(p) {
		return n, api.ErrWouldBlock
	}
	return n, nil
}

// Accepted returns every byte the sink has taken, in arrival order.
func (s *Sink) Accepted() []byte {
	return s.accepted
}

// Calls returns the number of Write calls observed.
func (s *Sink) Calls() int {
	return s.calls
}

// Source is a scripted api.Source: each Read serves from the next
// queued chunk. An exhausted source reads zero bytes, which the
// contract defines as end of stream, unless a final error is set.
type Source struct {
	chunks [][]byte
	err    error
}

// NewSource creates a fake source serving the given chunks in order.
func NewSource(chunks ...[]byte) *Source {
	owned := make([][]byte, len(chunks))
	for i, c := range chunks {
		owned[i] = append([]byte(nil), c...)
	}
	return &Source{chunks: owned}
}

// FailWith makes reads after exhaustion return err instead of the
// zero-byte end-of-stream signal.
func (s *Source) FailWith(err error) *Source {
	s.err = err
	return s
}

// Read implements api.Source.
func (s *Source) Read(p []byte) (int, error) {
	if len(s.chunks) == 0 {
		return 0, s.err
	}
	c := s.chunks[0]
	n := copy(p, c)
	if n < len(c) {
		s.chunks[0] = c[n:]
	} else {
		s.chunks = s.chunks[1:]
	}
	return n, nil
}
