// File: core/buffer/writebuffer_test.go
// Author: momentics <momentics@gmail.com>

package buffer_test

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/momentics/streambuf/api"
	"github.com/momentics/streambuf/core/buffer"
	"github.com/momentics/streambuf/fake"
)

func TestMustWriteAllAccepted(t *testing.T) {
	wb := buffer.NewWriteBuffer(8)
	sink := fake.NewSink()

	for _, chunk := range [][]byte{{1, 2, 3}, {4}, {5, 6, 7, 8, 9}} {
		if err := wb.MustWrite(sink, chunk); err != nil {
			t.Fatalf("MustWrite: %v", err)
		}
	}
	if !bytes.Equal(sink.Accepted(), []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}) {
		t.Errorf("sink got %v", sink.Accepted())
	}
	if wb.Buffered() != 0 {
		t.Errorf("Buffered = %d, want 0", wb.Buffered())
	}
}

// Capacity 4, sink takes exactly 2 bytes and then blocks, caller hands
// over 6 bytes: the 2 go out, the 4 stay queued, the call succeeds.
func TestMustWritePartialThenBlock(t *testing.T) {
	wb := buffer.NewWriteBuffer(4)
	sink := fake.NewSink().ScriptAccept(2)

	if err := wb.MustWrite(sink, []byte{1, 2, 3, 4, 5, 6}); err != nil {
		t.Fatalf("MustWrite: %v", err)
	}
	if !bytes.Equal(sink.Accepted(), []byte{1, 2}) {
		t.Errorf("sink got %v, want [1 2]", sink.Accepted())
	}
	if wb.Buffered() != 4 {
		t.Errorf("Buffered = %d, want 4", wb.Buffered())
	}
	if wb.IdleDuration() > time.Second {
		t.Errorf("idle %v not refreshed by partial write", wb.IdleDuration())
	}

	if err := wb.FlushBuffer(sink); err != nil {
		t.Fatalf("FlushBuffer: %v", err)
	}
	if !bytes.Equal(sink.Accepted(), []byte{1, 2, 3, 4, 5, 6}) {
		t.Errorf("after flush sink got %v", sink.Accepted())
	}
	if wb.Buffered() != 0 {
		t.Errorf("Buffered = %d after flush, want 0", wb.Buffered())
	}
}

func TestMustWriteBlockedRetainsAll(t *testing.T) {
	wb := buffer.NewWriteBuffer(4)
	sink := fake.NewSink().ScriptBlock()

	if err := wb.MustWrite(sink, []byte{1, 2, 3, 4, 5, 6}); err != nil {
		t.Fatalf("MustWrite: %v", err)
	}
	if len(sink.Accepted()) != 0 {
		t.Errorf("sink got %v, want nothing", sink.Accepted())
	}
	if wb.Buffered() != 6 {
		t.Errorf("Buffered = %d, want 6", wb.Buffered())
	}
	if got := wb.Stats().Segments; got != 1 {
		t.Errorf("oversized remainder split across %d segments", got)
	}

	if err := wb.FlushBuffer(sink); err != nil {
		t.Fatalf("FlushBuffer: %v", err)
	}
	if !bytes.Equal(sink.Accepted(), []byte{1, 2, 3, 4, 5, 6}) {
		t.Errorf("after flush sink got %v", sink.Accepted())
	}
}

func TestOrderPreservedAcrossRetries(t *testing.T) {
	wb := buffer.NewWriteBuffer(4)
	sink := fake.NewSink().ScriptBlock().ScriptBlock().ScriptAccept(3).ScriptBlock()

	if err := wb.MustWrite(sink, []byte{1, 2, 3}); err != nil {
		t.Fatalf("MustWrite 1: %v", err)
	}
	if err := wb.MustWrite(sink, []byte{4, 5, 6, 7}); err != nil {
		t.Fatalf("MustWrite 2: %v", err)
	}
	if err := wb.FlushBuffer(sink); !errors.Is(err, api.ErrWouldBlock) {
		t.Fatalf("partial flush err = %v, want ErrWouldBlock", err)
	}
	if err := wb.FlushBuffer(sink); err != nil {
		t.Fatalf("final flush: %v", err)
	}
	if !bytes.Equal(sink.Accepted(), []byte{1, 2, 3, 4, 5, 6, 7}) {
		t.Errorf("sink got %v", sink.Accepted())
	}
	if wb.Buffered() != 0 {
		t.Errorf("Buffered = %d, want 0", wb.Buffered())
	}
}

func TestMustWriteFatalNotBuffered(t *testing.T) {
	boom := errors.New("device on fire")
	wb := buffer.NewWriteBuffer(4)
	sink := fake.NewSink().ScriptError(boom)

	err := wb.MustWrite(sink, []byte{1, 2, 3})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the sink error", err)
	}
	if wb.Buffered() != 0 {
		t.Errorf("fatal path buffered %d bytes", wb.Buffered())
	}
}

func TestMustWriteClosedSink(t *testing.T) {
	wb := buffer.NewWriteBuffer(4)
	sink := fake.NewSink().ScriptError(io.ErrClosedPipe)

	if err := wb.MustWrite(sink, []byte{1}); !errors.Is(err, api.ErrStreamClosed) {
		t.Errorf("err = %v, want ErrStreamClosed", err)
	}
}

func TestMustWriteFlushErrorComesFirst(t *testing.T) {
	boom := errors.New("reset by peer")
	wb := buffer.NewWriteBuffer(4)
	sink := fake.NewSink().ScriptBlock()
	if err := wb.MustWrite(sink, []byte{1, 2}); err != nil {
		t.Fatalf("seed backlog: %v", err)
	}

	sink2 := fake.NewSink().ScriptError(boom)
	err := wb.MustWrite(sink2, []byte{3, 4})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want flush error", err)
	}
	// The failed call must not have touched the new data.
	if wb.Buffered() != 2 {
		t.Errorf("Buffered = %d, want the 2 pre-existing bytes", wb.Buffered())
	}
}

func TestWriteSignalsBackpressure(t *testing.T) {
	wb := buffer.NewWriteBuffer(4)
	sink := fake.NewSink().ScriptBlock()

	if err := wb.Write(sink, []byte{1, 2, 3}); !errors.Is(err, api.ErrWouldBlock) {
		t.Fatalf("err = %v, want ErrWouldBlock", err)
	}
	// The input is retained, not dropped.
	if wb.Buffered() != 3 {
		t.Errorf("Buffered = %d, want 3", wb.Buffered())
	}

	if err := wb.Write(sink, []byte{4, 5}); err != nil {
		t.Fatalf("unblocked Write: %v", err)
	}
	if !bytes.Equal(sink.Accepted(), []byte{1, 2, 3, 4, 5}) {
		t.Errorf("sink got %v", sink.Accepted())
	}
	if wb.Buffered() != 0 {
		t.Errorf("Buffered = %d, want 0", wb.Buffered())
	}
}

func TestWritePartialSignalsBackpressure(t *testing.T) {
	wb := buffer.NewWriteBuffer(4)
	sink := fake.NewSink().ScriptAccept(2)

	if err := wb.Write(sink, []byte{1, 2, 3, 4, 5, 6}); !errors.Is(err, api.ErrWouldBlock) {
		t.Fatalf("err = %v, want ErrWouldBlock", err)
	}
	if wb.Buffered() != 4 {
		t.Errorf("Buffered = %d, want 4", wb.Buffered())
	}
	if !bytes.Equal(sink.Accepted(), []byte{1, 2}) {
		t.Errorf("sink got %v", sink.Accepted())
	}
}

func TestTailTopUp(t *testing.T) {
	wb := buffer.NewWriteBuffer(8)
	sink := fake.NewSink().ScriptBlock().ScriptBlock()

	if err := wb.MustWrite(sink, []byte{1, 2}); err != nil {
		t.Fatalf("MustWrite 1: %v", err)
	}
	if err := wb.MustWrite(sink, []byte{3, 4, 5}); err != nil {
		t.Fatalf("MustWrite 2: %v", err)
	}
	st := wb.Stats()
	if st.Buffered != 5 || st.Segments != 1 {
		t.Errorf("stats = %+v, want 5 bytes in 1 segment", st)
	}
}

func TestIdleDurationResets(t *testing.T) {
	wb := buffer.NewWriteBuffer(8)
	time.Sleep(20 * time.Millisecond)
	if wb.IdleDuration() < 20*time.Millisecond {
		t.Fatalf("idle %v, want >= 20ms", wb.IdleDuration())
	}
	if err := wb.MustWrite(fake.NewSink(), []byte{1}); err != nil {
		t.Fatalf("MustWrite: %v", err)
	}
	if wb.IdleDuration() >= 20*time.Millisecond {
		t.Errorf("idle %v not reset by successful write", wb.IdleDuration())
	}
}

func TestFlushEmptyBacklog(t *testing.T) {
	wb := buffer.NewWriteBuffer(8)
	sink := fake.NewSink()
	if err := wb.FlushBuffer(sink); err != nil {
		t.Fatalf("FlushBuffer: %v", err)
	}
	if sink.Calls() != 0 {
		t.Errorf("flushing an empty backlog hit the sink %d times", sink.Calls())
	}
}

type discardSink struct{}

func (discardSink) Write(p []byte) (int, error) { return len(p), nil }

func BenchmarkMustWriteDrain(b *testing.B) {
	wb := buffer.NewWriteBuffer(64 * 1024)
	sink := discardSink{}
	payload := bytes.Repeat([]byte{0xAB}, 1024)
	b.SetBytes(int64(len(payload)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := wb.MustWrite(sink, payload); err != nil {
			b.Fatal(err)
		}
	}
}
