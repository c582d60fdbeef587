/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package tlsbio

import (
	"bytes"
	"testing"

	"github.com/nabbar/tlsbio/membuf"
	"github.com/nabbar/tlsbio/tlsbio/biostate"
)

func newTestPipe(t *testing.T, maxCap int) *Pipe {
	t.Helper()

	p, err := New(membuf.NewSimpleAllocator(), maxCap, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

// Invariant: sequential writes with no intervening extraction coalesce.
func TestInvariant_CoalescedWrites(t *testing.T) {
	p := newTestPipe(t, 0)

	parts := [][]byte{{1}, {2, 3}, {4, 5}}
	var want []byte
	for _, part := range parts {
		want = append(want, part...)
		n, sig := p.cbWrite(part)
		if n != len(part) || sig != biostate.None {
			t.Fatalf("cbWrite(%v) = (%d, %v)", part, n, sig)
		}
	}

	out, ok := p.OutboundCiphertext()
	if !ok {
		t.Fatal("expected an outbound buffer")
	}
	if got := out.GetBytes(out.ReaderIndex(), out.ReadableBytes()); !bytes.Equal(got, want) {
		t.Fatalf("extracted = %v, want %v", got, want)
	}
}

// Invariant: a second extraction right after a successful one is empty.
func TestInvariant_SecondExtractionIsEmpty(t *testing.T) {
	p := newTestPipe(t, 0)
	p.cbWrite([]byte{1, 2, 3})

	if _, ok := p.OutboundCiphertext(); !ok {
		t.Fatal("expected first extraction to succeed")
	}
	if _, ok := p.OutboundCiphertext(); ok {
		t.Fatal("expected second extraction to report none")
	}
}

// Invariant: reads of arbitrary sizes concatenate back to the injected buffer.
func TestInvariant_DrainReassembles(t *testing.T) {
	p := newTestPipe(t, 0)
	injected := []byte{1, 2, 3, 4, 5}
	p.ReceiveFromNetwork(injected)

	var got []byte
	for _, size := range []int{2, 1, 2} {
		dst := make([]byte, size)
		n, sig := p.cbRead(dst)
		if n != size || sig != biostate.None {
			t.Fatalf("cbRead(size=%d) = (%d, %v)", size, n, sig)
		}
		got = append(got, dst[:n]...)
	}

	if !bytes.Equal(got, injected) {
		t.Fatalf("reassembled = %v, want %v", got, injected)
	}
}

// Invariant: read on an empty/absent inbound buffer would-blocks.
func TestInvariant_ReadOnEmptyInboundWouldBlock(t *testing.T) {
	p := newTestPipe(t, 0)

	n, sig := p.cbRead(make([]byte, 4))
	if n != -1 || sig != biostate.WouldBlockOnRead {
		t.Fatalf("cbRead on empty inbound = (%d, %+v), want (-1, %+v)", n, sig, biostate.WouldBlockOnRead)
	}
}

// Invariant: a zero-length read is a pure no-op, even with data pending.
func TestInvariant_ZeroLengthReadIsNoop(t *testing.T) {
	p := newTestPipe(t, 0)
	p.ReceiveFromNetwork([]byte{1, 2, 3})

	n, sig := p.cbRead(nil)
	if n != 0 || sig != biostate.None {
		t.Fatalf("cbRead(nil) = (%d, %v), want (0, none)", n, sig)
	}
	if p.in.ReadableBytes() != 3 {
		t.Fatal("zero-length read must not consume any bytes")
	}
}

// Invariant: a zero-length write is a pure no-op.
func TestInvariant_ZeroLengthWriteIsNoop(t *testing.T) {
	p := newTestPipe(t, 0)

	n, sig := p.cbWrite(nil)
	if n != 0 || sig != biostate.None {
		t.Fatalf("cbWrite(nil) = (%d, %v), want (0, none)", n, sig)
	}
	if p.out != nil {
		t.Fatal("zero-length write must not allocate an outbound buffer")
	}
}

// Invariant: after Close, callbacks fail fatally.
func TestInvariant_ClosedCallbacksAreFatal(t *testing.T) {
	p := newTestPipe(t, 0)
	_ = p.Close()

	if n, sig := p.cbWrite([]byte{1}); n != -1 || sig.Retry {
		t.Fatalf("cbWrite after close = (%d, %+v)", n, sig)
	}
	if n, sig := p.cbRead(make([]byte, 1)); n != -1 || sig.Retry {
		t.Fatalf("cbRead after close = (%d, %+v)", n, sig)
	}
}

// Invariant: gets always refuses.
func TestInvariant_GetsAlwaysRefused(t *testing.T) {
	p := newTestPipe(t, 0)
	n, sig := p.cbGets()
	if n != -2 || sig.Retry {
		t.Fatalf("cbGets = (%d, %+v), want (-2, should-retry false)", n, sig)
	}
}

// Invariant: ctrl SET_CLOSE/GET_CLOSE round trips.
func TestInvariant_CtrlCloseFlagRoundTrip(t *testing.T) {
	p := newTestPipe(t, 0)

	for _, x := range []int64{0, 1} {
		if got := p.cbCtrl(biostate.CtrlSetClose, x); got != 1 {
			t.Fatalf("cbCtrl(SET_CLOSE, %d) = %d, want 1", x, got)
		}
		if got := p.cbCtrl(biostate.CtrlGetClose, 0); got != x {
			t.Fatalf("cbCtrl(GET_CLOSE) = %d, want %d", got, x)
		}
	}
}

func TestCtrl_UnrecognizedCommandReturnsZero(t *testing.T) {
	p := newTestPipe(t, 0)
	if got := p.cbCtrl(biostate.Ctrl(999), 0); got != 0 {
		t.Fatalf("cbCtrl(unrecognized) = %d, want 0", got)
	}
}

func TestCtrl_FlushReturnsOne(t *testing.T) {
	p := newTestPipe(t, 0)
	if got := p.cbCtrl(biostate.CtrlFlush, 0); got != 1 {
		t.Fatalf("cbCtrl(FLUSH) = %d, want 1", got)
	}
}

// Invariant: capacity trim happens after extraction, not mid-write.
func TestInvariant_CapacityTrimAfterExtraction(t *testing.T) {
	p := newTestPipe(t, 64)

	big := bytes.Repeat([]byte{0xAB}, 1024)
	n, _ := p.cbWrite(big)
	if n != len(big) {
		t.Fatalf("cbWrite(1024 bytes) = %d, want %d", n, len(big))
	}

	extracted, ok := p.OutboundCiphertext()
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if extracted.Capacity() < 1024 {
		t.Fatalf("extracted capacity = %d, want >= 1024", extracted.Capacity())
	}

	p.cbWrite([]byte{1})
	if got := outboundCapacity(p); got != 64 {
		t.Fatalf("outbound capacity after trim = %d, want 64", got)
	}
}

// maxPreservedCapacity of 0 ("preserve nothing") and Unbounded are distinct
// sentinels: 0 always trims the replacement buffer to zero capacity, while
// Unbounded never trims at all.
func TestInvariant_ZeroCapacityPreservesNothing(t *testing.T) {
	p := newTestPipe(t, 0)

	p.cbWrite([]byte{1, 2, 3, 4, 5})
	if _, ok := p.OutboundCiphertext(); !ok {
		t.Fatal("expected extraction to succeed")
	}

	if got := outboundCapacity(p); got != 0 {
		t.Fatalf("outbound capacity after preserve-nothing trim = %d, want 0", got)
	}
}

func TestInvariant_UnboundedNeverTrims(t *testing.T) {
	p := newTestPipe(t, Unbounded)

	big := bytes.Repeat([]byte{0xAB}, 1024)
	p.cbWrite(big)
	extracted, ok := p.OutboundCiphertext()
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	_ = extracted.Close()

	if got := outboundCapacity(p); got < 1024 {
		t.Fatalf("outbound capacity after unbounded extraction = %d, want >= 1024 (no trim)", got)
	}
}

// Invariant: copy-on-write on hold, reuse without hold. Uses Unbounded so
// the capacity governor never substitutes its own fresh-allocation path,
// isolating the COW behavior under test.
func TestInvariant_CopyOnWrite(t *testing.T) {
	t.Run("hold forces new backing", func(t *testing.T) {
		p := newTestPipe(t, Unbounded)
		p.cbWrite([]byte{1, 2, 3, 4, 5})

		b1, ok := p.OutboundCiphertext()
		if !ok {
			t.Fatal("expected first extraction")
		}
		addr1 := b1.BackingAddress()

		p.cbWrite([]byte{1, 2, 3, 4, 5})
		b2, ok := p.OutboundCiphertext()
		if !ok {
			t.Fatal("expected second extraction")
		}

		if b2.BackingAddress() == addr1 {
			t.Fatal("holding the first extracted buffer must force the second write to detach")
		}
	})

	t.Run("discard reuses backing", func(t *testing.T) {
		p := newTestPipe(t, Unbounded)
		p.cbWrite([]byte{1, 2, 3, 4, 5})

		b1, ok := p.OutboundCiphertext()
		if !ok {
			t.Fatal("expected first extraction")
		}
		addr1 := b1.BackingAddress()
		if err := b1.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}

		p.cbWrite([]byte{1, 2, 3, 4, 5})
		b2, ok := p.OutboundCiphertext()
		if !ok {
			t.Fatal("expected second extraction")
		}

		if b2.BackingAddress() != addr1 {
			t.Fatal("discarding the first extracted buffer should let the second write reuse its backing")
		}
	})
}

// RetainedBIO refcounting and the breakable cycle.
func TestProperty_RetainedBIORefcounting(t *testing.T) {
	p := newTestPipe(t, 0)

	h1, err := p.RetainedBIO()
	if err != nil {
		t.Fatalf("RetainedBIO: %v", err)
	}
	if got := retainedBIORefs(p); got != 1 {
		t.Fatalf("refs after first RetainedBIO = %d, want 1", got)
	}

	h2, err := p.RetainedBIO()
	if err != nil {
		t.Fatalf("RetainedBIO: %v", err)
	}
	if got := retainedBIORefs(p); got != 2 {
		t.Fatalf("refs after second RetainedBIO = %d, want 2", got)
	}

	h1.Release()
	if got := retainedBIORefs(p); got != 1 {
		t.Fatalf("refs after one release = %d, want 1", got)
	}

	h2.Release()
	if got := retainedBIORefs(p); got != 0 {
		t.Fatalf("refs after both released = %d, want 0", got)
	}
}

func TestProperty_RetainedBIOAfterCloseFails(t *testing.T) {
	p := newTestPipe(t, 0)
	_ = p.Close()

	if _, err := p.RetainedBIO(); err == nil {
		t.Fatal("expected RetainedBIO to fail after Close")
	}
}

// Repeated ReceiveFromNetwork before draining appends.
func TestProperty_ReceiveFromNetworkAppends(t *testing.T) {
	p := newTestPipe(t, 0)
	p.ReceiveFromNetwork([]byte{1, 2})
	p.ReceiveFromNetwork([]byte{3, 4, 5})

	dst := make([]byte, 5)
	n, sig := p.cbRead(dst)
	if n != 5 || sig != biostate.None {
		t.Fatalf("cbRead = (%d, %v)", n, sig)
	}
	if !bytes.Equal(dst, []byte{1, 2, 3, 4, 5}) {
		t.Fatalf("drained = %v, want [1 2 3 4 5]", dst)
	}
}

// puts never mutates its source string's bytes, and the outbound buffer
// holds an independent copy rather than aliasing the source.
func TestProperty_PutsCopiesSource(t *testing.T) {
	p := newTestPipe(t, 0)
	src := []byte("hello")

	n, sig := p.cbPuts(string(src))
	if n != 5 || sig != biostate.None {
		t.Fatalf("cbPuts = (%d, %v)", n, sig)
	}

	out, ok := p.OutboundCiphertext()
	if !ok {
		t.Fatal("expected an outbound buffer")
	}

	src[0] = 'X' // mutate the caller's source bytes after the call
	if got := out.GetString(0, 5); got != "hello" {
		t.Fatalf("outbound buffer = %q, want %q (cbPuts must have copied its source)", got, "hello")
	}
}
