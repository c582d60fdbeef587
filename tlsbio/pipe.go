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

// Package tlsbio adapts a TLS engine's pluggable BIO-style callback object
// to two host-owned byte buffers: an inbound buffer fed with ciphertext
// read from the network, and an outbound buffer accumulating ciphertext
// to be written to it. See doc.go for the architecture.
package tlsbio

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	liberr "github.com/nabbar/tlsbio/errors"
	"github.com/nabbar/tlsbio/membuf"
	"github.com/nabbar/tlsbio/tlsbio/biostate"
)

// BIO is a retained handle to the vtable instance backing a Pipe. Each
// call to Pipe.RetainedBIO returns one; the caller owns exactly one
// reference and must call Release when done with it.
type BIO interface {
	// Release drops this handle's reference to the underlying vtable
	// instance. The vtable itself is only torn down once every retained
	// handle has been released and the TLS engine has dropped its own
	// reference.
	Release()
}

// newRetainedBIO builds the concrete vtable instance for p and returns a
// first retained handle to it, or up-refs and wraps the existing one if p
// already has one. The default is a pure-Go stand-in with no C
// dependency; biovtable_cgo.go overrides it at init time when built with
// cgo and linked against OpenSSL. Callers must hold p.mu.
var newRetainedBIO = newGoBIO

// Pipe is the shim object: it owns the outbound and inbound buffers, the
// allocator, and the lifecycle flags, and presents the host-facing
// surface plus the vtable adapter's callback targets.
type Pipe struct {
	mu sync.Mutex

	alloc  membuf.Allocator
	maxCap int // Unbounded (-1): never trim. >=0: preserved capacity bound, 0 meaning "preserve nothing"

	out membuf.Buffer
	in  membuf.Buffer

	closed      bool
	shutdownOwn bool // shutdown-flag: release underlying resource on vtable free
	vtable      any  // concrete retained-vtable bookkeeping; type owned by newRetainedBIO's implementation

	log *logrus.Entry
}

// Unbounded is the maxPreservedCapacity sentinel meaning the capacity
// governor never trims the outbound backing storage. A nonnegative value,
// including 0 ("preserve nothing": the backing array is reallocated to
// zero capacity after every extraction), bounds it instead.
const Unbounded = -1

// New constructs a Pipe with both buffers empty, closed=false, and the
// shutdown-flag set to true (the TLS-engine-standard "release on vtable
// free" default). maxPreservedCapacity is either Unbounded or a
// nonnegative preserved-capacity bound; any other negative value is
// clamped to Unbounded. log may be nil, in which case a discarding entry
// is used.
func New(alloc membuf.Allocator, maxPreservedCapacity int, log *logrus.Entry) (*Pipe, liberr.Error) {
	if alloc == nil {
		return nil, ErrorAllocatorNil.Error(nil)
	}
	if maxPreservedCapacity < 0 {
		maxPreservedCapacity = Unbounded
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}

	return &Pipe{
		alloc:       alloc,
		maxCap:      maxPreservedCapacity,
		closed:      false,
		shutdownOwn: true,
		log:         log,
	}, nil
}

// Close is idempotent. It marks the pipe closed and, if a vtable was
// retained, clears its back-reference to this Pipe - the breakable-cycle
// resolution: after Close, the TLS engine's own callbacks through a
// still-alive vtable observe no backing Pipe and fail fatally, but the
// vtable object itself is not freed here; the TLS engine may still hold
// it.
func (p *Pipe) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if b, ok := p.vtable.(interface{ detach() }); ok {
		b.detach()
	}

	if p.out != nil {
		_ = p.out.Close()
		p.out = nil
	}
	if p.in != nil {
		_ = p.in.Close()
		p.in = nil
	}

	p.log.Debug("tlsbio: pipe closed")
	return nil
}

// RetainedBIO lazily constructs the vtable instance on first call and
// returns a newly-retained handle to it on every call. The caller owns
// exactly one reference per call and must release it.
func (p *Pipe) RetainedBIO() (BIO, liberr.Error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrorRetainedBIOAfterClose.Error(nil)
	}

	return newRetainedBIO(p), nil
}

// ReceiveFromNetwork injects ciphertext read from the network. If no
// inbound buffer is currently installed, p installs one; otherwise the
// bytes are appended to the tail of the existing buffer (the documented
// "append" resolution for a second injection arriving before the first
// is drained) so the read callback continues to observe one logical
// stream.
func (p *Pipe) ReceiveFromNetwork(data []byte) {
	if len(data) == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	if p.in == nil {
		p.in = p.alloc.Allocate(len(data))
	}
	_, _ = p.in.Write(data)
}

// OutboundCiphertext returns the accumulated outbound buffer and true, or
// (nil, false) if nothing has been written since the last extraction.
// After a non-empty return, p installs a fresh, empty outbound buffer -
// reusing the trimmed backing storage when its capacity is within
// maxCap, or allocating a new buffer of exactly maxCap bytes otherwise
// (the capacity governor). The returned Buffer is owned by the caller.
func (p *Pipe) OutboundCiphertext() (membuf.Buffer, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.extractOutboundLocked()
}

func (p *Pipe) extractOutboundLocked() (membuf.Buffer, bool) {
	if p.out == nil || p.out.ReadableBytes() == 0 {
		return nil, false
	}

	extracted := p.out
	p.out = p.governAfterExtractLocked(extracted)

	return extracted, true
}

// governAfterExtractLocked implements the capacity governor: trim after
// extraction, never mid-write. It must only be called holding p.mu, with
// extracted being the buffer just handed to the caller.
func (p *Pipe) governAfterExtractLocked(extracted membuf.Buffer) membuf.Buffer {
	if p.maxCap != Unbounded && extracted.Capacity() > p.maxCap {
		p.log.WithField("from", extracted.Capacity()).WithField("to", p.maxCap).
			Debug("tlsbio: trimming outbound backing storage")
		return p.alloc.Allocate(p.maxCap)
	}

	if r, ok := extracted.(membuf.Reusable); ok {
		return r.ShareReset()
	}

	return p.alloc.Allocate(extracted.Capacity())
}

// outboundCapacityLocked returns the current outbound backing capacity,
// observed without extracting.
func (p *Pipe) outboundCapacityLocked() int {
	if p.out == nil {
		return 0
	}
	return p.out.Capacity()
}

func (p *Pipe) shutdownFlag() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shutdownOwn
}

func (p *Pipe) setShutdownFlag(v bool) {
	p.mu.Lock()
	p.shutdownOwn = v
	p.mu.Unlock()
}

// cbWrite is the write callback target: TLS-engine bytes destined for the
// network. It coalesces sequential writes into one contiguous outbound
// buffer, detecting and resolving copy-on-write sharing before mutating.
func (p *Pipe) cbWrite(data []byte) (int, biostate.Signal) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		p.log.WithError(ErrorClosed.Error(nil)).Debug("tlsbio: write callback invoked after close")
		return -1, biostate.Fatal
	}
	if len(data) == 0 {
		return 0, biostate.None
	}

	if p.out == nil {
		p.out = p.alloc.Allocate(len(data))
	}
	if p.out == nil {
		p.log.WithError(ErrorAllocationFailed.Error(nil)).Error("tlsbio: allocator returned a nil buffer on write")
		return -1, biostate.Fatal
	}

	n, err := p.out.Write(data)
	if err != nil {
		p.log.WithError(err).Error("tlsbio: outbound write failed")
		return -1, biostate.Fatal
	}

	return n, biostate.None
}

// cbRead is the read callback target: drains up to len(dst) bytes from
// the inbound buffer. An empty or absent inbound buffer is the
// would-block signal, not an error.
func (p *Pipe) cbRead(dst []byte) (int, biostate.Signal) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		p.log.WithError(ErrorClosed.Error(nil)).Debug("tlsbio: read callback invoked after close")
		return -1, biostate.Fatal
	}
	if len(dst) == 0 {
		return 0, biostate.None
	}
	if p.in == nil || p.in.ReadableBytes() == 0 {
		p.log.Debug("tlsbio: read would block, no inbound bytes pending")
		return -1, biostate.WouldBlockOnRead
	}

	n := len(dst)
	if r := p.in.ReadableBytes(); r < n {
		n = r
	}

	off := p.in.ReaderIndex()
	copy(dst[:n], p.in.GetBytes(off, n))
	p.in.Advance(n)

	return n, biostate.None
}

// cbPuts forwards a NUL-terminated string's bytes to cbWrite, excluding
// the terminator.
func (p *Pipe) cbPuts(s string) (int, biostate.Signal) {
	return p.cbWrite([]byte(s))
}

// cbGets is permanently unsupported: returns -2 with should-retry
// cleared.
func (p *Pipe) cbGets() (int, biostate.Signal) {
	return -2, biostate.Fatal
}

// cbCtrl dispatches the small set of control commands the adapter
// recognizes. Any other command returns 0, the TLS-engine convention for
// "unrecognized".
func (p *Pipe) cbCtrl(cmd biostate.Ctrl, arg1 int64) int64 {
	switch cmd {
	case biostate.CtrlGetClose:
		if p.shutdownFlag() {
			return int64(biostate.Close)
		}
		return int64(biostate.NoClose)
	case biostate.CtrlSetClose:
		p.setShutdownFlag(biostate.CloseFlag(arg1).Bool())
		return 1
	case biostate.CtrlFlush:
		return 1
	default:
		return 0
	}
}
