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

import "sync"

// goBIO is the pure-Go stand-in retained-vtable object used whenever
// tlsbio is built without cgo (for example with CGO_ENABLED=0): it carries
// no C dependency but reproduces the retain/release refcounting and
// breakable-cycle semantics RetainedBIO documents, so the shim's lifecycle
// contract is fully testable without an OpenSSL toolchain.
type goBIO struct {
	mu   sync.Mutex
	p    *Pipe
	refs int
}

// newGoBIO is the default value of the package-level newRetainedBIO
// variable. Callers must already hold p.mu.
func newGoBIO(p *Pipe) BIO {
	b, _ := p.vtable.(*goBIO)
	if b == nil {
		b = &goBIO{p: p}
		p.vtable = b
	}
	b.refs++

	return &goBIOHandle{b: b}
}

// detach clears the back-reference to the owning Pipe. This is the
// breakable-cycle break Close performs; already-issued handles remain
// safe to Release afterward.
func (b *goBIO) detach() {
	b.mu.Lock()
	b.p = nil
	b.mu.Unlock()
}

func (b *goBIO) liveRefs() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.refs
}

type goBIOHandle struct {
	b        *goBIO
	released bool
}

func (h *goBIOHandle) Release() {
	if h.released {
		return
	}
	h.released = true

	h.b.mu.Lock()
	h.b.refs--
	h.b.mu.Unlock()
}
