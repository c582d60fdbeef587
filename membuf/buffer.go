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

package membuf

import (
	"sync/atomic"
	"unsafe"
)

// shared is the refcount two buf handles agree to share while their data
// slices point into the same underlying array. It carries no data of its
// own - each handle keeps its own slice header (pointer, length, capacity)
// so resetting one handle's view never mutates the other's.
type shared struct {
	refs int32
}

// buf is the default Buffer implementation.
type buf struct {
	data []byte
	off  int
	sh   *shared
	pool *pool
}

func newBuf(capacity int, p *pool) *buf {
	return &buf{data: make([]byte, 0, capacity), sh: &shared{refs: 1}, pool: p}
}

func (u *buf) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if atomic.LoadInt32(&u.sh.refs) > 1 {
		u.detach(len(u.data) + len(p))
	}

	u.data = append(u.data, p...)
	return len(p), nil
}

// detach duplicates this handle's view into a fresh array sized for at
// least hint bytes and releases its share of the old one. Called the
// moment a write would otherwise mutate storage another handle still
// holds a reference to.
func (u *buf) detach(hint int) {
	cp := cap(u.data)
	if hint > cp {
		cp = hint
	}

	nd := make([]byte, len(u.data), cp)
	copy(nd, u.data)

	atomic.AddInt32(&u.sh.refs, -1)
	u.data = nd
	u.sh = &shared{refs: 1}
}

func (u *buf) ReadableBytes() int {
	return len(u.data) - u.off
}

func (u *buf) ReaderIndex() int {
	return u.off
}

func (u *buf) Advance(n int) {
	if n < 0 || u.off+n > len(u.data) {
		panic("membuf: Advance out of range")
	}
	u.off += n
}

func (u *buf) GetBytes(offset, length int) []byte {
	if offset < 0 || length < 0 || offset+length > len(u.data) {
		panic("membuf: GetBytes out of range")
	}

	out := make([]byte, length)
	copy(out, u.data[offset:offset+length])
	return out
}

func (u *buf) GetString(offset, length int) string {
	if offset < 0 || length < 0 || offset+length > len(u.data) {
		panic("membuf: GetString out of range")
	}

	return string(u.data[offset : offset+length])
}

func (u *buf) BackingAddress() uintptr {
	if cap(u.data) == 0 {
		return 0
	}

	return uintptr(unsafe.Pointer(unsafe.SliceData(u.data[:cap(u.data)])))
}

func (u *buf) Shared() bool {
	return atomic.LoadInt32(&u.sh.refs) > 1
}

func (u *buf) Capacity() int {
	return cap(u.data)
}

// ShareReset returns a new handle over the same backing array truncated to
// zero length, with its own independent reader cursor, and bumps the
// shared refcount by one. Both handles must be closed independently; a
// write through either one while the other is still open triggers a
// detach on the writer's side rather than mutating bytes the other handle
// may still be reading.
func (u *buf) ShareReset() Buffer {
	atomic.AddInt32(&u.sh.refs, 1)

	return &buf{data: u.data[:0], sh: u.sh, pool: u.pool}
}

// Close releases this handle's share of the backing array. Once the last
// live handle over a given array is closed, the array is returned to the
// pool it was allocated from, if any.
func (u *buf) Close() error {
	if u.sh == nil {
		return nil
	}

	left := atomic.AddInt32(&u.sh.refs, -1)
	if left <= 0 && u.pool != nil {
		u.pool.put(u.data[:cap(u.data)])
	}

	u.sh = nil
	return nil
}
