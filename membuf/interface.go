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

// Package membuf provides the byte-buffer contract consumed by package
// tlsbio: an Allocator that hands out growable, reference-counted Buffer
// values, and a default pooled implementation of both.
//
// A Buffer's backing array may be shared between two Buffer handles - one
// held by the package that allocated it, one handed out to a caller that
// extracted it - until either side writes to it. Write detects sharing via
// Shared and duplicates the backing array before mutating it, so a caller
// holding an extracted Buffer never observes bytes it didn't write itself.
// Close releases a handle's share of the backing array; once every handle
// but one has been closed, the remaining handle can mutate in place again.
package membuf

import "io"

// Allocator hands out Buffer values with at least the requested writable
// capacity. Implementations may pool and reuse backing storage.
type Allocator interface {
	// Allocate returns a new, empty Buffer whose Capacity is at least
	// capacity. Implementations must not return nil.
	Allocate(capacity int) Buffer
}

// Buffer is a growable byte buffer with copy-on-write backing storage and
// an explicit reader cursor, covering both the append-only (outbound) and
// drain (inbound) usage patterns package tlsbio needs.
type Buffer interface {
	io.Writer
	io.Closer

	// ReadableBytes returns the number of unread bytes remaining after
	// ReaderIndex.
	ReadableBytes() int

	// ReaderIndex returns the current read cursor position.
	ReaderIndex() int

	// Advance moves the read cursor forward by n bytes. It panics if n is
	// negative or exceeds ReadableBytes.
	Advance(n int)

	// GetBytes returns a copy of the length bytes starting at offset,
	// independent of the reader cursor.
	GetBytes(offset, length int) []byte

	// GetString is GetBytes without an intermediate []byte copy at the
	// call site.
	GetString(offset, length int) string

	// BackingAddress returns the address of the first byte of the
	// backing array, for reference-identity comparisons in tests. It
	// returns 0 for a Buffer with no backing storage allocated yet.
	BackingAddress() uintptr

	// Shared reports whether this Buffer's backing array is also
	// referenced by another live Buffer handle. A write observed while
	// Shared is true must duplicate the backing array first.
	Shared() bool

	// Capacity returns the current capacity of the backing array.
	Capacity() int
}

// Reusable is implemented by Buffer values whose backing array can be
// handed to a second, independent handle without copying - the mechanism
// package tlsbio's capacity governor uses to reuse an extracted buffer's
// storage for the next write instead of allocating fresh, while still
// preserving copy-on-write safety for whichever side writes first.
type Reusable interface {
	// ShareReset returns a new Buffer over the same backing array,
	// truncated to zero length. The receiver remains valid and must
	// still be closed independently of the returned Buffer.
	ShareReset() Buffer
}
