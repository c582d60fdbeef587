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

package biostate

// Signal is the pair of indicator bits the TLS engine inspects after a -1
// return from read/write/puts to decide between "try again later" and
// "fatal". Retry alone would mean "try again for an unspecified reason";
// Read paired with Retry is the specific "needs more input" signal.
type Signal struct {
	Retry bool
	Read  bool
}

// None is the zero-effect signal: used on successful, non-negative
// returns where the caller clears any transient retry state.
var None = Signal{}

// Fatal signals a non-retryable failure: the shim is closed, or an
// unrecoverable error occurred. The TLS engine treats this as terminal.
var Fatal = Signal{Retry: false, Read: false}

// WouldBlockOnRead signals "no data yet, call me again once more input
// has arrived" - returned by read on an empty or absent inbound buffer.
var WouldBlockOnRead = Signal{Retry: true, Read: true}
