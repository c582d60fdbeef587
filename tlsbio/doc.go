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

// Package tlsbio, expanded architecture notes.
//
// # Data flow
//
//	  write/puts                                  extract
//	TLS engine ───────▶ Pipe.out (membuf.Buffer) ───────▶ host
//	                                                    (owns returned Buffer)
//
//	  ReceiveFromNetwork                          read
//	host ───────▶ Pipe.in (membuf.Buffer) ───────▶ TLS engine
//
// # Lifecycle
//
// A Pipe starts in state Fresh. RetainedBIO moves it to Bound on first
// call (idempotent thereafter - later calls just add a retained handle).
// Close moves it to Closed from either state and is terminal: it clears
// the vtable's back-reference to the Pipe (see bio_default.go and
// biovtable_cgo.go's detach), so any callback reaching an already-closed
// Pipe through a still-alive vtable observes no backing Pipe and fails
// fatally with should-retry cleared.
//
// # Capacity governor
//
// OutboundCiphertext never trims mid-write: a single write larger than
// maxCap is always honoured in full. Trimming only happens on the next
// extraction, and only replaces the backing array, never the bytes
// already handed to the caller. maxCap itself is either Unbounded (never
// trim) or a nonnegative bound, with 0 a valid bound meaning "preserve
// nothing" - distinct sentinels, so neither is reachable by accident.
package tlsbio
