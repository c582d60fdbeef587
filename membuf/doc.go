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

// Package membuf implements the Allocator/Buffer contract package tlsbio
// builds on: growable byte buffers whose backing array can be shared
// between two handles - one still owned internally, one extracted and
// handed to a caller - until either side writes to it.
//
//	┌───────────────┐  ShareReset  ┌───────────────┐
//	│   handle A     │─────────────▶│   handle B     │
//	│ (extracted)    │  same array  │ (reused, len 0)│
//	└───────┬────────┘              └───────┬────────┘
//	        │ Write (refs>1)                │ Write (refs>1)
//	        ▼                               ▼
//	   detach: copy into a fresh array, refs reset to 1 on each side
//
// Buffer is deliberately narrow: append-only Write, an explicit reader
// cursor for draining, and random-access reads via GetBytes/GetString.
// It is not a general-purpose io.ReadWriter.
package membuf
