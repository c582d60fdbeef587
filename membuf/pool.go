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

import "sync"

// pool recycles backing arrays released by buf.Close so repeated
// allocate/trim/extract cycles amortize to near-zero allocation once warm.
type pool struct {
	sp sync.Pool
}

func newPool() *pool {
	return &pool{
		sp: sync.Pool{
			New: func() any {
				return make([]byte, 0)
			},
		},
	}
}

func (p *pool) get(capacity int) []byte {
	b, _ := p.sp.Get().([]byte)
	if cap(b) < capacity {
		return make([]byte, 0, capacity)
	}

	return b[:0]
}

func (p *pool) put(b []byte) {
	if cap(b) == 0 {
		return
	}

	p.sp.Put(b[:0]) //nolint:staticcheck // intentionally pooling a slice value
}
