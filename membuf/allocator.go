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

// pooledAllocator is the default Allocator: every Buffer it hands out
// draws its backing array from, and returns it to on Close, a shared
// sync.Pool.
type pooledAllocator struct {
	p *pool
}

// NewPooledAllocator returns an Allocator whose Buffers recycle backing
// arrays through an internal pool instead of relying solely on the
// garbage collector, amortizing the allocate/trim/extract cycle package
// tlsbio's capacity governor drives on every outbound extraction.
func NewPooledAllocator() Allocator {
	return &pooledAllocator{p: newPool()}
}

func (a *pooledAllocator) Allocate(capacity int) Buffer {
	return &buf{data: a.p.get(capacity), sh: &shared{refs: 1}, pool: a.p}
}

// NewSimpleAllocator returns an Allocator whose Buffers allocate a fresh
// array per call and rely on the garbage collector to reclaim them -
// useful for tests and callers who do not want pooled arrays outliving
// their expected lifetime.
func NewSimpleAllocator() Allocator {
	return simpleAllocator{}
}

type simpleAllocator struct{}

func (simpleAllocator) Allocate(capacity int) Buffer {
	return newBuf(capacity, nil)
}
