/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors

import "fmt"

// ers is the concrete Error: a code, its message, and the parents it
// carries.
type ers struct {
	c uint16
	e string
	p []Error
}

func (e *ers) Add(parent ...error) {
	for _, v := range parent {
		if v == nil {
			continue
		}

		if er, ok := v.(Error); ok {
			e.p = append(e.p, er)
		} else {
			e.p = append(e.p, &ers{c: uint16(UnknownError), e: v.Error()})
		}
	}
}

func (e *ers) IsCode(code CodeError) bool {
	return e.c == uint16(code)
}

func (e *ers) GetCode() CodeError {
	return CodeError(e.c)
}

func (e *ers) HasParent() bool {
	return len(e.p) > 0
}

func (e *ers) Unwrap() []error {
	if len(e.p) == 0 {
		return nil
	}

	r := make([]error, 0, len(e.p))
	for _, v := range e.p {
		r = append(r, v)
	}

	return r
}

func (e *ers) Error() string {
	if len(e.p) == 0 {
		return fmt.Sprintf("[%d] %s", e.c, e.e)
	}

	s := fmt.Sprintf("[%d] %s", e.c, e.e)
	for _, p := range e.p {
		s += ": " + p.Error()
	}

	return s
}
