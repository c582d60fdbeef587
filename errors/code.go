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

import "sort"

// idMsgFct stores the mapping between error codes and their message
// functions. A package registers one entry per code range at init time,
// keyed by the lowest code in the range; ExistInMapMessage and Message
// look up the nearest registered key at or below the requested code.
var idMsgFct = make(map[CodeError]Message)

// Message is a function type that generates the error string for a code.
type Message func(code CodeError) (message string)

// CodeError is a numeric error code, HTTP-status-like, unique per
// registering package range (see modules.go).
type CodeError uint16

const (
	// UnknownError is the fallback code for an error with no registered range.
	UnknownError CodeError = 0

	// UnknownMessage is the message for UnknownError and any unregistered code.
	UnknownMessage = "unknown error"

	// NullMessage is the empty message, returned by a Message func for a
	// code it does not recognize within its range.
	NullMessage = ""
)

// Message returns the string registered for c's range, or UnknownMessage
// if c is UnknownError or no range covers it.
func (c CodeError) Message() string {
	if c == UnknownError {
		return UnknownMessage
	}

	if f, ok := idMsgFct[findCodeErrorInMapMessage(c)]; ok {
		if m := f(c); m != NullMessage {
			return m
		}
	}

	return UnknownMessage
}

// Error builds a new Error from c, carrying the given parent errors.
func (c CodeError) Error(p ...error) Error {
	return New(uint16(c), c.Message(), p...)
}

// RegisterIdFctMessage registers fct as the message function for every
// code in the range starting at minCode. Call once per package range at
// init time, after checking ExistInMapMessage to catch range collisions.
func RegisterIdFctMessage(minCode CodeError, fct Message) {
	idMsgFct[minCode] = fct
}

// ExistInMapMessage reports whether code resolves to a registered,
// non-null message - used at init time to panic on range collisions
// before RegisterIdFctMessage overwrites an existing entry.
func ExistInMapMessage(code CodeError) bool {
	if f, ok := idMsgFct[findCodeErrorInMapMessage(code)]; ok {
		return f(code) != NullMessage
	}

	return false
}

// findCodeErrorInMapMessage returns the largest registered range key that
// is <= code, or 0 (UnknownError) if none is.
func findCodeErrorInMapMessage(code CodeError) CodeError {
	keys := make([]CodeError, 0, len(idMsgFct))
	for k := range idMsgFct {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var res CodeError
	for _, k := range keys {
		if k <= code && k > res {
			res = k
		}
	}

	return res
}
