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

// Package errors provides numeric, code-classified errors (HTTP-status-like)
// with parent/child hierarchy, for tlsbio and its sub-packages.
//
// Each consuming package reserves a code range in modules.go, registers one
// message function for it at init time via RegisterIdFctMessage (panicking
// on a range collision, checked with ExistInMapMessage), and constructs
// errors by calling Error on one of its own CodeError constants:
//
//	const ErrorFoo CodeError = iota + MinPkgTLSBio
//
//	err := ErrorFoo.Error(parentErr)
//	err.Add(anotherErr)
//	if err.HasParent() { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error is a CodeError-classified error that can carry parent errors,
// compatible with the standard errors.Is/errors.As via Unwrap.
type Error interface {
	error

	// IsCode reports whether this error's own code equals code.
	IsCode(code CodeError) bool
	// GetCode returns this error's own code.
	GetCode() CodeError

	// HasParent reports whether any parent error has been added.
	HasParent() bool
	// Add appends every non-nil error in parent to this error's parents,
	// wrapping any that is not already an Error.
	Add(parent ...error)
	// Unwrap exposes the parent errors for errors.Is/errors.As.
	Unwrap() []error
}

// Is reports whether e is, or wraps, an Error.
func Is(e error) bool {
	var err Error
	return errors.As(e, &err)
}

// Get returns e as an Error if it is one (directly or via Unwrap), or nil.
func Get(e error) Error {
	var err Error
	if errors.As(e, &err) {
		return err
	}

	return nil
}

// Has reports whether e, or any of its parents, carries code.
func Has(e error, code CodeError) bool {
	err := Get(e)
	if err == nil {
		return false
	}

	if err.IsCode(code) {
		return true
	}

	for _, p := range err.Unwrap() {
		if Has(p, code) {
			return true
		}
	}

	return false
}

// Make returns e as an Error, wrapping it with code UnknownError if it is
// not already one. Returns nil for a nil e.
func Make(e error) Error {
	if e == nil {
		return nil
	}

	if err := Get(e); err != nil {
		return err
	}

	return &ers{c: uint16(UnknownError), e: e.Error()}
}

// New builds an Error with the given code, message, and parent errors.
func New(code uint16, message string, parent ...error) Error {
	e := &ers{c: code, e: message}
	e.Add(parent...)
	return e
}

// Newf builds an Error with the given code and a message formatted with
// fmt.Sprintf.
func Newf(code uint16, pattern string, args ...any) Error {
	return &ers{c: code, e: fmt.Sprintf(pattern, args...)}
}
