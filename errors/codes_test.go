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

package errors_test

import (
	. "github.com/nabbar/tlsbio/errors"
)

// Dedicated codes for the test suite, well above any registered package
// range so they never collide with MinPkgTLSBio/MinPkgMemBuf/MinPkgRelayConfig.
const (
	TestErrorCode1 CodeError = iota + MinAvailable + 900
	TestErrorCode2
	TestErrorCode3
)

func testMessage(code CodeError) string {
	switch code {
	case TestErrorCode1:
		return "test error one"
	case TestErrorCode2:
		return "test error two"
	case TestErrorCode3:
		return "test error three"
	}

	return NullMessage
}

func init() {
	RegisterIdFctMessage(TestErrorCode1, testMessage)
}
