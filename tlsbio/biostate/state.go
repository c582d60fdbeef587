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

// Package biostate holds the small value types the vtable adapter and the
// pipe exchange: the ctrl command set, the shutdown-flag, and the
// should-retry/should-read indicator bits a -1 return carries.
package biostate

// Ctrl identifies a control command recognized by the ctrl callback,
// numbered after OpenSSL's BIO_ctrl command codes.
type Ctrl int

const (
	CtrlSetClose Ctrl = 9  // BIO_CTRL_SET_CLOSE
	CtrlGetClose Ctrl = 10 // BIO_CTRL_GET_CLOSE
	CtrlFlush    Ctrl = 11 // BIO_CTRL_FLUSH
)

func (c Ctrl) String() string {
	switch c {
	case CtrlSetClose:
		return "SET_CLOSE"
	case CtrlGetClose:
		return "GET_CLOSE"
	case CtrlFlush:
		return "FLUSH"
	default:
		return "UNRECOGNIZED"
	}
}

// CloseFlag is the shutdown-flag value carried by SET_CLOSE/GET_CLOSE.
type CloseFlag int

const (
	NoClose CloseFlag = 0
	Close   CloseFlag = 1
)

func CloseFlagFromBool(b bool) CloseFlag {
	if b {
		return Close
	}
	return NoClose
}

func (f CloseFlag) Bool() bool {
	return f == Close
}

func (f CloseFlag) String() string {
	if f == Close {
		return "CLOSE"
	}
	return "NOCLOSE"
}
