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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CodeError", func() {
	Describe("Message", func() {
		It("resolves a registered code to its message", func() {
			Expect(TestErrorCode1.Message()).To(Equal("test error one"))
			Expect(TestErrorCode2.Message()).To(Equal("test error two"))
		})

		It("falls back to UnknownMessage for an unregistered code", func() {
			Expect(CodeError(50000).Message()).To(Equal(UnknownMessage))
		})

		It("returns UnknownMessage for UnknownError", func() {
			Expect(UnknownError.Message()).To(Equal(UnknownMessage))
		})
	})

	Describe("Error", func() {
		It("builds an Error carrying the code and its message", func() {
			err := TestErrorCode2.Error(nil)

			Expect(err.GetCode()).To(Equal(TestErrorCode2))
			Expect(err.IsCode(TestErrorCode2)).To(BeTrue())
			Expect(err.IsCode(TestErrorCode1)).To(BeFalse())
			Expect(err.Error()).To(ContainSubstring("test error two"))
		})

		It("attaches non-nil parent errors", func() {
			parent := TestErrorCode1.Error(nil)
			err := TestErrorCode2.Error(parent)

			Expect(err.HasParent()).To(BeTrue())
			Expect(err.Unwrap()).To(HaveLen(1))
		})

		It("ignores nil parents", func() {
			err := TestErrorCode3.Error(nil)

			Expect(err.HasParent()).To(BeFalse())
			Expect(err.Unwrap()).To(BeNil())
		})
	})

	Describe("RegisterIdFctMessage and ExistInMapMessage", func() {
		It("reports a registered range as existing", func() {
			Expect(ExistInMapMessage(TestErrorCode1)).To(BeTrue())
		})

		It("reports an unregistered range as absent", func() {
			Expect(ExistInMapMessage(CodeError(60000))).To(BeFalse())
		})
	})
})
