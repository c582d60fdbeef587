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
	"fmt"

	. "github.com/nabbar/tlsbio/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("error hierarchy", func() {
	Describe("Add", func() {
		It("accepts multiple parents across calls", func() {
			err := TestErrorCode1.Error(nil)
			err.Add(TestErrorCode2.Error(nil))
			err.Add(TestErrorCode3.Error(nil), fmt.Errorf("plain error"))

			Expect(err.Unwrap()).To(HaveLen(3))
		})

		It("skips nil entries", func() {
			err := TestErrorCode1.Error(nil)
			err.Add(nil, TestErrorCode2.Error(nil), nil)

			Expect(err.Unwrap()).To(HaveLen(1))
		})

		It("wraps a plain error with UnknownError", func() {
			err := TestErrorCode1.Error(nil)
			err.Add(fmt.Errorf("boom"))

			parents := err.Unwrap()
			Expect(parents).To(HaveLen(1))

			wrapped := Get(parents[0])
			Expect(wrapped).NotTo(BeNil())
			Expect(wrapped.GetCode()).To(Equal(UnknownError))
		})
	})

	Describe("Error string", func() {
		It("includes every parent's message", func() {
			err := TestErrorCode1.Error(TestErrorCode2.Error(nil))

			s := err.Error()
			Expect(s).To(ContainSubstring("test error one"))
			Expect(s).To(ContainSubstring("test error two"))
		})
	})

	Describe("package-level helpers", func() {
		It("Is reports true for any Error", func() {
			Expect(Is(TestErrorCode1.Error(nil))).To(BeTrue())
			Expect(Is(fmt.Errorf("plain"))).To(BeFalse())
		})

		It("Get extracts the Error interface", func() {
			err := TestErrorCode1.Error(nil)
			Expect(Get(err)).To(Equal(err))
			Expect(Get(fmt.Errorf("plain"))).To(BeNil())
		})

		It("Has walks into parents", func() {
			err := TestErrorCode1.Error(TestErrorCode2.Error(nil))

			Expect(Has(err, TestErrorCode1)).To(BeTrue())
			Expect(Has(err, TestErrorCode2)).To(BeTrue())
			Expect(Has(err, TestErrorCode3)).To(BeFalse())
		})

		It("Make wraps a plain error and passes an existing Error through", func() {
			plain := Make(fmt.Errorf("boom"))
			Expect(plain.GetCode()).To(Equal(UnknownError))

			err := TestErrorCode1.Error(nil)
			Expect(Make(err)).To(Equal(err))

			Expect(Make(nil)).To(BeNil())
		})

		It("New builds an Error from a raw code and message", func() {
			err := New(uint16(TestErrorCode2), "custom message")
			Expect(err.GetCode()).To(Equal(TestErrorCode2))
			Expect(err.Error()).To(ContainSubstring("custom message"))
		})

		It("Newf formats the message", func() {
			err := Newf(uint16(TestErrorCode2), "value=%d", 42)
			Expect(err.Error()).To(ContainSubstring("value=42"))
		})
	})
})
