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

//go:build cgo

// This file binds Pipe's callback targets to an OpenSSL BIO_METHOD,
// following the same BIO_meth_new/BIO_set_data wiring used by
// github.com/spacemonkeygo/openssl's Conn type. It is isolated behind the
// cgo build tag so the rest of this package, and all of package membuf,
// compile and test without a C toolchain or OpenSSL headers.
package tlsbio

/*
#cgo pkg-config: openssl
#include <openssl/bio.h>
#include <stdlib.h>

extern int tlsbioGoWrite(BIO *b, const char *data, int length);
extern int tlsbioGoRead(BIO *b, char *data, int length);
extern int tlsbioGoPuts(BIO *b, const char *data);
extern long tlsbioGoCtrl(BIO *b, int cmd, long arg1, void *arg2);
extern int tlsbioGoCreate(BIO *b);
extern int tlsbioGoDestroy(BIO *b);

static BIO_METHOD *tlsbio_method(void) {
	static BIO_METHOD *m = NULL;
	if (m != NULL) {
		return m;
	}
	m = BIO_meth_new(BIO_TYPE_SOURCE_SINK, "tlsbio");
	if (m == NULL) {
		return NULL;
	}
	BIO_meth_set_write(m, tlsbioGoWrite);
	BIO_meth_set_read(m, tlsbioGoRead);
	BIO_meth_set_puts(m, tlsbioGoPuts);
	// gets is left unset: OpenSSL's BIO_gets default returns -2, matching
	// cbGets's permanently-unsupported stance on the non-cgo vtable.
	BIO_meth_set_ctrl(m, tlsbioGoCtrl);
	BIO_meth_set_create(m, tlsbioGoCreate);
	BIO_meth_set_destroy(m, tlsbioGoDestroy);
	return m;
}

static BIO *tlsbio_bio_new(void) {
	return BIO_new(tlsbio_method());
}
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"github.com/nabbar/tlsbio/tlsbio/biostate"
)

func pipeFromBIO(b *C.BIO) *Pipe {
	ptr := C.BIO_get_data(b)
	if ptr == nil {
		return nil
	}

	h := cgo.Handle(uintptr(ptr))
	p, _ := h.Value().(*Pipe)
	return p
}

func applySignal(b *C.BIO, sig biostate.Signal) {
	C.BIO_clear_retry_flags(b)
	if !sig.Retry {
		return
	}

	C.BIO_set_retry_read(b)
}

//export tlsbioGoWrite
func tlsbioGoWrite(b *C.BIO, data *C.char, length C.int) C.int {
	p := pipeFromBIO(b)
	if p == nil {
		C.BIO_clear_retry_flags(b)
		return -1
	}

	var src []byte
	if length > 0 {
		src = unsafe.Slice((*byte)(unsafe.Pointer(data)), int(length))
	}

	n, sig := p.cbWrite(src)
	applySignal(b, sig)
	return C.int(n)
}

//export tlsbioGoRead
func tlsbioGoRead(b *C.BIO, data *C.char, length C.int) C.int {
	p := pipeFromBIO(b)
	if p == nil {
		C.BIO_clear_retry_flags(b)
		return -1
	}

	var dst []byte
	if length > 0 {
		dst = unsafe.Slice((*byte)(unsafe.Pointer(data)), int(length))
	}

	n, sig := p.cbRead(dst)
	applySignal(b, sig)
	return C.int(n)
}

//export tlsbioGoPuts
func tlsbioGoPuts(b *C.BIO, data *C.char) C.int {
	p := pipeFromBIO(b)
	if p == nil {
		C.BIO_clear_retry_flags(b)
		return -1
	}

	n, sig := p.cbPuts(C.GoString(data))
	applySignal(b, sig)
	return C.int(n)
}

//export tlsbioGoCtrl
func tlsbioGoCtrl(b *C.BIO, cmd C.int, arg1 C.long, arg2 unsafe.Pointer) C.long {
	p := pipeFromBIO(b)
	if p == nil {
		return 0
	}

	return C.long(p.cbCtrl(biostate.Ctrl(cmd), int64(arg1)))
}

//export tlsbioGoCreate
func tlsbioGoCreate(b *C.BIO) C.int {
	C.BIO_set_init(b, 1)
	return 1
}

//export tlsbioGoDestroy
func tlsbioGoDestroy(b *C.BIO) C.int {
	ptr := C.BIO_get_data(b)
	if ptr != nil {
		cgo.Handle(uintptr(ptr)).Delete()
		C.BIO_set_data(b, nil)
	}
	return 1
}

// cBIO wraps an OpenSSL BIO* retained via BIO_up_ref; Release calls
// BIO_free, which decrements OpenSSL's own refcount and only tears the
// object down (invoking tlsbioGoDestroy) once it reaches zero.
type cBIO struct {
	bio *C.BIO
}

func (h *cBIO) Release() {
	C.BIO_free(h.bio)
}

// detach clears this Pipe's back-reference from the vtable's user-data
// slot, the breakable-cycle break Close performs. The BIO object itself
// survives until every retained handle is released.
func (h *cBIO) detach() {
	ptr := C.BIO_get_data(h.bio)
	if ptr != nil {
		cgo.Handle(uintptr(ptr)).Delete()
		C.BIO_set_data(h.bio, nil)
	}
}

func init() {
	newRetainedBIO = func(p *Pipe) BIO {
		if existing, ok := p.vtable.(*cBIO); ok {
			C.BIO_up_ref(existing.bio)
			return &cBIO{bio: existing.bio}
		}

		b := C.tlsbio_bio_new()
		if b == nil {
			panic("tlsbio: BIO_new failed")
		}

		h := cgo.NewHandle(p)
		C.BIO_set_data(b, unsafe.Pointer(uintptr(h)))
		if p.shutdownOwn {
			C.BIO_set_shutdown(b, 1)
		} else {
			C.BIO_set_shutdown(b, 0)
		}

		wrapper := &cBIO{bio: b}
		p.vtable = wrapper
		return wrapper
	}
}
