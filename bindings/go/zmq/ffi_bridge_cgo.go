//go:build cgo && (linux || darwin)

package zmq

/*
#include <stdlib.h>
#include <string.h>
#include "zmqshim.h"
*/
import "C"

import (
	"runtime"
	"runtime/cgo"
	"unsafe"
)

// ffiCall runs a libzmq call and reads zmq_errno on the same OS thread when the
// call reports failure.
func ffiCall(call func() C.int) (int, int) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	rc := call()
	if rc == -1 {
		return int(rc), int(C.zmq_errno())
	}
	return int(rc), 0
}

func ffiCallResult(call func() C.int) int {
	_, code := ffiCall(call)
	return code
}

func ffiVersion() (int, int, int) {
	var major, minor, patch C.int
	C.zmq_version(&major, &minor, &patch)
	return int(major), int(minor), int(patch)
}

func ffiStrerror(code int) string {
	return C.GoString(C.zmq_strerror(C.int(code)))
}

func ffiHas(capability string) int {
	cCap := C.CString(capability)
	defer C.free(unsafe.Pointer(cCap))
	return int(C.zmqprims_has(cCap))
}

func ffiCtxNew() (unsafe.Pointer, int) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	handle := C.zmq_ctx_new()
	if handle == nil {
		return nil, int(C.zmq_errno())
	}
	return handle, 0
}

func ffiCtxTerm(ctx unsafe.Pointer) int {
	return ffiCallResult(func() C.int { return C.zmq_ctx_term(ctx) })
}

func ffiCtxGet(ctx unsafe.Pointer, opt int) (int, int) {
	return ffiCall(func() C.int { return C.zmq_ctx_get(ctx, C.int(opt)) })
}

func ffiCtxSet(ctx unsafe.Pointer, opt, value int) int {
	return ffiCallResult(func() C.int { return C.zmq_ctx_set(ctx, C.int(opt), C.int(value)) })
}

func ffiSocket(ctx unsafe.Pointer, socketType int) (unsafe.Pointer, int) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	handle := C.zmq_socket(ctx, C.int(socketType))
	if handle == nil {
		return nil, int(C.zmq_errno())
	}
	return handle, 0
}

func ffiClose(sock unsafe.Pointer) int {
	return ffiCallResult(func() C.int { return C.zmq_close(sock) })
}

func ffiBind(sock unsafe.Pointer, endpoint string) int {
	cEndpoint := C.CString(endpoint)
	defer C.free(unsafe.Pointer(cEndpoint))
	return ffiCallResult(func() C.int { return C.zmq_bind(sock, cEndpoint) })
}

func ffiConnect(sock unsafe.Pointer, endpoint string) int {
	cEndpoint := C.CString(endpoint)
	defer C.free(unsafe.Pointer(cEndpoint))
	return ffiCallResult(func() C.int { return C.zmq_connect(sock, cEndpoint) })
}

func ffiUnbind(sock unsafe.Pointer, endpoint string) int {
	cEndpoint := C.CString(endpoint)
	defer C.free(unsafe.Pointer(cEndpoint))
	return ffiCallResult(func() C.int { return C.zmq_unbind(sock, cEndpoint) })
}

func ffiDisconnect(sock unsafe.Pointer, endpoint string) int {
	cEndpoint := C.CString(endpoint)
	defer C.free(unsafe.Pointer(cEndpoint))
	return ffiCallResult(func() C.int { return C.zmq_disconnect(sock, cEndpoint) })
}

func ffiGetsockopt(sock unsafe.Pointer, opt int, value unsafe.Pointer, size *uintptr) int {
	cSize := C.size_t(*size)
	code := ffiCallResult(func() C.int {
		return C.zmq_getsockopt(sock, C.int(opt), value, &cSize)
	})
	*size = uintptr(cSize)
	return code
}

func ffiSetsockopt(sock unsafe.Pointer, opt int, value unsafe.Pointer, size uintptr) int {
	return ffiCallResult(func() C.int {
		return C.zmq_setsockopt(sock, C.int(opt), value, C.size_t(size))
	})
}

func ffiMonitor(sock unsafe.Pointer, endpoint string, events int) int {
	if endpoint == "" {
		return ffiCallResult(func() C.int { return C.zmq_socket_monitor(sock, nil, C.int(events)) })
	}
	cEndpoint := C.CString(endpoint)
	defer C.free(unsafe.Pointer(cEndpoint))
	return ffiCallResult(func() C.int { return C.zmq_socket_monitor(sock, cEndpoint, C.int(events)) })
}

func ffiRecv(sock unsafe.Pointer, buf []byte, flags int) (int, int) {
	var ptr unsafe.Pointer
	if len(buf) > 0 {
		ptr = unsafe.Pointer(&buf[0])
	}
	return ffiCall(func() C.int { return C.zmq_recv(sock, ptr, C.size_t(len(buf)), C.int(flags)) })
}

func ffiPoll(items []PollItem, timeout int64) (int, int) {
	cItems := make([]C.zmq_pollitem_t, len(items))
	for i, item := range items {
		cItems[i].socket = item.socket
		cItems[i].fd = C.int(item.fd)
		cItems[i].events = C.short(item.events)
	}
	var ptr *C.zmq_pollitem_t
	if len(cItems) > 0 {
		ptr = &cItems[0]
	}
	rc, code := ffiCall(func() C.int { return C.zmq_poll(ptr, C.int(len(cItems)), C.long(timeout)) })
	for i := range items {
		items[i].revents = PollEvents(cItems[i].revents)
	}
	return rc, code
}

func ffiProxy(frontend, backend, capture unsafe.Pointer) int {
	return ffiCallResult(func() C.int { return C.zmq_proxy(frontend, backend, capture) })
}

func ffiProxySteerable(frontend, backend, capture, control unsafe.Pointer) int {
	return ffiCallResult(func() C.int { return C.zmq_proxy_steerable(frontend, backend, capture, control) })
}

// Messages. Descriptors live in C memory so libzmq may keep pointers into them.

func ffiMsgAlloc() (unsafe.Pointer, int) {
	msg := C.zmqprims_msg_alloc()
	if msg == nil {
		return nil, int(ENOMEM)
	}
	return unsafe.Pointer(msg), 0
}

func ffiMsgFree(msg unsafe.Pointer) {
	C.zmqprims_msg_free((*C.zmq_msg_t)(msg))
}

func ffiMsgInit(msg unsafe.Pointer) int {
	return ffiCallResult(func() C.int { return C.zmq_msg_init((*C.zmq_msg_t)(msg)) })
}

func ffiMsgInitSize(msg unsafe.Pointer, size int) int {
	return ffiCallResult(func() C.int { return C.zmq_msg_init_size((*C.zmq_msg_t)(msg), C.size_t(size)) })
}

type ownedBuffer struct {
	pinner runtime.Pinner
	buf    []byte
}

// ffiMsgInitOwned hands buf to libzmq without copying. The buffer stays pinned
// until libzmq invokes the release callback, which happens exactly once.
func ffiMsgInitOwned(msg unsafe.Pointer, buf []byte) int {
	owned := &ownedBuffer{buf: buf}
	owned.pinner.Pin(&buf[0])
	handle := cgo.NewHandle(owned)

	code := ffiCallResult(func() C.int {
		return C.zmqprims_msg_init_owned(
			(*C.zmq_msg_t)(msg),
			unsafe.Pointer(&buf[0]),
			C.size_t(len(buf)),
			C.uintptr_t(handle),
		)
	})
	if code != 0 {
		handle.Delete()
		owned.pinner.Unpin()
		return code
	}
	ownedBufferAcquired()
	return 0
}

//export zmqprimsReleaseOwned
func zmqprimsReleaseOwned(hint C.uintptr_t) {
	handle := cgo.Handle(hint)
	owned := handle.Value().(*ownedBuffer)
	handle.Delete()
	owned.pinner.Unpin()
	owned.buf = nil
	ownedBufferReleased()
}

func ffiMsgClose(msg unsafe.Pointer) int {
	return ffiCallResult(func() C.int { return C.zmq_msg_close((*C.zmq_msg_t)(msg)) })
}

func ffiMsgData(msg unsafe.Pointer) unsafe.Pointer {
	return C.zmq_msg_data((*C.zmq_msg_t)(msg))
}

func ffiMsgSize(msg unsafe.Pointer) int {
	return int(C.zmq_msg_size((*C.zmq_msg_t)(msg)))
}

func ffiMsgMore(msg unsafe.Pointer) bool {
	return C.zmq_msg_more((*C.zmq_msg_t)(msg)) != 0
}

func ffiMsgGets(msg unsafe.Pointer, property string) ([]byte, bool) {
	cProperty := C.CString(property)
	defer C.free(unsafe.Pointer(cProperty))

	value := C.zmqprims_msg_gets((*C.zmq_msg_t)(msg), cProperty)
	if value == nil {
		return nil, false
	}
	return C.GoBytes(unsafe.Pointer(value), C.int(C.strlen(value))), true
}

func ffiMsgSend(msg, sock unsafe.Pointer, flags int) (int, int) {
	return ffiCall(func() C.int { return C.zmq_msg_send((*C.zmq_msg_t)(msg), sock, C.int(flags)) })
}

func ffiMsgRecv(msg, sock unsafe.Pointer, flags int) (int, int) {
	return ffiCall(func() C.int { return C.zmq_msg_recv((*C.zmq_msg_t)(msg), sock, C.int(flags)) })
}

// Z85 and CURVE.

func ffiZ85Encode(data []byte) (string, bool) {
	dest := make([]byte, len(data)*5/4+1)
	var src *C.uint8_t
	if len(data) > 0 {
		src = (*C.uint8_t)(unsafe.Pointer(&data[0]))
	}
	if C.zmq_z85_encode((*C.char)(unsafe.Pointer(&dest[0])), src, C.size_t(len(data))) == nil {
		return "", false
	}
	return string(dest[:len(dest)-1]), true
}

func ffiZ85Decode(s string) ([]byte, bool) {
	cStr := C.CString(s)
	defer C.free(unsafe.Pointer(cStr))

	dest := make([]byte, len(s)*4/5)
	if C.zmq_z85_decode((*C.uint8_t)(unsafe.Pointer(&dest[0])), cStr) == nil {
		return nil, false
	}
	return dest, true
}

func ffiCurveKeypair() (string, string, int) {
	var public, secret [41]C.char
	code := ffiCallResult(func() C.int { return C.zmq_curve_keypair(&public[0], &secret[0]) })
	if code != 0 {
		return "", "", code
	}
	return C.GoString(&public[0]), C.GoString(&secret[0]), 0
}
