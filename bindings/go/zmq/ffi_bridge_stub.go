//go:build !cgo || !(linux || darwin)

package zmq

import (
	"fmt"
	"unsafe"
)

// Without cgo on a supported platform every native call fails with ENOTSUP.

var stubErrnoNames = map[Errno]string{
	EACCES:          "Permission denied",
	EADDRINUSE:      "Address already in use",
	EAGAIN:          "Resource temporarily unavailable",
	EBUSY:           "Device or resource busy",
	ECONNREFUSED:    "Connection refused",
	EFAULT:          "Bad address",
	EINTR:           "Interrupted system call",
	EHOSTUNREACH:    "Host unreachable",
	EINPROGRESS:     "Operation in progress",
	EINVAL:          "Invalid argument",
	EMFILE:          "Too many open files",
	EMSGSIZE:        "Message too long",
	ENAMETOOLONG:    "File name too long",
	ENODEV:          "No such device",
	ENOENT:          "No such file or directory",
	ENOMEM:          "Cannot allocate memory",
	ENOTCONN:        "Transport endpoint is not connected",
	ENOTSOCK:        "Socket operation on non-socket",
	EPROTO:          "Protocol error",
	EPROTONOSUPPORT: "Protocol not supported",
	ENOTSUP:         "zmq bindings require cgo on linux or darwin",
	ENOBUFS:         "No buffer space available",
	ENETDOWN:        "Network is down",
	EADDRNOTAVAIL:   "Cannot assign requested address",
	EFSM:            "Operation cannot be accomplished in current state",
	ENOCOMPATPROTO:  "The protocol is not compatible with the socket type",
	ETERM:           "Context was terminated",
	EMTHREAD:        "No thread available",
}

func ffiUnsupported() int { return int(ENOTSUP) }

func ffiVersion() (int, int, int) { return 0, 0, 0 }

func ffiStrerror(code int) string {
	if name, ok := stubErrnoNames[Errno(code)]; ok {
		return name
	}
	return fmt.Sprintf("Unknown error %d", code)
}

func ffiHas(_ string) int { return -1 }

func ffiCtxNew() (unsafe.Pointer, int) { return nil, ffiUnsupported() }

func ffiCtxTerm(_ unsafe.Pointer) int { return ffiUnsupported() }

func ffiCtxGet(_ unsafe.Pointer, _ int) (int, int) { return -1, ffiUnsupported() }

func ffiCtxSet(_ unsafe.Pointer, _, _ int) int { return ffiUnsupported() }

func ffiSocket(_ unsafe.Pointer, _ int) (unsafe.Pointer, int) { return nil, ffiUnsupported() }

func ffiClose(_ unsafe.Pointer) int { return ffiUnsupported() }

func ffiBind(_ unsafe.Pointer, _ string) int { return ffiUnsupported() }

func ffiConnect(_ unsafe.Pointer, _ string) int { return ffiUnsupported() }

func ffiUnbind(_ unsafe.Pointer, _ string) int { return ffiUnsupported() }

func ffiDisconnect(_ unsafe.Pointer, _ string) int { return ffiUnsupported() }

func ffiGetsockopt(_ unsafe.Pointer, _ int, _ unsafe.Pointer, _ *uintptr) int {
	return ffiUnsupported()
}

func ffiSetsockopt(_ unsafe.Pointer, _ int, _ unsafe.Pointer, _ uintptr) int {
	return ffiUnsupported()
}

func ffiMonitor(_ unsafe.Pointer, _ string, _ int) int { return ffiUnsupported() }

func ffiRecv(_ unsafe.Pointer, _ []byte, _ int) (int, int) { return -1, ffiUnsupported() }

func ffiPoll(_ []PollItem, _ int64) (int, int) { return -1, ffiUnsupported() }

func ffiProxy(_, _, _ unsafe.Pointer) int { return ffiUnsupported() }

func ffiProxySteerable(_, _, _, _ unsafe.Pointer) int { return ffiUnsupported() }

func ffiMsgAlloc() (unsafe.Pointer, int) { return nil, ffiUnsupported() }

func ffiMsgFree(_ unsafe.Pointer) {}

func ffiMsgInit(_ unsafe.Pointer) int { return ffiUnsupported() }

func ffiMsgInitSize(_ unsafe.Pointer, _ int) int { return ffiUnsupported() }

func ffiMsgInitOwned(_ unsafe.Pointer, _ []byte) int { return ffiUnsupported() }

func ffiMsgClose(_ unsafe.Pointer) int { return ffiUnsupported() }

func ffiMsgData(_ unsafe.Pointer) unsafe.Pointer { return nil }

func ffiMsgSize(_ unsafe.Pointer) int { return 0 }

func ffiMsgMore(_ unsafe.Pointer) bool { return false }

func ffiMsgGets(_ unsafe.Pointer, _ string) ([]byte, bool) { return nil, false }

func ffiMsgSend(_, _ unsafe.Pointer, _ int) (int, int) { return -1, ffiUnsupported() }

func ffiMsgRecv(_, _ unsafe.Pointer, _ int) (int, int) { return -1, ffiUnsupported() }

func ffiZ85Encode(_ []byte) (string, bool) { return "", false }

func ffiZ85Decode(_ string) ([]byte, bool) { return nil, false }

func ffiCurveKeypair() (string, string, int) { return "", "", ffiUnsupported() }
