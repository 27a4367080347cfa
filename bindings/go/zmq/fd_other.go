//go:build !unix

package zmq

// On Windows fd_t is a SOCKET handle.
type nativeFD uintptr
