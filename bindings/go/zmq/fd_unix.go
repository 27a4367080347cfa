//go:build unix

package zmq

// nativeFD matches the width of libzmq's fd_t.
type nativeFD int32
