//go:build cgo && linux

package zmq

/*
#cgo pkg-config: libzmq
#include <zmq.h>
*/
import "C"
