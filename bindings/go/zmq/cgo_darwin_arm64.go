//go:build cgo && darwin && arm64

package zmq

/*
#cgo CFLAGS: -I/opt/homebrew/include
#cgo LDFLAGS: -L/opt/homebrew/lib -lzmq
#include <zmq.h>
*/
import "C"
