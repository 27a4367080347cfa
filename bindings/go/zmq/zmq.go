// Package zmq provides Go bindings for the libzmq messaging library.
//
// The bindings are synchronous and expose the three native handles libzmq
// works with: a Context owns the engine, a Socket is created from a Context,
// and a Message is one frame in flight. The protocol, transports and socket
// patterns are libzmq's own; this package only marshals calls and errors.
package zmq

import "strings"

// SocketType selects the messaging pattern of a socket.
type SocketType int

const (
	PAIR   SocketType = 0
	PUB    SocketType = 1
	SUB    SocketType = 2
	REQ    SocketType = 3
	REP    SocketType = 4
	DEALER SocketType = 5
	ROUTER SocketType = 6
	PULL   SocketType = 7
	PUSH   SocketType = 8
	XPUB   SocketType = 9
	XSUB   SocketType = 10
	STREAM SocketType = 11
)

func (t SocketType) String() string {
	switch t {
	case PAIR:
		return "PAIR"
	case PUB:
		return "PUB"
	case SUB:
		return "SUB"
	case REQ:
		return "REQ"
	case REP:
		return "REP"
	case DEALER:
		return "DEALER"
	case ROUTER:
		return "ROUTER"
	case PULL:
		return "PULL"
	case PUSH:
		return "PUSH"
	case XPUB:
		return "XPUB"
	case XSUB:
		return "XSUB"
	case STREAM:
		return "STREAM"
	default:
		return "INVALID"
	}
}

// Flag modifies a send or receive call.
type Flag int

const (
	DONTWAIT Flag = 1
	SNDMORE  Flag = 2
)

func (f Flag) String() string {
	var parts []string
	if f&DONTWAIT != 0 {
		parts = append(parts, "DONTWAIT")
	}
	if f&SNDMORE != 0 {
		parts = append(parts, "SNDMORE")
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

// PollEvents is the readiness bit mask used by Poll and the Events option.
type PollEvents int16

const (
	POLLIN  PollEvents = 1
	POLLOUT PollEvents = 2
	POLLERR PollEvents = 4
	POLLPRI PollEvents = 8
)

func (e PollEvents) String() string {
	var parts []string
	if e&POLLIN != 0 {
		parts = append(parts, "POLLIN")
	}
	if e&POLLOUT != 0 {
		parts = append(parts, "POLLOUT")
	}
	if e&POLLERR != 0 {
		parts = append(parts, "POLLERR")
	}
	if e&POLLPRI != 0 {
		parts = append(parts, "POLLPRI")
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

// Mechanism is the security mechanism negotiated by a socket.
type Mechanism int

const (
	MechanismNull   Mechanism = 0
	MechanismPlain  Mechanism = 1
	MechanismCurve  Mechanism = 2
	MechanismGSSAPI Mechanism = 3
)

func (m Mechanism) String() string {
	switch m {
	case MechanismNull:
		return "NULL"
	case MechanismPlain:
		return "PLAIN"
	case MechanismCurve:
		return "CURVE"
	case MechanismGSSAPI:
		return "GSSAPI"
	default:
		return "INVALID"
	}
}

// Version reports the version of the linked libzmq.
func Version() (major, minor, patch int) {
	return ffiVersion()
}

// Has asks libzmq whether it was built with an optional capability such as
// "ipc", "pgm", "tipc", "norm", "curve" or "gssapi".
//
// known is false when the linked libzmq predates zmq_has.
func Has(capability string) (supported, known bool) {
	switch ffiHas(capability) {
	case 1:
		return true, true
	case 0:
		return false, true
	default:
		return false, false
	}
}
