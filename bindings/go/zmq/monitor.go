package zmq

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// ErrMonitorFrame is returned when a monitor socket yields something other
// than the two-frame event layout.
var ErrMonitorFrame = errors.New("zmq: malformed monitor event")

// SocketEvent is the bit set of lifecycle events a monitored socket reports.
type SocketEvent uint16

const (
	EventConnected               SocketEvent = 0x0001
	EventConnectDelayed          SocketEvent = 0x0002
	EventConnectRetried          SocketEvent = 0x0004
	EventListening               SocketEvent = 0x0008
	EventBindFailed              SocketEvent = 0x0010
	EventAccepted                SocketEvent = 0x0020
	EventAcceptFailed            SocketEvent = 0x0040
	EventClosed                  SocketEvent = 0x0080
	EventCloseFailed             SocketEvent = 0x0100
	EventDisconnected            SocketEvent = 0x0200
	EventMonitorStopped          SocketEvent = 0x0400
	EventHandshakeFailedNoDetail SocketEvent = 0x0800
	EventHandshakeSucceeded      SocketEvent = 0x1000
	EventHandshakeFailedProtocol SocketEvent = 0x2000
	EventHandshakeFailedAuth     SocketEvent = 0x4000
	EventAll                     SocketEvent = 0xFFFF
)

var socketEventNames = []struct {
	event SocketEvent
	name  string
}{
	{EventConnected, "CONNECTED"},
	{EventConnectDelayed, "CONNECT_DELAYED"},
	{EventConnectRetried, "CONNECT_RETRIED"},
	{EventListening, "LISTENING"},
	{EventBindFailed, "BIND_FAILED"},
	{EventAccepted, "ACCEPTED"},
	{EventAcceptFailed, "ACCEPT_FAILED"},
	{EventClosed, "CLOSED"},
	{EventCloseFailed, "CLOSE_FAILED"},
	{EventDisconnected, "DISCONNECTED"},
	{EventMonitorStopped, "MONITOR_STOPPED"},
	{EventHandshakeFailedNoDetail, "HANDSHAKE_FAILED_NO_DETAIL"},
	{EventHandshakeSucceeded, "HANDSHAKE_SUCCEEDED"},
	{EventHandshakeFailedProtocol, "HANDSHAKE_FAILED_PROTOCOL"},
	{EventHandshakeFailedAuth, "HANDSHAKE_FAILED_AUTH"},
}

func (e SocketEvent) String() string {
	if e == EventAll {
		return "ALL"
	}
	var parts []string
	rest := e
	for _, n := range socketEventNames {
		if e&n.event != 0 {
			parts = append(parts, n.name)
			rest &^= n.event
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%04x", uint16(rest)))
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

// MonitorEvent is one notification read from a monitor socket. Value carries
// the event's detail: a file descriptor, an errno or a reconnect interval.
type MonitorEvent struct {
	Event    SocketEvent
	Value    uint32
	Endpoint string
}

const monitorHeaderSize = 6

// RecvMonitorEvent reads the next event from a PAIR socket connected to a
// monitor endpoint. A malformed event is consumed whole before ErrMonitorFrame
// is returned, so the next call starts at a message boundary.
func RecvMonitorEvent(s *Socket, flags Flag) (*MonitorEvent, error) {
	header, more, err := s.recvFrame(flags)
	if err != nil {
		return nil, err
	}
	if len(header) != monitorHeaderSize || !more {
		return nil, discardRest(s, flags, more)
	}
	endpoint, more, err := s.recvFrame(flags)
	if err != nil {
		return nil, err
	}
	if more {
		return nil, discardRest(s, flags, more)
	}

	return &MonitorEvent{
		Event:    SocketEvent(binary.NativeEndian.Uint16(header[0:2])),
		Value:    binary.NativeEndian.Uint32(header[2:6]),
		Endpoint: string(endpoint),
	}, nil
}

// discardRest reads the remaining frames of a rejected message.
func discardRest(s *Socket, flags Flag, more bool) error {
	for more {
		var err error
		if _, more, err = s.recvFrame(flags); err != nil {
			return err
		}
	}
	return ErrMonitorFrame
}
