package zmq

import (
	"runtime"
	"strings"
	"unicode/utf8"
	"unsafe"
)

// Socket wraps a libzmq socket handle.
//
// A Socket may be handed to another goroutine but must not be used from two
// goroutines at once, as libzmq sockets are not thread safe.
type Socket struct {
	ctx    *Context
	handle unsafe.Pointer
	closed bool
}

func newSocket(ctx *Context, handle unsafe.Pointer) *Socket {
	s := &Socket{ctx: ctx, handle: handle}
	live.sockets.Add(1)
	runtime.SetFinalizer(s, func(s *Socket) {
		log().Debug("socket dropped without Close")
		if err := s.Close(); err != nil {
			log().WithError(err).Warn("closing dropped socket failed")
		}
	})
	return s
}

func (s *Socket) getHandle() (unsafe.Pointer, error) {
	if s == nil || s.closed || s.handle == nil {
		return nil, ErrSocketClosed
	}
	return s.handle, nil
}

// Close releases the socket handle. Close is idempotent.
func (s *Socket) Close() error {
	if s == nil || s.closed {
		return nil
	}

	if err := checkResult(ffiClose(s.handle)); err != nil {
		return err
	}
	s.handle = nil
	s.closed = true
	s.ctx = nil
	live.sockets.Add(-1)
	runtime.SetFinalizer(s, nil)
	return nil
}

// Type returns the pattern the socket was created with.
func (s *Socket) Type() (SocketType, error) {
	v, err := getInt32(s, optType)
	return SocketType(v), err
}

func checkEndpoint(endpoint string) error {
	if strings.IndexByte(endpoint, 0) >= 0 {
		return EINVAL
	}
	return nil
}

// Bind accepts incoming connections on endpoint.
func (s *Socket) Bind(endpoint string) error {
	handle, err := s.getHandle()
	if err != nil {
		return err
	}
	defer runtime.KeepAlive(s)
	if err := checkEndpoint(endpoint); err != nil {
		return err
	}
	return checkResult(ffiBind(handle, endpoint))
}

// Connect creates an outgoing connection to endpoint.
func (s *Socket) Connect(endpoint string) error {
	handle, err := s.getHandle()
	if err != nil {
		return err
	}
	defer runtime.KeepAlive(s)
	if err := checkEndpoint(endpoint); err != nil {
		return err
	}
	return checkResult(ffiConnect(handle, endpoint))
}

// Unbind stops accepting connections on endpoint.
func (s *Socket) Unbind(endpoint string) error {
	handle, err := s.getHandle()
	if err != nil {
		return err
	}
	defer runtime.KeepAlive(s)
	if err := checkEndpoint(endpoint); err != nil {
		return err
	}
	return checkResult(ffiUnbind(handle, endpoint))
}

// Disconnect drops the connection to endpoint. ENOENT means the socket was
// never connected there.
func (s *Socket) Disconnect(endpoint string) error {
	handle, err := s.getHandle()
	if err != nil {
		return err
	}
	defer runtime.KeepAlive(s)
	if err := checkEndpoint(endpoint); err != nil {
		return err
	}
	return checkResult(ffiDisconnect(handle, endpoint))
}

// Send queues data as one frame. The bytes are copied.
func (s *Socket) Send(data []byte, flags Flag) error {
	if _, err := s.getHandle(); err != nil {
		return err
	}
	msg, err := NewMessageFromBytes(data)
	if err != nil {
		return err
	}
	return s.SendMessage(msg, flags)
}

// SendString queues str as one frame.
func (s *Socket) SendString(str string, flags Flag) error {
	return s.Send([]byte(str), flags)
}

// SendMessage queues msg. The message is consumed: it is closed whether or not
// the send succeeds.
func (s *Socket) SendMessage(msg *Message, flags Flag) error {
	defer msg.Close()

	handle, err := s.getHandle()
	if err != nil {
		return err
	}
	defer runtime.KeepAlive(s)
	msgHandle, err := msg.getHandle()
	if err != nil {
		return err
	}
	_, code := ffiMsgSend(msgHandle, handle, int(flags))
	return checkResult(code)
}

// SendMultipart sends frames as one multipart message. SNDMORE is set on every
// frame but the last.
func (s *Socket) SendMultipart(frames [][]byte, flags Flag) error {
	last := len(frames) - 1
	for i, frame := range frames {
		f := flags
		if i < last {
			f |= SNDMORE
		}
		if err := s.Send(frame, f); err != nil {
			return err
		}
	}
	return nil
}

// Recv receives one frame into msg, replacing its content.
func (s *Socket) Recv(msg *Message, flags Flag) error {
	handle, err := s.getHandle()
	if err != nil {
		return err
	}
	defer runtime.KeepAlive(s)
	msgHandle, err := msg.getHandle()
	if err != nil {
		return err
	}
	defer runtime.KeepAlive(msg)
	_, code := ffiMsgRecv(msgHandle, handle, int(flags))
	return checkResult(code)
}

// RecvMessage receives one frame into a new Message.
func (s *Socket) RecvMessage(flags Flag) (*Message, error) {
	if _, err := s.getHandle(); err != nil {
		return nil, err
	}
	msg, err := NewMessage()
	if err != nil {
		return nil, err
	}
	if err := s.Recv(msg, flags); err != nil {
		_ = msg.Close()
		return nil, err
	}
	return msg, nil
}

// RecvBytes receives one frame and returns a copy of its content.
func (s *Socket) RecvBytes(flags Flag) ([]byte, error) {
	data, _, err := s.recvFrame(flags)
	return data, err
}

func (s *Socket) recvFrame(flags Flag) ([]byte, bool, error) {
	msg, err := s.RecvMessage(flags)
	if err != nil {
		return nil, false, err
	}
	defer msg.Close()

	data := append([]byte{}, msg.Bytes()...)
	return data, msg.More(), nil
}

// RecvInto receives one frame into buf. The frame is truncated to len(buf);
// the returned size is the frame's full length.
func (s *Socket) RecvInto(buf []byte, flags Flag) (int, error) {
	handle, err := s.getHandle()
	if err != nil {
		return 0, err
	}
	defer runtime.KeepAlive(s)
	n, code := ffiRecv(handle, buf, int(flags))
	if err := checkResult(code); err != nil {
		return 0, err
	}
	return n, nil
}

// RecvString receives one frame as text. A frame that is not valid UTF-8 is
// reported as a *NotUTF8Error carrying the raw bytes.
func (s *Socket) RecvString(flags Flag) (string, error) {
	data, err := s.RecvBytes(flags)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", &NotUTF8Error{Data: data}
	}
	return string(data), nil
}

// RecvMultipart receives every frame of the next message.
func (s *Socket) RecvMultipart(flags Flag) ([][]byte, error) {
	var frames [][]byte
	for {
		data, more, err := s.recvFrame(flags)
		if err != nil {
			return nil, err
		}
		frames = append(frames, data)
		if !more {
			return frames, nil
		}
	}
}

// AsPollItem returns a poll item watching the socket for events. The item of a
// closed socket is rejected by Poll. The item does not keep the socket alive;
// the caller must hold on to s until the item is no longer polled.
func (s *Socket) AsPollItem(events PollEvents) PollItem {
	handle, _ := s.getHandle()
	return PollItem{socket: handle, fd: -1, events: events}
}

// Poll waits up to timeoutMs milliseconds for events on this socket alone.
func (s *Socket) Poll(events PollEvents, timeoutMs int64) (int, error) {
	if _, err := s.getHandle(); err != nil {
		return 0, err
	}
	defer runtime.KeepAlive(s)
	items := []PollItem{s.AsPollItem(events)}
	return Poll(items, timeoutMs)
}

// Monitor publishes the socket's lifecycle events matching events on a PAIR
// socket bound at endpoint, which must be an inproc:// address. An empty
// endpoint stops monitoring.
func (s *Socket) Monitor(endpoint string, events SocketEvent) error {
	handle, err := s.getHandle()
	if err != nil {
		return err
	}
	defer runtime.KeepAlive(s)
	if err := checkEndpoint(endpoint); err != nil {
		return err
	}
	return checkResult(ffiMonitor(handle, endpoint, int(events)))
}
