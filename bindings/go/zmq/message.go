package zmq

import (
	"bytes"
	"fmt"
	"runtime"
	"unicode/utf8"
	"unsafe"
)

// Message is a single frame backed by a libzmq message descriptor.
//
// The descriptor lives in C memory and is released by Close, or by the garbage
// collector if the Message is dropped. A Message is not safe for concurrent
// use.
type Message struct {
	handle unsafe.Pointer
	closed bool
}

func newMessage(init func(handle unsafe.Pointer) int) (*Message, error) {
	handle, code := ffiMsgAlloc()
	if err := checkResult(code); err != nil {
		return nil, err
	}
	if err := checkResult(init(handle)); err != nil {
		ffiMsgFree(handle)
		return nil, err
	}

	m := &Message{handle: handle}
	live.messages.Add(1)
	runtime.SetFinalizer(m, func(m *Message) {
		_ = m.Close()
	})
	return m, nil
}

// NewMessage returns an empty message, typically used as a receive target.
func NewMessage() (*Message, error) {
	return newMessage(ffiMsgInit)
}

// NewMessageSize returns a zero-filled message of n bytes.
func NewMessageSize(n int) (*Message, error) {
	if n < 0 {
		return nil, EINVAL
	}
	m, err := newMessage(func(handle unsafe.Pointer) int { return ffiMsgInitSize(handle, n) })
	if err != nil {
		return nil, err
	}
	clear(m.Bytes())
	return m, nil
}

// NewMessageFromBytes returns a message holding a copy of data.
func NewMessageFromBytes(data []byte) (*Message, error) {
	m, err := newMessage(func(handle unsafe.Pointer) int { return ffiMsgInitSize(handle, len(data)) })
	if err != nil {
		return nil, err
	}
	copy(m.Bytes(), data)
	return m, nil
}

// NewMessageOwned hands buf to libzmq without copying. The caller must not
// touch buf afterwards; it is released once libzmq has finished with it, which
// may be after the Message is closed if the frame is still queued for sending.
func NewMessageOwned(buf []byte) (*Message, error) {
	if len(buf) == 0 {
		return NewMessage()
	}
	return newMessage(func(handle unsafe.Pointer) int { return ffiMsgInitOwned(handle, buf) })
}

func (m *Message) getHandle() (unsafe.Pointer, error) {
	if m == nil || m.closed || m.handle == nil {
		return nil, ErrMessageClosed
	}
	return m.handle, nil
}

// Close releases the descriptor. Close is idempotent.
func (m *Message) Close() error {
	if m == nil || m.closed {
		return nil
	}

	code := ffiMsgClose(m.handle)
	ffiMsgFree(m.handle)
	m.handle = nil
	m.closed = true
	live.messages.Add(-1)
	runtime.SetFinalizer(m, nil)
	return checkResult(code)
}

// Bytes returns the frame content without copying. The slice aliases native
// memory and is valid until the message is closed, sent or received into. The
// caller must keep m reachable while using the slice.
func (m *Message) Bytes() []byte {
	handle, err := m.getHandle()
	if err != nil {
		return nil
	}
	defer runtime.KeepAlive(m)
	size := ffiMsgSize(handle)
	data := ffiMsgData(handle)
	if size == 0 || data == nil {
		return []byte{}
	}
	return unsafe.Slice((*byte)(data), size)
}

func (m *Message) Len() int {
	handle, err := m.getHandle()
	if err != nil {
		return 0
	}
	defer runtime.KeepAlive(m)
	return ffiMsgSize(handle)
}

// Str returns the content as a string, or false if it is not valid UTF-8.
func (m *Message) Str() (string, bool) {
	defer runtime.KeepAlive(m)
	b := m.Bytes()
	if !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

// More reports whether more frames of the same multipart message follow.
func (m *Message) More() bool {
	handle, err := m.getHandle()
	if err != nil {
		return false
	}
	defer runtime.KeepAlive(m)
	return ffiMsgMore(handle)
}

// Gets returns a metadata property of a received message such as "Socket-Type",
// "Identity", "Peer-Address" or "User-Id". A missing property and a value that
// is not valid UTF-8 are both reported as false; use Property to tell them
// apart.
func (m *Message) Gets(name string) (string, bool) {
	raw, ok := m.Property(name)
	if !ok || !utf8.Valid(raw) {
		return "", false
	}
	return string(raw), true
}

// Property returns the raw bytes of a metadata property.
func (m *Message) Property(name string) ([]byte, bool) {
	handle, err := m.getHandle()
	if err != nil {
		return nil, false
	}
	defer runtime.KeepAlive(m)
	return ffiMsgGets(handle, name)
}

// Equal compares frame content.
func (m *Message) Equal(other *Message) bool {
	defer runtime.KeepAlive(other)
	defer runtime.KeepAlive(m)
	return bytes.Equal(m.Bytes(), other.Bytes())
}

func (m *Message) String() string {
	if _, err := m.getHandle(); err != nil {
		return "Message(closed)"
	}
	defer runtime.KeepAlive(m)
	return fmt.Sprintf("%v", m.Bytes())
}
