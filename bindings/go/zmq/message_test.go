//go:build cgo && (linux || darwin)

package zmq_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

func TestNewMessageEmpty(t *testing.T) {
	msg, err := zmq.NewMessage()
	require.NoError(t, err)
	defer msg.Close()

	require.Equal(t, 0, msg.Len())
	require.Empty(t, msg.Bytes())
	require.False(t, msg.More())
}

func TestNewMessageSizeIsZeroed(t *testing.T) {
	msg, err := zmq.NewMessageSize(64)
	require.NoError(t, err)
	defer msg.Close()

	require.Equal(t, 64, msg.Len())
	require.Equal(t, make([]byte, 64), msg.Bytes())

	copy(msg.Bytes(), "hello")
	require.Equal(t, []byte("hello"), msg.Bytes()[:5])

	_, err = zmq.NewMessageSize(-1)
	require.ErrorIs(t, err, zmq.EINVAL)
}

func TestMessageEquality(t *testing.T) {
	inputs := [][]byte{nil, {0}, []byte("foo"), bytes.Repeat([]byte{0xab}, 1024)}
	for _, input := range inputs {
		a, err := zmq.NewMessageFromBytes(input)
		require.NoError(t, err)
		b, err := zmq.NewMessageFromBytes(input)
		require.NoError(t, err)
		require.True(t, a.Equal(b))

		other, err := zmq.NewMessageFromBytes(append([]byte{1}, input...))
		require.NoError(t, err)
		require.False(t, a.Equal(other))

		require.NoError(t, a.Close())
		require.NoError(t, b.Close())
		require.NoError(t, other.Close())
	}
}

func TestMessageStr(t *testing.T) {
	msg, err := zmq.NewMessageFromBytes([]byte("bäz"))
	require.NoError(t, err)
	defer msg.Close()
	str, ok := msg.Str()
	require.True(t, ok)
	require.Equal(t, "bäz", str)

	bad, err := zmq.NewMessageFromBytes([]byte{0xff, 0xb7})
	require.NoError(t, err)
	defer bad.Close()
	_, ok = bad.Str()
	require.False(t, ok)
}

func TestMessageCloseIdempotent(t *testing.T) {
	before := zmq.ReadStats().Messages
	msg, err := zmq.NewMessageFromBytes([]byte("x"))
	require.NoError(t, err)
	require.Equal(t, before+1, zmq.ReadStats().Messages)

	require.NoError(t, msg.Close())
	require.NoError(t, msg.Close())
	require.Equal(t, before, zmq.ReadStats().Messages)

	require.Nil(t, msg.Bytes())
	require.Equal(t, 0, msg.Len())
	require.Equal(t, "Message(closed)", msg.String())
	_, ok := msg.Gets("Socket-Type")
	require.False(t, ok)
}

func TestRecvIntoClosedMessage(t *testing.T) {
	ctx := newContext(t)
	sock := newSocket(t, ctx, zmq.PULL)
	msg, err := zmq.NewMessage()
	require.NoError(t, err)
	require.NoError(t, msg.Close())
	require.ErrorIs(t, sock.Recv(msg, zmq.DONTWAIT), zmq.ErrMessageClosed)
}

func TestOwnedMessageMatchesCopy(t *testing.T) {
	input := bytes.Repeat([]byte("owned"), 20)
	copied, err := zmq.NewMessageFromBytes(input)
	require.NoError(t, err)
	defer copied.Close()

	owned, err := zmq.NewMessageOwned(append([]byte{}, input...))
	require.NoError(t, err)
	defer owned.Close()

	require.True(t, owned.Equal(copied))
}

func TestOwnedMessageReleasedOnce(t *testing.T) {
	before := zmq.ReadStats().OwnedBuffers

	msg, err := zmq.NewMessageOwned(make([]byte, 42))
	require.NoError(t, err)
	require.Equal(t, before+1, zmq.ReadStats().OwnedBuffers)

	require.NoError(t, msg.Close())
	require.Equal(t, before, zmq.ReadStats().OwnedBuffers)
	require.NoError(t, msg.Close())
	require.Equal(t, before, zmq.ReadStats().OwnedBuffers)
}

func TestOwnedMessageSentAcrossInproc(t *testing.T) {
	ctx := newContext(t)
	push := newSocket(t, ctx, zmq.PUSH)
	pull := newSocket(t, ctx, zmq.PULL)
	require.NoError(t, pull.Bind("inproc://owned"))
	require.NoError(t, push.Connect("inproc://owned"))

	before := zmq.ReadStats().OwnedBuffers
	msg, err := zmq.NewMessageOwned([]byte("zero-copy payload"))
	require.NoError(t, err)
	require.NoError(t, push.SendMessage(msg, 0))

	received, err := pull.RecvMessage(0)
	require.NoError(t, err)
	require.Equal(t, []byte("zero-copy payload"), received.Bytes())
	require.NoError(t, received.Close())

	require.Eventually(t, func() bool {
		return zmq.ReadStats().OwnedBuffers == before
	}, 2*time.Second, 10*time.Millisecond)
}

func TestOwnedEmptyBuffer(t *testing.T) {
	msg, err := zmq.NewMessageOwned(nil)
	require.NoError(t, err)
	defer msg.Close()
	require.Equal(t, 0, msg.Len())
}

func TestMessageProperties(t *testing.T) {
	if !versionAtLeast(4, 1) {
		t.Skip("libzmq older than 4.1")
	}
	sender, receiver := newSocketPair(t)
	require.NoError(t, sender.SendString("foo", 0))

	msg, err := receiver.RecvMessage(0)
	require.NoError(t, err)
	defer msg.Close()

	socketType, ok := msg.Gets("Socket-Type")
	require.True(t, ok)
	require.Equal(t, "REQ", socketType)

	raw, ok := msg.Property("Socket-Type")
	require.True(t, ok)
	require.Equal(t, []byte("REQ"), raw)

	_, ok = msg.Gets("No-Such-Property")
	require.False(t, ok)
}
