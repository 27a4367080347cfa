//go:build cgo && (linux || darwin)

package zmq_test

import (
	"errors"
	"net"
	"os"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

func TestExchangeMessages(t *testing.T) {
	sender, receiver := newSocketPair(t)

	require.NoError(t, sender.SendString("foo", 0))
	msg, err := receiver.RecvMessage(0)
	require.NoError(t, err)
	defer msg.Close()
	require.Equal(t, []byte("foo"), msg.Bytes())
	str, ok := msg.Str()
	require.True(t, ok)
	require.Equal(t, "foo", str)
	require.Equal(t, "[102 111 111]", msg.String())

	require.NoError(t, receiver.SendString("bar", 0))
	reply, err := sender.RecvMessage(0)
	require.NoError(t, err)
	defer reply.Close()
	require.Equal(t, []byte("bar"), reply.Bytes())
}

func TestExchangeBytes(t *testing.T) {
	sender, receiver := newSocketPair(t)

	require.NoError(t, sender.Send([]byte("bar"), 0))
	data, err := receiver.RecvBytes(0)
	require.NoError(t, err)
	require.Equal(t, []byte("bar"), data)

	require.NoError(t, receiver.SendString("a quite long string", 0))
	buf := make([]byte, 10)
	n, err := sender.RecvInto(buf, 0)
	require.NoError(t, err)
	require.Equal(t, len("a quite long string"), n)
	require.Equal(t, []byte("a quite lo"), buf)
}

func TestExchangeStrings(t *testing.T) {
	sender, receiver := newSocketPair(t)

	require.NoError(t, sender.SendString("bäz", 0))
	str, err := receiver.RecvString(0)
	require.NoError(t, err)
	require.Equal(t, "bäz", str)

	require.NoError(t, receiver.Send([]byte{0xff, 0xb7}, 0))
	_, err = sender.RecvString(0)
	var notUTF8 *zmq.NotUTF8Error
	require.ErrorAs(t, err, &notUTF8)
	require.Equal(t, []byte{0xff, 0xb7}, notUTF8.Data)
}

func TestExchangeMultipart(t *testing.T) {
	sender, receiver := newSocketPair(t)

	require.NoError(t, sender.SendMultipart([][]byte{[]byte("foo"), []byte("bar")}, 0))
	frames, err := receiver.RecvMultipart(0)
	require.NoError(t, err)
	require.Equal(t, [][]byte{[]byte("foo"), []byte("bar")}, frames)

	require.NoError(t, receiver.SendString("foo", zmq.SNDMORE))
	require.NoError(t, receiver.SendString("bar", 0))

	first, err := sender.RecvMessage(0)
	require.NoError(t, err)
	defer first.Close()
	require.True(t, first.More())
	more, err := sender.RcvMore()
	require.NoError(t, err)
	require.True(t, more)
	require.Equal(t, []byte("foo"), first.Bytes())

	second, err := sender.RecvMessage(0)
	require.NoError(t, err)
	defer second.Close()
	require.False(t, second.More())
	more, err = sender.RcvMore()
	require.NoError(t, err)
	require.False(t, more)
	require.Equal(t, []byte("bar"), second.Bytes())
}

func TestSocketPoll(t *testing.T) {
	sender, receiver := newSocketPair(t)

	n, err := receiver.Poll(zmq.POLLIN, 100)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	require.NoError(t, sender.SendString("Hello!", 0))
	items := []zmq.PollItem{receiver.AsPollItem(zmq.POLLIN)}
	n, err = zmq.Poll(items, 1000)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, zmq.POLLIN, items[0].Revents())
	require.True(t, items[0].IsReadable())
	require.False(t, items[0].IsWritable())
	require.False(t, items[0].IsError())
	require.True(t, items[0].HasSocket())
	require.False(t, items[0].HasFD())
}

func TestSendFromREPBeforeRecv(t *testing.T) {
	ctx := newContext(t)
	sock := newSocket(t, ctx, zmq.REP)

	err := sock.SendString("...", 0)
	require.ErrorIs(t, err, zmq.EFSM)
	require.Equal(t, zmq.EFSM.Error(), err.Error())
}

func TestSocketTypeRoundTrip(t *testing.T) {
	ctx := newContext(t)
	types := []zmq.SocketType{
		zmq.PAIR, zmq.PUB, zmq.SUB, zmq.REQ, zmq.REP, zmq.DEALER,
		zmq.ROUTER, zmq.PULL, zmq.PUSH, zmq.XPUB, zmq.XSUB, zmq.STREAM,
	}
	for _, typ := range types {
		sock := newSocket(t, ctx, typ)
		got, err := sock.Type()
		require.NoError(t, err)
		require.Equal(t, typ, got)
	}
}

func TestStreamSocketAcceptsTCP(t *testing.T) {
	ctx := newContext(t)
	sock := newSocket(t, ctx, zmq.STREAM)
	require.NoError(t, sock.Bind("tcp://127.0.0.1:*"))

	endpoint, err := sock.LastEndpoint()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(endpoint, "tcp://"))

	conn, err := net.Dial("tcp", strings.TrimPrefix(endpoint, "tcp://"))
	require.NoError(t, err)
	require.NoError(t, conn.Close())
}

func TestDisconnect(t *testing.T) {
	sender, receiver := newSocketPair(t)

	endpoint, err := receiver.LastEndpoint()
	require.NoError(t, err)
	require.NoError(t, sender.Disconnect(endpoint))
	require.ErrorIs(t, sender.SendString("foo", zmq.DONTWAIT), zmq.EAGAIN)
}

func TestDisconnectUnknownEndpoint(t *testing.T) {
	sender, _ := newSocketPair(t)
	require.ErrorIs(t, sender.Disconnect("tcp://192.0.2.1:2233"), zmq.ENOENT)
}

func TestUnbind(t *testing.T) {
	ctx := newContext(t)
	sock := newSocket(t, ctx, zmq.PULL)
	require.NoError(t, sock.Bind("tcp://127.0.0.1:*"))
	endpoint, err := sock.LastEndpoint()
	require.NoError(t, err)
	require.NoError(t, sock.Unbind(endpoint))
	require.ErrorIs(t, sock.Unbind(endpoint), zmq.ENOENT)
}

func TestEndpointWithNulRejected(t *testing.T) {
	ctx := newContext(t)
	sock := newSocket(t, ctx, zmq.PULL)
	require.ErrorIs(t, sock.Bind("inproc://a\x00b"), zmq.EINVAL)
}

func TestInvalidEndpoint(t *testing.T) {
	ctx := newContext(t)
	sock := newSocket(t, ctx, zmq.PULL)
	require.ErrorIs(t, sock.Bind("nonsense://here"), zmq.EPROTONOSUPPORT)
}

func TestSocketCloseIdempotent(t *testing.T) {
	ctx := newContext(t)
	sock, err := ctx.Socket(zmq.PUSH)
	require.NoError(t, err)

	require.NoError(t, sock.Close())
	require.NoError(t, sock.Close())

	require.ErrorIs(t, sock.Bind("inproc://closed"), zmq.ErrSocketClosed)
	require.ErrorIs(t, sock.SendString("x", 0), zmq.ErrSocketClosed)
	_, err = sock.Type()
	require.ErrorIs(t, err, zmq.ErrSocketClosed)
	_, err = sock.Poll(zmq.POLLIN, 0)
	require.ErrorIs(t, err, zmq.ErrSocketClosed)
	_, err = zmq.Poll([]zmq.PollItem{sock.AsPollItem(zmq.POLLIN)}, 0)
	require.ErrorIs(t, err, zmq.ErrSocketClosed)
}

func TestSendMessageConsumesOnFailure(t *testing.T) {
	ctx := newContext(t)
	sock := newSocket(t, ctx, zmq.REP)

	before := zmq.ReadStats().Messages
	msg, err := zmq.NewMessageFromBytes([]byte("x"))
	require.NoError(t, err)
	require.ErrorIs(t, sock.SendMessage(msg, 0), zmq.EFSM)
	require.Equal(t, before, zmq.ReadStats().Messages)
	require.Nil(t, msg.Bytes())
}

func TestXPubVerbose(t *testing.T) {
	ctx := newContext(t)
	xpub := newSocket(t, ctx, zmq.XPUB)
	sub := newSocket(t, ctx, zmq.SUB)

	require.NoError(t, xpub.Bind("inproc://set_xpub_verbose"))
	require.NoError(t, xpub.SetXPubVerbose(true))
	require.NoError(t, sub.Connect("inproc://set_xpub_verbose"))

	for i := 0; i < 2; i++ {
		require.NoError(t, sub.Subscribe([]byte("topic")))
		event, err := xpub.RecvBytes(0)
		require.NoError(t, err)
		require.Equal(t, byte(1), event[0])
		require.Equal(t, []byte("topic"), event[1:])
	}
}

func TestXPubWelcomeMessage(t *testing.T) {
	ctx := newContext(t)
	xpub := newSocket(t, ctx, zmq.XPUB)
	require.NoError(t, xpub.Bind("inproc://xpub_welcome_msg"))
	welcome := "welcome"
	require.NoError(t, xpub.SetXPubWelcomeMsg(&welcome))

	sub := newSocket(t, ctx, zmq.SUB)
	require.NoError(t, sub.Subscribe(nil))
	require.NoError(t, sub.Connect("inproc://xpub_welcome_msg"))

	fromPub, err := xpub.RecvBytes(0)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01}, fromPub)

	fromSub, err := sub.RecvString(0)
	require.NoError(t, err)
	require.Equal(t, "welcome", fromSub)
}

func TestConflatingReceiver(t *testing.T) {
	ctx := newContext(t)
	receiver := newSocket(t, ctx, zmq.PULL)
	require.NoError(t, receiver.SetConflate(true))
	require.NoError(t, receiver.SetRcvTimeo(5000))
	require.NoError(t, receiver.Bind("tcp://127.0.0.1:*"))
	endpoint, err := receiver.LastEndpoint()
	require.NoError(t, err)

	sender := newSocket(t, ctx, zmq.PUSH)
	require.NoError(t, sender.Connect(endpoint))

	stop := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		for {
			select {
			case <-stop:
				done <- nil
				return
			default:
			}
			if err := sender.SendString("bar", zmq.DONTWAIT); err != nil && !errors.Is(err, zmq.EAGAIN) {
				done <- err
				return
			}
		}
	}()

	for i := 0; i < 100; i++ {
		data, err := receiver.RecvBytes(0)
		require.NoError(t, err)
		require.Equal(t, []byte("bar"), data)
	}
	close(stop)
	require.NoError(t, <-done)
}

func TestGetFDStable(t *testing.T) {
	ctx := newContext(t)
	a := newSocket(t, ctx, zmq.REQ)
	b := newSocket(t, ctx, zmq.REQ)

	fdA, err := a.FD()
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := a.FD()
		require.NoError(t, err)
		require.Equal(t, fdA, again)
	}
	fdB, err := b.FD()
	require.NoError(t, err)
	require.NotEqual(t, fdA, fdB)

	_, err = a.Events()
	require.NoError(t, err)
}

func TestPollFD(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	items := []zmq.PollItem{zmq.NewFDPollItem(int(r.Fd()), zmq.POLLIN)}
	require.True(t, items[0].HasFD())
	require.False(t, items[0].HasSocket())

	n, err := zmq.Poll(items, 0)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	_, err = w.Write([]byte("x"))
	require.NoError(t, err)
	n, err = zmq.Poll(items, 1000)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.True(t, items[0].IsReadable())
}

// pollUnreferenced polls a socket nobody holds once the call starts.
func pollUnreferenced(ctx *zmq.Context) (int, error) {
	sock, err := ctx.Socket(zmq.PULL)
	if err != nil {
		return 0, err
	}
	if err := sock.SetLinger(0); err != nil {
		return 0, err
	}
	return sock.Poll(zmq.POLLIN, 300)
}

func TestPollKeepsSocketAlive(t *testing.T) {
	ctx := newContext(t)
	before := zmq.ReadStats().Sockets

	stop := make(chan struct{})
	gcDone := make(chan struct{})
	go func() {
		defer close(gcDone)
		for {
			select {
			case <-stop:
				return
			default:
				runtime.GC()
				time.Sleep(time.Millisecond)
			}
		}
	}()

	n, err := pollUnreferenced(ctx)
	close(stop)
	<-gcDone
	require.NoError(t, err)
	require.Equal(t, 0, n)

	// The dropped socket is still reclaimed once the call is over, so the
	// context can be destroyed at cleanup.
	require.Eventually(t, func() bool {
		runtime.GC()
		return zmq.ReadStats().Sockets <= before
	}, 5*time.Second, 10*time.Millisecond)
}
