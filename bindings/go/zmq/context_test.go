//go:build cgo && (linux || darwin)

package zmq_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

func TestContextIOThreads(t *testing.T) {
	ctx := newContext(t)

	n, err := ctx.IOThreads()
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.NoError(t, ctx.SetIOThreads(0))
	n, err = ctx.IOThreads()
	require.NoError(t, err)
	require.Equal(t, 0, n)

	require.NoError(t, ctx.SetIOThreads(7))
	n, err = ctx.IOThreads()
	require.NoError(t, err)
	require.Equal(t, 7, n)

	require.Error(t, ctx.SetIOThreads(-1))
}

func TestContextOptions(t *testing.T) {
	ctx, err := zmq.NewContext(zmq.WithIOThreads(2), zmq.WithMaxSockets(64), zmq.WithIPv6(true))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, ctx.Destroy())
	}()

	n, err := ctx.IOThreads()
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = ctx.MaxSockets()
	require.NoError(t, err)
	require.Equal(t, 64, n)

	ipv6, err := ctx.IPv6()
	require.NoError(t, err)
	require.True(t, ipv6)

	require.NoError(t, ctx.SetBlocky(false))
	blocky, err := ctx.Blocky()
	require.NoError(t, err)
	require.False(t, blocky)
}

func TestNewContextRejectsInvalidOption(t *testing.T) {
	before := zmq.ReadStats().Contexts
	_, err := zmq.NewContext(zmq.WithIOThreads(-1))
	require.ErrorIs(t, err, zmq.EINVAL)
	require.Equal(t, before, zmq.ReadStats().Contexts)
}

func TestContextDestroyTwice(t *testing.T) {
	ctx, err := zmq.NewContext()
	require.NoError(t, err)

	require.NoError(t, ctx.Destroy())
	require.ErrorIs(t, ctx.Destroy(), zmq.EFAULT)

	_, err = ctx.Socket(zmq.REQ)
	require.ErrorIs(t, err, zmq.ErrContextTerminated)
	_, err = ctx.IOThreads()
	require.ErrorIs(t, err, zmq.ErrContextTerminated)
}

func TestContextStats(t *testing.T) {
	before := zmq.ReadStats()
	ctx, err := zmq.NewContext()
	require.NoError(t, err)
	sock, err := ctx.Socket(zmq.PAIR)
	require.NoError(t, err)

	during := zmq.ReadStats()
	require.Equal(t, before.Contexts+1, during.Contexts)
	require.Equal(t, before.Sockets+1, during.Sockets)

	require.NoError(t, sock.Close())
	require.NoError(t, ctx.Destroy())

	after := zmq.ReadStats()
	require.Equal(t, before.Contexts, after.Contexts)
	require.Equal(t, before.Sockets, after.Sockets)
}

func TestContextDestroyWaitsForOpenSocket(t *testing.T) {
	ctx, err := zmq.NewContext()
	require.NoError(t, err)
	sock, err := ctx.Socket(zmq.PAIR)
	require.NoError(t, err)
	require.NoError(t, sock.SetLinger(0))

	done := make(chan error, 1)
	go func() { done <- ctx.Destroy() }()

	select {
	case err := <-done:
		t.Fatalf("Destroy returned %v with a socket still open", err)
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, sock.Close())
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Destroy did not return after the socket was closed")
	}
}

func TestContextDestroyInterruptsBlockedRecv(t *testing.T) {
	ctx, err := zmq.NewContext()
	require.NoError(t, err)
	sock, err := ctx.Socket(zmq.PULL)
	require.NoError(t, err)
	require.NoError(t, sock.SetLinger(0))
	require.NoError(t, sock.Bind("inproc://destroy-interrupts-recv"))

	recvErr := make(chan error, 1)
	go func() {
		_, err := sock.RecvBytes(0)
		recvErr <- err
		// The context cannot finish terminating until this socket is closed.
		_ = sock.Close()
	}()

	destroyed := make(chan error, 1)
	go func() { destroyed <- ctx.Destroy() }()

	select {
	case err := <-recvErr:
		require.ErrorIs(t, err, zmq.ETERM)
	case <-time.After(5 * time.Second):
		t.Fatal("blocked receive did not return after Destroy started")
	}
	select {
	case err := <-destroyed:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Destroy did not return after the socket was closed")
	}
}

func TestContextOutlivesScopeWhileSocketOpen(t *testing.T) {
	sock := func() *zmq.Socket {
		ctx, err := zmq.NewContext()
		require.NoError(t, err)
		s, err := ctx.Socket(zmq.REQ)
		require.NoError(t, err)
		return s
	}()

	typ, err := sock.Type()
	require.NoError(t, err)
	require.Equal(t, zmq.REQ, typ)
	require.NoError(t, sock.Close())
}
