//go:build cgo && (linux || darwin)

package zmq_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

func versionAtLeast(major, minor int) bool {
	maj, mnr, _ := zmq.Version()
	return maj > major || (maj == major && mnr >= minor)
}

func requireCapability(t *testing.T, capability string) {
	t.Helper()
	supported, known := zmq.Has(capability)
	if !known || !supported {
		t.Skipf("libzmq built without %s", capability)
	}
}

// newContext returns a context destroyed at cleanup. Sockets made with
// newSocket are closed first.
func newContext(t *testing.T) *zmq.Context {
	t.Helper()
	ctx, err := zmq.NewContext()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, ctx.Destroy())
	})
	return ctx
}

func newSocket(t *testing.T, ctx *zmq.Context, typ zmq.SocketType) *zmq.Socket {
	t.Helper()
	sock, err := ctx.Socket(typ)
	require.NoError(t, err)
	require.NoError(t, sock.SetLinger(0))
	t.Cleanup(func() {
		require.NoError(t, sock.Close())
	})
	return sock
}

// newSocketPair connects a REQ client to a REP server over loopback tcp with
// one second timeouts so no call blocks forever.
func newSocketPair(t *testing.T) (*zmq.Socket, *zmq.Socket) {
	t.Helper()
	ctx := newContext(t)
	sender := newSocket(t, ctx, zmq.REQ)
	receiver := newSocket(t, ctx, zmq.REP)

	for _, sock := range []*zmq.Socket{sender, receiver} {
		require.NoError(t, sock.SetSndTimeo(1000))
		require.NoError(t, sock.SetRcvTimeo(1000))
	}
	if versionAtLeast(4, 2) {
		require.NoError(t, sender.SetConnectTimeout(1000))
	}

	require.NoError(t, receiver.Bind("tcp://127.0.0.1:*"))
	endpoint, err := receiver.LastEndpoint()
	require.NoError(t, err)
	require.NoError(t, sender.Connect(endpoint))
	return sender, receiver
}
