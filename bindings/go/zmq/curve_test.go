//go:build cgo && (linux || darwin)

package zmq_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

func TestHas(t *testing.T) {
	_, known := zmq.Has("ipc")
	if versionAtLeast(4, 1) {
		require.True(t, known)
	}
}

func TestVersion(t *testing.T) {
	major, _, _ := zmq.Version()
	require.Contains(t, []int{3, 4}, major)
}

func TestCurveKeyPair(t *testing.T) {
	requireCapability(t, "curve")
	pair, err := zmq.NewCurveKeyPair()
	require.NoError(t, err)
	require.Len(t, pair.PublicKey, 32)
	require.Len(t, pair.SecretKey, 32)
}

func TestCurveServerOption(t *testing.T) {
	requireCapability(t, "curve")
	ctx := newContext(t)
	sock := newSocket(t, ctx, zmq.REQ)

	require.NoError(t, sock.SetCurveServer(true))
	server, err := sock.CurveServer()
	require.NoError(t, err)
	require.True(t, server)
}

func TestCurveKeyOptions(t *testing.T) {
	requireCapability(t, "curve")
	ctx := newContext(t)
	sock := newSocket(t, ctx, zmq.REQ)

	public, err := zmq.Z85Decode("FX5b8g5ZnOk7$Q}^)Y&?.v3&MIe+]OU7DTKynkUL")
	require.NoError(t, err)
	secret, err := zmq.Z85Decode("s9N%S3*NKSU$6pUnpBI&K5HBd[]G$Y3yrK?mhdbS")
	require.NoError(t, err)

	require.NoError(t, sock.SetCurvePublicKey(public))
	got, err := sock.CurvePublicKey()
	require.NoError(t, err)
	require.Equal(t, public, got)

	require.NoError(t, sock.SetCurveSecretKey(secret))
	got, err = sock.CurveSecretKey()
	require.NoError(t, err)
	require.Equal(t, secret, got)

	require.NoError(t, sock.SetCurveServerKey(public))
	got, err = sock.CurveServerKey()
	require.NoError(t, err)
	require.Equal(t, public, got)
}

func TestCurveMessages(t *testing.T) {
	requireCapability(t, "curve")
	ctx := newContext(t)
	sender := newSocket(t, ctx, zmq.REQ)
	receiver := newSocket(t, ctx, zmq.REP)
	for _, sock := range []*zmq.Socket{sender, receiver} {
		require.NoError(t, sock.SetSndTimeo(5000))
		require.NoError(t, sock.SetRcvTimeo(5000))
	}

	serverPair, err := zmq.NewCurveKeyPair()
	require.NoError(t, err)
	clientPair, err := zmq.NewCurveKeyPair()
	require.NoError(t, err)

	require.NoError(t, receiver.SetCurveServer(true))
	require.NoError(t, receiver.SetCurveSecretKey(serverPair.SecretKey))

	require.NoError(t, sender.SetCurveServerKey(serverPair.PublicKey))
	require.NoError(t, sender.SetCurvePublicKey(clientPair.PublicKey))
	require.NoError(t, sender.SetCurveSecretKey(clientPair.SecretKey))

	require.NoError(t, receiver.Bind("tcp://127.0.0.1:*"))
	endpoint, err := receiver.LastEndpoint()
	require.NoError(t, err)
	require.NoError(t, sender.Connect(endpoint))

	require.NoError(t, sender.SendString("foo", 0))
	msg, err := receiver.RecvString(0)
	require.NoError(t, err)
	require.Equal(t, "foo", msg)

	require.NoError(t, receiver.SendString("bar", 0))
	reply, err := sender.RecvString(0)
	require.NoError(t, err)
	require.Equal(t, "bar", reply)

	mechanism, err := sender.Mechanism()
	require.NoError(t, err)
	require.Equal(t, zmq.MechanismCurve, mechanism)
}
