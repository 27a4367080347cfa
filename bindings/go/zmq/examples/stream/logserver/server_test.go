//go:build cgo && (linux || darwin)

package main

import (
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thejerf/suture"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

type lineRecorder struct {
	mu    sync.Mutex
	lines []string
	peers map[string]bool
}

func (r *lineRecorder) handle(peer string, line []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, string(line))
	if r.peers == nil {
		r.peers = make(map[string]bool)
	}
	r.peers[peer] = true
}

func (r *lineRecorder) snapshot() ([]string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...), len(r.peers)
}

func startLogServer(t *testing.T, rec *lineRecorder) string {
	t.Helper()

	ctx, err := zmq.NewContext()
	require.NoError(t, err)

	server := NewLogServer(ctx, "tcp://127.0.0.1:*", rec.handle, logrus.WithField("test", t.Name()))
	server.interval = 20 * time.Millisecond

	supervisor := suture.NewSimple(t.Name())
	supervisor.Add(server)
	supervisor.ServeBackground()
	t.Cleanup(func() {
		supervisor.Stop()
		require.NoError(t, ctx.Destroy())
	})

	select {
	case address := <-server.Bound():
		return strings.TrimPrefix(address, "tcp://")
	case <-time.After(5 * time.Second):
		t.Fatal("log server did not bind")
		return ""
	}
}

func TestLogServerSplitsLines(t *testing.T) {
	rec := &lineRecorder{}
	address := startLogServer(t, rec)

	conn, err := net.Dial("tcp", address)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("first\r\nsec"))
	require.NoError(t, err)
	_, err = conn.Write([]byte("ond\nthird\n"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		lines, _ := rec.snapshot()
		return len(lines) == 3
	}, 5*time.Second, 10*time.Millisecond)

	lines, peers := rec.snapshot()
	assert.Equal(t, []string{"first", "second", "third"}, lines)
	assert.Equal(t, 1, peers)
}

func TestLogServerFlushesOnDisconnect(t *testing.T) {
	rec := &lineRecorder{}
	address := startLogServer(t, rec)

	for _, text := range []string{"alpha", "beta"} {
		conn, err := net.Dial("tcp", address)
		require.NoError(t, err)
		_, err = conn.Write([]byte(text))
		require.NoError(t, err)
		require.NoError(t, conn.Close())
	}

	require.Eventually(t, func() bool {
		lines, _ := rec.snapshot()
		return len(lines) == 2
	}, 5*time.Second, 10*time.Millisecond)

	lines, peers := rec.snapshot()
	assert.ElementsMatch(t, []string{"alpha", "beta"}, lines)
	assert.Equal(t, 2, peers)
}
