// Command asyncsrv is the asynchronous client/server pattern: DEALER clients
// talk to a ROUTER frontend whose requests fan out to DEALER workers, each of
// which may answer any number of times.
package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

const backendEndpoint = "inproc://backend"

var frontendEndpoint string
var clients int
var workers int
var duration time.Duration

func main() {
	AddFlags(pflag.CommandLine)
	pflag.Parse()
	if err := run(); err != nil {
		logrus.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	ctx, err := zmq.NewContext()
	if err != nil {
		return pkgerrors.Wrap(err, "create context")
	}

	var g errgroup.Group
	g.Go(func() error { return server(ctx) })
	for i := 0; i < clients; i++ {
		id := fmt.Sprintf("%04X-%04X", rand.Intn(0x10000), rand.Intn(0x10000))
		g.Go(func() error { return client(ctx, id) })
	}

	time.Sleep(duration)
	// Every blocked call returns ETERM once the context starts terminating.
	if err := ctx.Destroy(); err != nil {
		logrus.WithError(err).Warn("destroy context")
	}
	return g.Wait()
}

func terminated(err error) bool {
	return errors.Is(err, zmq.ETERM)
}

func client(ctx *zmq.Context, id string) error {
	log := logrus.WithField("client", id)

	sock, err := ctx.Socket(zmq.DEALER)
	if err != nil {
		return pkgerrors.Wrap(err, "create client socket")
	}
	defer sock.Close()
	if err := sock.SetLinger(0); err != nil {
		return pkgerrors.Wrap(err, "set linger")
	}
	if err := sock.SetIdentity([]byte(id)); err != nil {
		return pkgerrors.Wrap(err, "set identity")
	}
	if err := sock.Connect(frontendEndpoint); err != nil {
		return pkgerrors.Wrapf(err, "connect %s", frontendEndpoint)
	}

	for request := 1; ; request++ {
		// Drain replies for one second in 10 ms ticks, then send a request.
		for tick := 0; tick < 100; tick++ {
			n, err := sock.Poll(zmq.POLLIN, 10)
			if terminated(err) {
				return nil
			}
			if err != nil {
				return pkgerrors.Wrap(err, "poll")
			}
			if n == 0 {
				continue
			}
			reply, err := sock.RecvString(0)
			if terminated(err) {
				return nil
			}
			if err != nil {
				return pkgerrors.Wrap(err, "receive reply")
			}
			log.Info(reply)
		}
		err := sock.SendString(fmt.Sprintf("request #%d", request), 0)
		if terminated(err) {
			return nil
		}
		if err != nil {
			return pkgerrors.Wrap(err, "send request")
		}
	}
}

func server(ctx *zmq.Context) error {
	frontend, err := ctx.Socket(zmq.ROUTER)
	if err != nil {
		return pkgerrors.Wrap(err, "create frontend")
	}
	defer frontend.Close()
	if err := frontend.SetLinger(0); err != nil {
		return pkgerrors.Wrap(err, "set linger")
	}
	if err := frontend.Bind(frontendEndpoint); err != nil {
		return pkgerrors.Wrapf(err, "bind %s", frontendEndpoint)
	}

	backend, err := ctx.Socket(zmq.DEALER)
	if err != nil {
		return pkgerrors.Wrap(err, "create backend")
	}
	defer backend.Close()
	if err := backend.SetLinger(0); err != nil {
		return pkgerrors.Wrap(err, "set linger")
	}
	if err := backend.Bind(backendEndpoint); err != nil {
		return pkgerrors.Wrapf(err, "bind %s", backendEndpoint)
	}

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error { return serverWorker(ctx) })
	}

	proxyErr := zmq.Proxy(frontend, backend, nil)
	waitErr := g.Wait()
	if !terminated(proxyErr) {
		return pkgerrors.Wrap(proxyErr, "proxy")
	}
	return waitErr
}

// serverWorker echoes each request back between one and five times.
func serverWorker(ctx *zmq.Context) error {
	sock, err := ctx.Socket(zmq.DEALER)
	if err != nil {
		return pkgerrors.Wrap(err, "create worker socket")
	}
	defer sock.Close()
	if err := sock.SetLinger(0); err != nil {
		return pkgerrors.Wrap(err, "set linger")
	}
	if err := sock.Connect(backendEndpoint); err != nil {
		return pkgerrors.Wrapf(err, "connect %s", backendEndpoint)
	}

	for {
		// [identity, content]
		frames, err := sock.RecvMultipart(0)
		if terminated(err) {
			return nil
		}
		if err != nil {
			return pkgerrors.Wrap(err, "receive request")
		}

		replies := rand.Intn(5) + 1
		for i := 0; i < replies; i++ {
			time.Sleep(time.Duration(rand.Intn(1000)+1) * time.Millisecond)
			err := sock.SendMultipart(frames, 0)
			if terminated(err) {
				return nil
			}
			if err != nil {
				return pkgerrors.Wrap(err, "send reply")
			}
		}
	}
}

// AddFlags -
func AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&frontendEndpoint, "frontend", "tcp://127.0.0.1:5570", "endpoint clients connect to")
	fs.IntVar(&clients, "clients", 3, "client goroutines")
	fs.IntVar(&workers, "workers", 5, "server worker goroutines")
	fs.DurationVar(&duration, "duration", 5*time.Second, "how long to run before shutting down")
}
