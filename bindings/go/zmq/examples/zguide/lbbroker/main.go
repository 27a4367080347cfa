// Command lbbroker is a load-balancing broker. Clients and workers run as
// goroutines; the broker routes each request to the least recently used
// worker.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/eapache/queue"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

var frontendEndpoint string
var backendEndpoint string
var clients int
var workers int

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

	frontend, err := ctx.Socket(zmq.ROUTER)
	if err != nil {
		return pkgerrors.Wrap(err, "create frontend")
	}
	if err := frontend.Bind(frontendEndpoint); err != nil {
		return pkgerrors.Wrapf(err, "bind %s", frontendEndpoint)
	}
	backend, err := ctx.Socket(zmq.ROUTER)
	if err != nil {
		return pkgerrors.Wrap(err, "create backend")
	}
	if err := backend.Bind(backendEndpoint); err != nil {
		return pkgerrors.Wrapf(err, "bind %s", backendEndpoint)
	}

	var g errgroup.Group
	for i := 0; i < clients; i++ {
		id := fmt.Sprintf("client-%d", i)
		g.Go(func() error { return client(ctx, id) })
	}
	for i := 0; i < workers; i++ {
		id := fmt.Sprintf("worker-%d", i)
		g.Go(func() error { return worker(ctx, id) })
	}

	brokerErr := broker(frontend, backend)

	frontend.Close()
	backend.Close()
	// Workers still blocked in Recv return ETERM and close their sockets.
	if err := ctx.Destroy(); err != nil {
		logrus.WithError(err).Warn("destroy context")
	}
	waitErr := g.Wait()
	if brokerErr != nil {
		return brokerErr
	}
	return waitErr
}

// broker routes until every client has had its reply.
func broker(frontend, backend *zmq.Socket) error {
	idle := queue.New()
	served := 0

	for served < clients {
		// Only accept client requests while a worker is free.
		items := []zmq.PollItem{backend.AsPollItem(zmq.POLLIN)}
		if idle.Length() > 0 {
			items = append(items, frontend.AsPollItem(zmq.POLLIN))
		}
		if _, err := zmq.Poll(items, -1); err != nil {
			return pkgerrors.Wrap(err, "poll")
		}

		if items[0].IsReadable() {
			// [worker, "", "READY"] or [worker, "", client, "", reply]
			frames, err := backend.RecvMultipart(0)
			if err != nil {
				return pkgerrors.Wrap(err, "receive from worker")
			}
			if len(frames) < 3 {
				return pkgerrors.Errorf("worker sent %d frames", len(frames))
			}
			idle.Add(frames[0])

			if len(frames) == 5 {
				if err := frontend.SendMultipart(frames[2:], 0); err != nil {
					return pkgerrors.Wrap(err, "send to client")
				}
				served++
			}
		}

		if len(items) > 1 && items[1].IsReadable() {
			// [client, "", request]
			frames, err := frontend.RecvMultipart(0)
			if err != nil {
				return pkgerrors.Wrap(err, "receive from client")
			}
			next := idle.Remove().([]byte)
			request := append([][]byte{next, nil}, frames...)
			if err := backend.SendMultipart(request, 0); err != nil {
				return pkgerrors.Wrap(err, "send to worker")
			}
		}
	}
	logrus.Infof("served %d clients, %d workers idle", served, idle.Length())
	return nil
}

func client(ctx *zmq.Context, id string) error {
	sock, err := ctx.Socket(zmq.REQ)
	if err != nil {
		return pkgerrors.Wrap(err, "create client socket")
	}
	defer sock.Close()
	if err := sock.SetIdentity([]byte(id)); err != nil {
		return pkgerrors.Wrap(err, "set identity")
	}
	if err := sock.Connect(frontendEndpoint); err != nil {
		return pkgerrors.Wrapf(err, "connect %s", frontendEndpoint)
	}

	if err := sock.SendString("HELLO", 0); err != nil {
		return pkgerrors.Wrap(err, "send request")
	}
	reply, err := sock.RecvString(0)
	if err != nil {
		return pkgerrors.Wrap(err, "receive reply")
	}
	logrus.WithField("client", id).Infof("Client: %s", reply)
	return nil
}

func worker(ctx *zmq.Context, id string) error {
	log := logrus.WithField("worker", id)

	sock, err := ctx.Socket(zmq.REQ)
	if err != nil {
		return pkgerrors.Wrap(err, "create worker socket")
	}
	defer sock.Close()
	if err := sock.SetIdentity([]byte(id)); err != nil {
		return pkgerrors.Wrap(err, "set identity")
	}
	if err := sock.Connect(backendEndpoint); err != nil {
		return pkgerrors.Wrapf(err, "connect %s", backendEndpoint)
	}

	if err := sock.SendString("READY", 0); err != nil {
		return pkgerrors.Wrap(err, "send ready")
	}
	for {
		// [client, "", request]
		frames, err := sock.RecvMultipart(0)
		if errors.Is(err, zmq.ETERM) {
			return nil
		}
		if err != nil {
			return pkgerrors.Wrap(err, "receive request")
		}
		log.Debugf("Worker: %s", frames[len(frames)-1])

		reply := [][]byte{frames[0], nil, []byte("OK")}
		if err := sock.SendMultipart(reply, 0); err != nil {
			if errors.Is(err, zmq.ETERM) {
				return nil
			}
			return pkgerrors.Wrap(err, "send reply")
		}
	}
}

// AddFlags -
func AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&frontendEndpoint, "frontend", "inproc://frontend", "endpoint clients connect to")
	fs.StringVar(&backendEndpoint, "backend", "inproc://backend", "endpoint workers connect to")
	fs.IntVar(&clients, "clients", 10, "client goroutines")
	fs.IntVar(&workers, "workers", 3, "worker goroutines")
}
