// Command mtserver is a multithreaded hello-world server: clients reach a
// ROUTER, which the proxy feeds to REP workers over inproc.
package main

import (
	"errors"
	"os"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

const workersEndpoint = "inproc://workers"

var endpoint string
var workers int
var work time.Duration

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

	clients, err := ctx.Socket(zmq.ROUTER)
	if err != nil {
		return pkgerrors.Wrap(err, "create clients socket")
	}
	if err := clients.Bind(endpoint); err != nil {
		return pkgerrors.Wrapf(err, "bind %s", endpoint)
	}

	dealer, err := ctx.Socket(zmq.DEALER)
	if err != nil {
		return pkgerrors.Wrap(err, "create workers socket")
	}
	if err := dealer.Bind(workersEndpoint); err != nil {
		return pkgerrors.Wrapf(err, "bind %s", workersEndpoint)
	}

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		id := i
		g.Go(func() error { return worker(ctx, id) })
	}

	proxyErr := zmq.Proxy(clients, dealer, nil)
	clients.Close()
	dealer.Close()
	if err := ctx.Destroy(); err != nil {
		logrus.WithError(err).Warn("destroy context")
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if errors.Is(proxyErr, zmq.ETERM) {
		return nil
	}
	return pkgerrors.Wrap(proxyErr, "proxy")
}

func worker(ctx *zmq.Context, id int) error {
	log := logrus.WithField("worker", id)

	receiver, err := ctx.Socket(zmq.REP)
	if err != nil {
		return pkgerrors.Wrap(err, "create worker socket")
	}
	defer receiver.Close()
	if err := receiver.Connect(workersEndpoint); err != nil {
		return pkgerrors.Wrapf(err, "connect %s", workersEndpoint)
	}

	for {
		request, err := receiver.RecvString(0)
		if errors.Is(err, zmq.ETERM) {
			return nil
		}
		if err != nil {
			return pkgerrors.Wrap(err, "receive request")
		}
		log.Infof("Received request: [%s]", request)
		time.Sleep(work)
		if err := receiver.SendString("World", 0); err != nil {
			if errors.Is(err, zmq.ETERM) {
				return nil
			}
			return pkgerrors.Wrap(err, "send reply")
		}
	}
}

// AddFlags -
func AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&endpoint, "bind", "tcp://*:5555", "endpoint clients connect to")
	fs.IntVar(&workers, "workers", 5, "worker goroutines")
	fs.DurationVar(&work, "work", time.Second, "simulated work per request")
}
