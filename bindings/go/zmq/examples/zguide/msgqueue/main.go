// Command msgqueue is a shared queue: a ROUTER frontend for clients and a
// DEALER backend for services, joined by the built-in proxy.
package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

var frontendEndpoint string
var backendEndpoint string

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
		return errors.Wrap(err, "create context")
	}
	defer ctx.Destroy()

	frontend, err := ctx.Socket(zmq.ROUTER)
	if err != nil {
		return errors.Wrap(err, "create frontend")
	}
	defer frontend.Close()
	if err := frontend.Bind(frontendEndpoint); err != nil {
		return errors.Wrapf(err, "bind %s", frontendEndpoint)
	}

	backend, err := ctx.Socket(zmq.DEALER)
	if err != nil {
		return errors.Wrap(err, "create backend")
	}
	defer backend.Close()
	if err := backend.Bind(backendEndpoint); err != nil {
		return errors.Wrapf(err, "bind %s", backendEndpoint)
	}

	logrus.Infof("queue running between %s and %s", frontendEndpoint, backendEndpoint)
	return errors.Wrap(zmq.Proxy(frontend, backend, nil), "proxy")
}

// AddFlags -
func AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&frontendEndpoint, "frontend", "tcp://*:5559", "endpoint clients connect to")
	fs.StringVar(&backendEndpoint, "backend", "tcp://*:5560", "endpoint services connect to")
}
