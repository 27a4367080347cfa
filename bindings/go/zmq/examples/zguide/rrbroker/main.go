// Command rrbroker is a request-reply broker that forwards whole multipart
// messages between a ROUTER frontend and a DEALER backend.
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

	items := []zmq.PollItem{
		frontend.AsPollItem(zmq.POLLIN),
		backend.AsPollItem(zmq.POLLIN),
	}
	for {
		if _, err := zmq.Poll(items, -1); err != nil {
			return errors.Wrap(err, "poll")
		}
		if items[0].IsReadable() {
			if err := forward(frontend, backend); err != nil {
				return errors.Wrap(err, "forward request")
			}
		}
		if items[1].IsReadable() {
			if err := forward(backend, frontend); err != nil {
				return errors.Wrap(err, "forward reply")
			}
		}
	}
}

func forward(from, to *zmq.Socket) error {
	frames, err := from.RecvMultipart(0)
	if err != nil {
		return err
	}
	return to.SendMultipart(frames, 0)
}

// AddFlags -
func AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&frontendEndpoint, "frontend", "tcp://*:5559", "endpoint clients connect to")
	fs.StringVar(&backendEndpoint, "backend", "tcp://*:5560", "endpoint workers connect to")
}
