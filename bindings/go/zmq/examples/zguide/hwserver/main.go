// Command hwserver binds a REP socket and answers every "Hello" with "World".
package main

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

var endpoint string
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
		return errors.Wrap(err, "create context")
	}
	defer ctx.Destroy()

	responder, err := ctx.Socket(zmq.REP)
	if err != nil {
		return errors.Wrap(err, "create socket")
	}
	defer responder.Close()

	if err := responder.Bind(endpoint); err != nil {
		return errors.Wrapf(err, "bind %s", endpoint)
	}

	msg, err := zmq.NewMessage()
	if err != nil {
		return err
	}
	defer msg.Close()
	for {
		if err := responder.Recv(msg, 0); err != nil {
			return errors.Wrap(err, "receive request")
		}
		text, _ := msg.Str()
		logrus.Infof("Received %s", text)
		time.Sleep(work)
		if err := responder.SendString("World", 0); err != nil {
			return errors.Wrap(err, "send reply")
		}
	}
}

// AddFlags -
func AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&endpoint, "bind", "tcp://*:5555", "endpoint to serve requests on")
	fs.DurationVar(&work, "work", time.Second, "simulated work per request")
}
