// Command hwclient sends "Hello" requests to hwserver and waits for each reply.
package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

var endpoint string
var requests int

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

	requester, err := ctx.Socket(zmq.REQ)
	if err != nil {
		return errors.Wrap(err, "create socket")
	}
	defer requester.Close()

	logrus.Info("Connecting to hello world server...")
	if err := requester.Connect(endpoint); err != nil {
		return errors.Wrapf(err, "connect %s", endpoint)
	}

	for n := 0; n < requests; n++ {
		logrus.Infof("Sending Hello %d...", n)
		if err := requester.SendString("Hello", 0); err != nil {
			return errors.Wrapf(err, "send request %d", n)
		}
		reply, err := requester.RecvString(0)
		if err != nil {
			return errors.Wrapf(err, "receive reply %d", n)
		}
		logrus.Infof("Received %s %d", reply, n)
	}
	return nil
}

// AddFlags -
func AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&endpoint, "connect", "tcp://localhost:5555", "hello world server endpoint")
	fs.IntVar(&requests, "requests", 10, "number of requests to send")
}
