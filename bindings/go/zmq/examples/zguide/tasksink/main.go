// Command tasksink collects the results of one batch and reports how long the
// batch took.
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
var tasks int

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

	receiver, err := ctx.Socket(zmq.PULL)
	if err != nil {
		return errors.Wrap(err, "create socket")
	}
	defer receiver.Close()
	if err := receiver.Bind(endpoint); err != nil {
		return errors.Wrapf(err, "bind %s", endpoint)
	}

	// Wait for start of batch.
	if _, err := receiver.RecvBytes(0); err != nil {
		return errors.Wrap(err, "receive batch start")
	}
	start := time.Now()

	for n := 0; n < tasks; n++ {
		if _, err := receiver.RecvBytes(0); err != nil {
			return errors.Wrapf(err, "receive result %d", n)
		}
		if n%10 == 0 {
			logrus.Debug(":")
		} else {
			logrus.Debug(".")
		}
	}
	logrus.Infof("Total elapsed time: %d msec", time.Since(start).Milliseconds())
	return nil
}

// AddFlags -
func AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&endpoint, "bind", "tcp://*:5558", "endpoint workers report to")
	fs.IntVar(&tasks, "tasks", 100, "results per batch")
}
