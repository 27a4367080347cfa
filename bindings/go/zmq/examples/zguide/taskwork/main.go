// Command taskwork pulls tasks from taskvent, sleeps for the workload and
// reports completion to tasksink.
package main

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

var ventilator string
var sinkEndpoint string

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
		return errors.Wrap(err, "create receiver")
	}
	defer receiver.Close()
	if err := receiver.Connect(ventilator); err != nil {
		return errors.Wrapf(err, "connect %s", ventilator)
	}

	sender, err := ctx.Socket(zmq.PUSH)
	if err != nil {
		return errors.Wrap(err, "create sender")
	}
	defer sender.Close()
	if err := sender.Connect(sinkEndpoint); err != nil {
		return errors.Wrapf(err, "connect %s", sinkEndpoint)
	}

	for {
		task, err := receiver.RecvString(0)
		if err != nil {
			return errors.Wrap(err, "receive task")
		}
		msec, err := strconv.Atoi(task)
		if err != nil {
			return errors.Wrapf(err, "parse task %q", task)
		}
		logrus.Debugf("%d.", msec)
		time.Sleep(time.Duration(msec) * time.Millisecond)

		if err := sender.Send(nil, 0); err != nil {
			return errors.Wrap(err, "report result")
		}
	}
}

// AddFlags -
func AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&ventilator, "connect", "tcp://localhost:5557", "ventilator endpoint")
	fs.StringVar(&sinkEndpoint, "sink", "tcp://localhost:5558", "sink endpoint")
}
