// Command mspoller reads from both the task ventilator and the weather feed,
// using Poll to serve whichever is ready.
package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

var ventilator string
var weather string
var zipcode string

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

	subscriber, err := ctx.Socket(zmq.SUB)
	if err != nil {
		return errors.Wrap(err, "create subscriber")
	}
	defer subscriber.Close()
	if err := subscriber.Connect(weather); err != nil {
		return errors.Wrapf(err, "connect %s", weather)
	}
	if err := subscriber.Subscribe([]byte(zipcode)); err != nil {
		return errors.Wrap(err, "subscribe")
	}

	items := []zmq.PollItem{
		receiver.AsPollItem(zmq.POLLIN),
		subscriber.AsPollItem(zmq.POLLIN),
	}
	for {
		if _, err := zmq.Poll(items, -1); err != nil {
			return errors.Wrap(err, "poll")
		}
		if items[0].IsReadable() {
			task, err := receiver.RecvString(0)
			if err != nil {
				return errors.Wrap(err, "receive task")
			}
			logrus.WithField("source", "task").Info(task)
		}
		if items[1].IsReadable() {
			update, err := subscriber.RecvString(0)
			if err != nil {
				return errors.Wrap(err, "receive weather")
			}
			logrus.WithField("source", "weather").Info(update)
		}
	}
}

// AddFlags -
func AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&ventilator, "tasks", "tcp://localhost:5557", "task ventilator endpoint")
	fs.StringVar(&weather, "weather", "tcp://localhost:5556", "weather server endpoint")
	fs.StringVar(&zipcode, "zipcode", "10001 ", "zipcode prefix to subscribe to")
}
