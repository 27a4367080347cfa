// Command wuclient subscribes to one zipcode of the weather feed and reports
// the average temperature.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

var endpoint string
var zipcode string
var samples int

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

	subscriber, err := ctx.Socket(zmq.SUB)
	if err != nil {
		return errors.Wrap(err, "create socket")
	}
	defer subscriber.Close()

	logrus.Info("Collecting updates from weather server...")
	if err := subscriber.Connect(endpoint); err != nil {
		return errors.Wrapf(err, "connect %s", endpoint)
	}
	if err := subscriber.Subscribe([]byte(zipcode)); err != nil {
		return errors.Wrap(err, "subscribe")
	}

	total := 0
	for n := 0; n < samples; n++ {
		update, err := subscriber.RecvString(0)
		if err != nil {
			return errors.Wrap(err, "receive update")
		}
		var zip, temperature, relhumidity int
		if _, err := fmt.Sscanf(update, "%d %d %d", &zip, &temperature, &relhumidity); err != nil {
			return errors.Wrapf(err, "parse update %q", update)
		}
		total += temperature
	}
	logrus.Infof("Average temperature for zipcode '%s' was %dF", zipcode, total/samples)
	return nil
}

// AddFlags -
func AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&endpoint, "connect", "tcp://localhost:5556", "weather server endpoint")
	fs.StringVar(&zipcode, "zipcode", "10001 ", "zipcode prefix to subscribe to")
	fs.IntVar(&samples, "samples", 100, "updates to average")
}
