// Command wuserver publishes random weather updates on a PUB socket.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/time/rate"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

var endpoints []string
var updatesPerSecond float64

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

	publisher, err := ctx.Socket(zmq.PUB)
	if err != nil {
		return errors.Wrap(err, "create socket")
	}
	defer publisher.Close()

	for _, endpoint := range endpoints {
		if err := publisher.Bind(endpoint); err != nil {
			return errors.Wrapf(err, "bind %s", endpoint)
		}
		logrus.Infof("publishing weather on %s", endpoint)
	}

	limit := rate.Inf
	if updatesPerSecond > 0 {
		limit = rate.Limit(updatesPerSecond)
	}
	limiter := rate.NewLimiter(limit, 1)

	for {
		if err := limiter.Wait(context.Background()); err != nil {
			return err
		}
		zipcode := rand.Intn(100000)
		temperature := rand.Intn(215) - 80
		relhumidity := rand.Intn(50) + 10

		update := fmt.Sprintf("%05d %d %d", zipcode, temperature, relhumidity)
		if err := publisher.SendString(update, 0); err != nil {
			return errors.Wrap(err, "publish update")
		}
	}
}

// AddFlags -
func AddFlags(fs *pflag.FlagSet) {
	fs.StringSliceVar(&endpoints, "bind", []string{"tcp://*:5556", "ipc://weather.ipc"}, "endpoints to publish on")
	fs.Float64Var(&updatesPerSecond, "rate", 0, "updates per second, 0 for unlimited")
}
