// Command logserver collects newline-delimited logs from plain TCP clients
// through a STREAM socket. The listener and a Prometheus endpoint run under a
// suture supervisor.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/thejerf/suture"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

var endpoint string
var metricsAddress string
var debug bool

func main() {
	AddFlags(pflag.CommandLine)
	pflag.Parse()
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if err := run(); err != nil {
		logrus.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	log := logrus.WithField("app", "logserver")
	zmq.SetLogger(log.WithField("component", "zmq"))

	ctx, err := zmq.NewContext()
	if err != nil {
		return errors.Wrap(err, "create context")
	}

	lines := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "logserver",
		Name:      "lines_total",
		Help:      "Lines received from log clients.",
	})
	handle := func(peer string, line []byte) {
		lines.Inc()
		log.WithField("peer", peer).Info(string(line))
	}

	supervisor := suture.New("logserver", suture.Spec{
		Log: func(m string) {
			log.Info(m)
		},
	})
	supervisor.Add(NewLogServer(ctx, endpoint, handle, log.WithField("server", "stream")))
	if metricsAddress != "" {
		supervisor.Add(NewMetricsServer(metricsAddress, lines, log.WithField("server", "metrics")))
	}
	supervisor.ServeBackground()

	term := make(chan os.Signal, 1)
	signal.Notify(term, os.Interrupt, syscall.SIGTERM)
	<-term

	supervisor.Stop()
	return errors.Wrap(ctx.Destroy(), "destroy context")
}

// AddFlags -
func AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&endpoint, "bind", "tcp://*:5580", "endpoint log clients connect to")
	fs.StringVar(&metricsAddress, "metrics", ":9580", "address of the metrics endpoint, empty to disable")
	fs.BoolVar(&debug, "debug", false, "log connection events")
}
