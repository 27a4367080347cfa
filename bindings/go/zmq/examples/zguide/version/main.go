// Command version reports the linked libzmq version and its optional
// transports and security mechanisms.
package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

var capabilities []string

func main() {
	AddFlags(pflag.CommandLine)
	pflag.Parse()

	major, minor, patch := zmq.Version()
	logrus.Infof("Current 0MQ version is %d.%d.%d", major, minor, patch)

	for _, capability := range capabilities {
		supported, known := zmq.Has(capability)
		logrus.WithFields(logrus.Fields{
			"capability": capability,
			"supported":  supported,
			"known":      known,
		}).Info("capability")
	}
}

// AddFlags -
func AddFlags(fs *pflag.FlagSet) {
	fs.StringSliceVar(&capabilities, "capability", []string{"ipc", "pgm", "tipc", "norm", "curve", "gssapi", "draft"}, "capabilities to query")
}
