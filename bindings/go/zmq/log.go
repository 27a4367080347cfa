package zmq

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var logger atomic.Pointer[logrus.Entry]

func init() {
	logger.Store(logrus.WithField("component", "zmq"))
}

// SetLogger replaces the entry the binding logs through. A nil entry restores
// the default standard logger.
func SetLogger(entry *logrus.Entry) {
	if entry == nil {
		entry = logrus.WithField("component", "zmq")
	}
	logger.Store(entry)
}

func log() *logrus.Entry {
	return logger.Load()
}
