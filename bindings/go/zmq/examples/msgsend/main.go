// Command msgsend measures PUSH/PULL throughput, comparing copied sends with
// zero-copy owned buffers.
package main

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/3leaps/zmqprims/bindings/go/zmq"
)

var endpoint string
var count int
var size int
var zeroCopy bool

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

	pull, err := ctx.Socket(zmq.PULL)
	if err != nil {
		return errors.Wrap(err, "create receiver")
	}
	defer pull.Close()
	if err := pull.Bind(endpoint); err != nil {
		return errors.Wrapf(err, "bind %s", endpoint)
	}
	address, err := pull.LastEndpoint()
	if err != nil {
		return errors.Wrap(err, "read endpoint")
	}

	push, err := ctx.Socket(zmq.PUSH)
	if err != nil {
		return errors.Wrap(err, "create sender")
	}
	defer push.Close()
	if err := push.Connect(address); err != nil {
		return errors.Wrapf(err, "connect %s", address)
	}

	start := time.Now()
	var g errgroup.Group
	g.Go(func() error { return receive(pull) })
	g.Go(func() error { return send(push) })
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	rate := float64(count) / elapsed.Seconds()
	logrus.WithFields(logrus.Fields{
		"messages":  count,
		"size":      size,
		"zero_copy": zeroCopy,
		"elapsed":   elapsed,
	}).Infof("%.0f msg/s, %.2f MB/s", rate, rate*float64(size)/1e6)

	stats := zmq.ReadStats()
	logrus.Debugf("live messages %d, owned buffers %d", stats.Messages, stats.OwnedBuffers)
	return nil
}

func send(sock *zmq.Socket) error {
	payload := make([]byte, size)
	for i := 0; i < count; i++ {
		var msg *zmq.Message
		var err error
		if zeroCopy {
			msg, err = zmq.NewMessageOwned(make([]byte, size))
		} else {
			msg, err = zmq.NewMessageFromBytes(payload)
		}
		if err != nil {
			return errors.Wrap(err, "build message")
		}
		if err := sock.SendMessage(msg, 0); err != nil {
			return errors.Wrapf(err, "send message %d", i)
		}
	}
	return nil
}

func receive(sock *zmq.Socket) error {
	msg, err := zmq.NewMessage()
	if err != nil {
		return errors.Wrap(err, "build message")
	}
	defer msg.Close()

	for i := 0; i < count; i++ {
		if err := sock.Recv(msg, 0); err != nil {
			return errors.Wrapf(err, "receive message %d", i)
		}
		if msg.Len() != size {
			return errors.Errorf("message %d has %d bytes, want %d", i, msg.Len(), size)
		}
	}
	return nil
}

// AddFlags -
func AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&endpoint, "bind", "inproc://msgsend", "endpoint the receiver binds")
	fs.IntVar(&count, "count", 100000, "messages to send")
	fs.IntVar(&size, "size", 1024, "bytes per message")
	fs.BoolVar(&zeroCopy, "zero-copy", false, "send owned buffers instead of copies")
}
